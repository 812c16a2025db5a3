package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/webtilians/backA/internal/domain"
)

// catalogDocument is the on-disk shape of hotel_data.json.
type catalogDocument struct {
	RoomTypes []catalogEntry `json:"habitaciones"`
}

// catalogEntry tells an absent "total" apart from an explicit 0.
type catalogEntry struct {
	Name        string  `json:"tipo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Currency    string  `json:"moneda"`
	Total       *int    `json:"total"`
}

// defaultTotal is the inventory of a catalog entry that omits "total".
const defaultTotal = 1

// fileCatalogRepo is the JSON-file implementation of CatalogRepo.
// The file is re-read on every call so edits made by hand are picked up
// without a restart.
type fileCatalogRepo struct {
	path string
}

// NewFileCatalogRepo constructs a CatalogRepo backed by the JSON document at path.
// The document is either {"habitaciones": [...]} or a bare array of room types.
func NewFileCatalogRepo(path string) CatalogRepo {
	return &fileCatalogRepo{path: path}
}

// List decodes the catalog document and applies the defaults for "moneda"
// and "total".
func (r *fileCatalogRepo) List(_ context.Context) ([]domain.RoomType, error) {
	b, ok, err := readFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.List: %w: %v", domain.ErrStoreRead, err)
	}
	if !ok {
		return []domain.RoomType{}, nil
	}

	roomTypes, err := decodeCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.List: %w: %s: %v", domain.ErrStoreRead, r.path, err)
	}
	return roomTypes, nil
}

func decodeCatalog(b []byte) ([]domain.RoomType, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return []domain.RoomType{}, nil
	}

	var entries []catalogEntry
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
	} else {
		var doc catalogDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		entries = doc.RoomTypes
	}

	roomTypes := make([]domain.RoomType, len(entries))
	for i, e := range entries {
		rt := domain.RoomType{
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Currency:    e.Currency,
			Total:       defaultTotal,
		}
		if rt.Currency == "" {
			rt.Currency = domain.DefaultCurrency
		}
		if e.Total != nil {
			rt.Total = *e.Total
		}
		roomTypes[i] = rt
	}
	return roomTypes, nil
}
