package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/webtilians/backA/internal/domain"
)

// DefaultCatalog mirrors the catalog shipped with the hotel: ten standard
// doubles and three junior suites.
func DefaultCatalog() []domain.RoomType {
	return []domain.RoomType{
		{Name: "Doble Estándar", Description: "Habitación para dos personas con todas las comodidades", Price: 85, Currency: "EUR", Total: 10},
		{Name: "Suite Junior", Description: "Suite espaciosa con sala de estar separada", Price: 140, Currency: "EUR", Total: 3},
	}
}

// WriteCatalog writes roomTypes as a {"habitaciones": [...]} document in a
// fresh temp directory and returns the document's path.
func WriteCatalog(t *testing.T, roomTypes []domain.RoomType) string {
	t.Helper()

	b, err := json.MarshalIndent(map[string]any{"habitaciones": roomTypes}, "", "  ")
	if err != nil {
		t.Fatalf("testutil.WriteCatalog: marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hotel_data.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("testutil.WriteCatalog: write: %v", err)
	}
	return path
}
