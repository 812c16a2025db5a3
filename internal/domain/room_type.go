// Package domain contains the core data types for the hotel reservation backend.
// This package is imported by every other internal package (repo, service,
// tools, handler) and only depends on the standard library and uuid.
package domain

import "strings"

// DefaultCurrency is applied to catalog entries that omit "moneda".
const DefaultCurrency = "EUR"

// RoomType is a named category of hotel room with a fixed nightly price and a
// fixed total inventory. Catalog entries are edited outside this service.
type RoomType struct {
	Name        string  `json:"tipo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Currency    string  `json:"moneda"`
	Total       int     `json:"total"`
}

// Matches reports whether name identifies this room type.
// Matching is case-insensitive and exact; there is no partial matching.
func (rt RoomType) Matches(name string) bool {
	return strings.EqualFold(rt.Name, strings.TrimSpace(name))
}

// FindRoomType returns the catalog entry identified by name.
// The boolean is false when no entry matches.
func FindRoomType(catalog []RoomType, name string) (RoomType, bool) {
	for _, rt := range catalog {
		if rt.Matches(name) {
			return rt, true
		}
	}
	return RoomType{}, false
}

// RoomTypeKey normalizes a room-type name for use in count indexes and
// storage keys, so "Suite Junior" and "SUITE JUNIOR" share one counter.
func RoomTypeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
