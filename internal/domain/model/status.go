package model

// StatusEntry maps a status identifier to its human-readable description
// within a grouping category. Read-only reference data.
type StatusEntry struct {
	StatusID    int
	Description string
	Category    int
}
