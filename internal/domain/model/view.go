package model

// SortKey selects the ordering of the derived order list.
type SortKey string

const (
	SortDateDesc  SortKey = "date_desc"
	SortDateAsc   SortKey = "date_asc"
	SortValueDesc SortKey = "value_desc"
	SortValueAsc  SortKey = "value_asc"
)

// ParseSortKey maps a raw value to a sort key, defaulting to newest-first.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortDateAsc, SortValueDesc, SortValueAsc:
		return SortKey(raw)
	default:
		return SortDateDesc
	}
}

// Selection holds the current filter/search/sort choices. It is owned by the
// caller and never persisted.
type Selection struct {
	StatusID *int
	Search   string
	Sort     SortKey
}

// Stats aggregates the unfiltered order list for the summary cards and the
// per-option counts in the filter bar.
type Stats struct {
	TotalOrders int
	TotalValue  float64
	ByStatus    map[int]int
}

// DashboardView is the assembled response for one dashboard render: the
// derived order list, aggregates over the full snapshot, the filter-bar
// catalog slice and the still-live "new order" markers.
type DashboardView struct {
	Orders     []Order
	Stats      Stats
	Filters    []StatusEntry
	Highlights map[int64]bool
}
