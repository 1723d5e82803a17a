package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// ApplySelection derives the displayed list: status filter, then
// case-insensitive substring search, then a stable sort. Pure function; the
// input slice is never mutated.
func ApplySelection(orders []model.Order, sel model.Selection) []model.Order {
	result := make([]model.Order, 0, len(orders))
	term := strings.ToLower(strings.TrimSpace(sel.Search))

	for _, o := range orders {
		if sel.StatusID != nil && o.StatusID != *sel.StatusID {
			continue
		}
		if term != "" && !matchesSearch(o, term) {
			continue
		}
		result = append(result, o)
	}

	sortOrders(result, sel.Sort)
	return result
}

// matchesSearch checks the order id, customer id, payment method and every
// contained product name against an already-lowercased term.
func matchesSearch(o model.Order, term string) bool {
	if strings.Contains(strconv.FormatInt(o.ID, 10), term) {
		return true
	}
	if strings.Contains(strconv.FormatInt(o.CustomerID, 10), term) {
		return true
	}
	if strings.Contains(strings.ToLower(o.PaymentMethod), term) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.ProductName), term) {
			return true
		}
	}
	return false
}

func sortOrders(orders []model.Order, key model.SortKey) {
	switch key {
	case model.SortDateAsc:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		})
	case model.SortValueDesc:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].TotalValue > orders[j].TotalValue
		})
	case model.SortValueAsc:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].TotalValue < orders[j].TotalValue
		})
	default:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}
}

// Summarize computes the aggregate reductions over the full (unfiltered)
// order list.
func Summarize(orders []model.Order) model.Stats {
	stats := model.Stats{ByStatus: make(map[int]int)}
	for _, o := range orders {
		stats.TotalOrders++
		stats.TotalValue += o.TotalValue
		stats.ByStatus[o.StatusID]++
	}
	return stats
}
