package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/dto"
)

// OrderHandler manages order dashboard endpoints.
type OrderHandler struct {
	facade DashboardFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade DashboardFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders. The status, q and sort query parameters drive
// the derivation; omitted parameters fall back to the full list, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	view, err := h.facade.Orders(c.Request.Context(), sel)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderListResponse(view))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ChangeStatus(c.Request.Context(), orderID, req.StatusID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Refresh handles POST /api/orders/refresh.
func (h *OrderHandler) Refresh(c *gin.Context) {
	if err := h.facade.Refresh(c.Request.Context()); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Statuses handles GET /api/statuses: the catalog slice offered by the
// status update selector.
func (h *OrderHandler) Statuses(c *gin.Context) {
	options, err := h.facade.SelectorOptions(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.StatusOptionResponse, 0, len(options))
	for _, entry := range options {
		response = append(response, dto.StatusOptionResponse{StatusID: entry.StatusID, Description: entry.Description})
	}
	c.JSON(http.StatusOK, response)
}

func parseSelection(c *gin.Context) (model.Selection, bool) {
	sel := model.Selection{
		Search: c.Query("q"),
		Sort:   model.ParseSortKey(c.Query("sort")),
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		statusID, err := strconv.Atoi(raw)
		if err != nil {
			return model.Selection{}, false
		}
		sel.StatusID = &statusID
	}
	return sel, true
}

func toOrderListResponse(view *model.DashboardView) dto.OrderListResponse {
	orders := make([]dto.OrderResponse, 0, len(view.Orders))
	for _, o := range view.Orders {
		orders = append(orders, toOrderResponse(o, view.Highlights[o.ID]))
	}

	filters := make([]dto.StatusOptionResponse, 0, len(view.Filters))
	for _, entry := range view.Filters {
		filters = append(filters, dto.StatusOptionResponse{StatusID: entry.StatusID, Description: entry.Description})
	}

	return dto.OrderListResponse{
		Orders: orders,
		Stats: dto.StatsResponse{
			TotalOrders: view.Stats.TotalOrders,
			TotalValue:  view.Stats.TotalValue,
			ByStatus:    view.Stats.ByStatus,
		},
		Filters: filters,
	}
}

func toOrderResponse(order model.Order, highlighted bool) dto.OrderResponse {
	items := make([]dto.LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.LineItemResponse{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Product:   item.ProductName,
		})
	}

	return dto.OrderResponse{
		ID:            order.ID,
		StatusID:      order.StatusID,
		StatusLabel:   order.StatusLabel,
		TotalValue:    order.TotalValue,
		PaymentMethod: order.PaymentMethod,
		CustomerID:    order.CustomerID,
		CreatedAt:     order.CreatedAt,
		Items:         items,
		New:           highlighted,
	}
}
