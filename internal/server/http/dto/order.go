package dto

import "time"

// LineItemResponse describes one order line.
type LineItemResponse struct {
	Quantity  int     `json:"quantidade"`
	UnitPrice float64 `json:"preco_unitario"`
	Product   string  `json:"produto"`
}

// OrderResponse describes an order row on the dashboard.
type OrderResponse struct {
	ID            int64              `json:"id"`
	StatusID      int                `json:"status_id"`
	StatusLabel   string             `json:"descricao_status"`
	TotalValue    float64            `json:"valor_total"`
	PaymentMethod string             `json:"metodo_pagamento"`
	CustomerID    int64              `json:"usuario_id"`
	CreatedAt     time.Time          `json:"data_criacao"`
	Items         []LineItemResponse `json:"itens"`
	New           bool               `json:"novo"`
}

// StatusOptionResponse describes one status catalog entry.
type StatusOptionResponse struct {
	StatusID    int    `json:"status_id"`
	Description string `json:"descricao"`
}

// StatsResponse carries aggregates over the full order snapshot.
type StatsResponse struct {
	TotalOrders int         `json:"total_pedidos"`
	TotalValue  float64     `json:"valor_total"`
	ByStatus    map[int]int `json:"por_status"`
}

// OrderListResponse is the GET /api/orders payload.
type OrderListResponse struct {
	Orders  []OrderResponse        `json:"pedidos"`
	Stats   StatsResponse          `json:"estatisticas"`
	Filters []StatusOptionResponse `json:"filtros_status"`
}

// UpdateStatusRequest describes the status change payload.
type UpdateStatusRequest struct {
	StatusID int `json:"status_id" binding:"required"`
}
