package dto

import "eduagri-backend/internal/models"

type CreateOrderRequest struct {
	CounterpartyName string             `json:"counterpartyName"`
	Items            []models.OrderItem `json:"items"`
	Total            float64            `json:"total"`
}

type CreateOrderResponse struct {
	ID int64 `json:"id"`
}
