package services

import (
	"context"
	"encoding/json"
	"fmt"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/models"
)

// OrderService is one ledger for both marketplaces; the kind column keeps
// farmer and customer orders apart.
type OrderService struct {
	db *database.DB
}

func NewOrderService(db *database.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) Create(ctx context.Context, userID int64, kind models.OrderKind, counterparty string, items []models.OrderItem, total float64) (int64, error) {
	if items == nil {
		items = []models.OrderItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order items: %w", err)
	}

	query := "INSERT INTO orders (user_id, kind, counterparty, items, total) VALUES (?, ?, ?, ?, ?)"
	id, err := s.db.InsertID(ctx, query, userID, kind, counterparty, string(blob), total)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64, kind models.OrderKind) ([]models.Order, error) {
	orders := []models.Order{}
	query := s.db.Rebind(`
		SELECT id, user_id, kind, counterparty, items, total, created_at
		FROM orders
		WHERE user_id = ? AND kind = ?
		ORDER BY created_at DESC, id DESC
	`)

	if err := s.db.SelectContext(ctx, &orders, query, userID, kind); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		if err := json.Unmarshal([]byte(orders[i].ItemsJSON), &orders[i].Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}

	return orders, nil
}
