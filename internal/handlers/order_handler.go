package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/dto"
	"eduagri-backend/internal/middleware"
	"eduagri-backend/internal/models"
	"eduagri-backend/internal/services"
	"eduagri-backend/utils/response"
)

// OrderHandler serves one order ledger. It is constructed twice, once per
// marketplace kind, instead of duplicating routes.
type OrderHandler struct {
	service *services.OrderService
	kind    models.OrderKind
}

func NewOrderHandler(db *database.DB, kind models.OrderKind) *OrderHandler {
	return &OrderHandler{
		service: services.NewOrderService(db),
		kind:    kind,
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.Create(r.Context(), claims.UserID, h.kind, req.CounterpartyName, req.Items, req.Total)
	if err != nil {
		log.Printf("create %s order: %v", h.kind, err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, dto.CreateOrderResponse{ID: id})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orders, err := h.service.ListForUser(r.Context(), claims.UserID, h.kind)
	if err != nil {
		log.Printf("list %s orders: %v", h.kind, err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, orders)
}
