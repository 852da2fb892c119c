package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/dto"
	"eduagri-backend/internal/middleware"
	"eduagri-backend/internal/models"
	"eduagri-backend/internal/services"
	"eduagri-backend/internal/token"
	"eduagri-backend/utils/response"
)

type AuthHandler struct {
	service *services.AuthService
	issuer  *token.Issuer
}

func NewAuthHandler(db *database.DB, issuer *token.Issuer) *AuthHandler {
	return &AuthHandler{
		service: services.NewAuthService(db),
		issuer:  issuer,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, "Missing username, email, or password")
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password, models.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			response.Error(w, http.StatusConflict, "Username or email already exists")
		case errors.Is(err, services.ErrInvalidRole):
			response.Error(w, http.StatusBadRequest, "Invalid role")
		default:
			log.Printf("register: %v", err)
			response.Error(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	h.respondWithToken(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("login: %v", err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.respondWithToken(w, user)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("me: %v", err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, dto.MeResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	tokenString, err := h.issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		log.Printf("issue token: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	response.JSON(w, http.StatusOK, dto.AuthResponse{
		Success:  true,
		Token:    tokenString,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}
