package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/dto"
	"eduagri-backend/internal/middleware"
	"eduagri-backend/internal/services"
	"eduagri-backend/utils/response"
)

type EnrollmentHandler struct {
	service *services.EnrollmentService
}

func NewEnrollmentHandler(db *database.DB) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: services.NewEnrollmentService(db),
	}
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	enrollments, err := h.service.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("list enrollments: %v", err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req dto.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, "Missing courseTitle")
		return
	}

	id, err := h.service.Enroll(r.Context(), claims.UserID, req.CourseTitle, req.CourseImg)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyEnrolled) {
			response.Error(w, http.StatusConflict, "Already enrolled in this course")
			return
		}
		log.Printf("enroll: %v", err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, dto.EnrollResponse{
		Success:     true,
		ID:          id,
		CourseTitle: req.CourseTitle,
		CourseImg:   req.CourseImg,
	})
}

func (h *EnrollmentHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	courseTitle := r.PathValue("courseTitle")
	if err := h.service.Unenroll(r.Context(), claims.UserID, courseTitle); err != nil {
		log.Printf("unenroll: %v", err)
		response.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.JSON(w, http.StatusOK, dto.UnenrollResponse{Success: true})
}
