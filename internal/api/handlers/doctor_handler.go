package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// DirectoryService defines the directory operations used by the handler.
type DirectoryService interface {
	RegisterDoctor(ctx context.Context, caller *entities.Session, name, email, department string) (*entities.Doctor, error)
	ListDoctors(ctx context.Context) ([]*entities.Doctor, error)
}

// DoctorHandler handles the doctor directory.
type DoctorHandler struct {
	service DirectoryService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(service DirectoryService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type registerDoctorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// RegisterDoctor handles POST /api/doctors
func (h *DoctorHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var payload registerDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	caller := middleware.SessionFromContext(r.Context())
	doctor, err := h.service.RegisterDoctor(r.Context(), caller, payload.Name, payload.Email, payload.Department)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "registered",
		"doctor": doctor,
	})
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
