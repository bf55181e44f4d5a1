package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// ArchiveService defines the completed-booking operations used by the handler.
type ArchiveService interface {
	ListCompleted(ctx context.Context, caller *entities.Session) ([]*entities.ArchivedBooking, error)
	SubmitFeedback(ctx context.Context, id int64, feedback string) error
	ListForDoctor(ctx context.Context, caller *entities.Session) ([]*entities.ArchivedBooking, error)
}

// ArchiveHandler handles completed bookings and feedback.
type ArchiveHandler struct {
	service ArchiveService
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(service ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// ListCompleted handles GET /api/completed
func (h *ArchiveHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionFromContext(r.Context())
	records, err := h.service.ListCompleted(r.Context(), caller)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"completed": records,
		"count":     len(records),
	})
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

// SubmitFeedback handles POST /api/completed/{id}/feedback
func (h *ArchiveHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.SubmitFeedback(r.Context(), id, payload.Feedback); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "feedback_saved"})
}

// DoctorProfile handles GET /api/doctors/profile
func (h *ArchiveHandler) DoctorProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionFromContext(r.Context())
	records, err := h.service.ListForDoctor(r.Context(), caller)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"attended": records,
		"count":    len(records),
	})
}
