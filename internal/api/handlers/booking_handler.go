package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// BookingService defines the ledger operations used by the handler.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *entities.Booking) error
	GetBooking(ctx context.Context, id int64) (*entities.Booking, error)
	EditBooking(ctx context.Context, id int64, fields *entities.Booking) error
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context) ([]*entities.Booking, error)
	SearchBookings(ctx context.Context, department string) ([]*entities.Booking, error)
	Attend(ctx context.Context, caller *entities.Session, id int64) (*entities.ArchivedBooking, error)
	ListAudit(ctx context.Context) ([]*entities.AuditEntry, error)
}

// BookingHandler handles the booking ledger and audit trail.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	PatientEmail string `json:"patient_email"`
	PatientName  string `json:"patient_name"`
	Gender       string `json:"gender"`
	Slot         string `json:"slot"`
	Disease      string `json:"disease"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Department   string `json:"department"`
	PhoneNumber  string `json:"phone_number"`
}

func (p *bookingRequest) toEntity() *entities.Booking {
	return &entities.Booking{
		PatientEmail: p.PatientEmail,
		PatientName:  p.PatientName,
		Gender:       p.Gender,
		Slot:         p.Slot,
		Disease:      p.Disease,
		Date:         p.Date,
		Time:         p.Time,
		Department:   p.Department,
		PhoneNumber:  p.PhoneNumber,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking := payload.toEntity()
	if err := h.service.CreateBooking(r.Context(), booking); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "booked",
		"booking": booking,
	})
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// EditBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) EditBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.EditBooking(r.Context(), id, payload.toEntity()); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SearchBookings handles GET /api/bookings/search
func (h *BookingHandler) SearchBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.SearchBookings(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// AttendBooking handles POST /api/bookings/{id}/attend
func (h *BookingHandler) AttendBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	caller := middleware.SessionFromContext(r.Context())
	archived, err := h.service.Attend(r.Context(), caller, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "attended",
		"archived": archived,
	})
}

// ListAudit handles GET /api/audit
func (h *BookingHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListAudit(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
