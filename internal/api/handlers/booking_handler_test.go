package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/handlers"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

type stubBookingService struct {
	created    []*entities.Booking
	deleted    []int64
	attended   []int64
	searchTerm string
	err        error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, booking *entities.Booking) error {
	if s.err != nil {
		return s.err
	}
	booking.ID = int64(len(s.created) + 1)
	s.created = append(s.created, booking)
	return nil
}

func (s *stubBookingService) GetBooking(ctx context.Context, id int64) (*entities.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Booking{ID: id, Department: "Neurology"}, nil
}

func (s *stubBookingService) EditBooking(ctx context.Context, id int64, fields *entities.Booking) error {
	return s.err
}

func (s *stubBookingService) DeleteBooking(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBookingService) ListBookings(ctx context.Context) ([]*entities.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubBookingService) SearchBookings(ctx context.Context, department string) ([]*entities.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.searchTerm = department
	return s.created, nil
}

func (s *stubBookingService) Attend(ctx context.Context, caller *entities.Session, id int64) (*entities.ArchivedBooking, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.attended = append(s.attended, id)
	return &entities.ArchivedBooking{ID: 1, BookingID: id, Doctor: caller.Username}, nil
}

func (s *stubBookingService) ListAudit(ctx context.Context) ([]*entities.AuditEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entities.AuditEntry{{ID: 1, BookingID: 1, Action: entities.AuditActionInsert}}, nil
}

const bookingBody = `{
	"patient_email": "jdoe@patients.example",
	"patient_name": "John Doe",
	"gender": "Male",
	"slot": "Morning",
	"disease": "Migraine",
	"date": "2026-09-01",
	"time": "10:30",
	"department": "Neurology",
	"phone_number": "08012345678"
}`

func TestBookingHandler_CreateBooking_Success(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(bookingBody))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, service.created, 1)
	assert.Equal(t, "Neurology", service.created[0].Department)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "booked", response["status"])
}

func TestBookingHandler_CreateBooking_InvalidJSON(t *testing.T) {
	handler := handlers.NewBookingHandler(&stubBookingService{})

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_CreateBooking_ValidationError(t *testing.T) {
	service := &stubBookingService{err: apperrors.NewValidationError("department is required")}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(bookingBody))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "department is required", response["error"])
}

func TestBookingHandler_DeleteBooking(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("DELETE", "/api/bookings/5", nil)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	handler.DeleteBooking(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, service.deleted)
}

func TestBookingHandler_DeleteBooking_BadID(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("DELETE", "/api/bookings/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler.DeleteBooking(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.deleted)
}

func TestBookingHandler_DeleteBooking_NotFound(t *testing.T) {
	service := &stubBookingService{err: apperrors.NewNotFoundError("booking not found")}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("DELETE", "/api/bookings/5", nil)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	handler.DeleteBooking(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_SearchBookings(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("GET", "/api/bookings/search?department=Neuro", nil)
	w := httptest.NewRecorder()

	handler.SearchBookings(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Neuro", service.searchTerm)
}

func TestBookingHandler_SearchBookings_MissingTerm(t *testing.T) {
	service := &stubBookingService{err: apperrors.NewValidationError("search term is required")}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("GET", "/api/bookings/search", nil)
	w := httptest.NewRecorder()

	handler.SearchBookings(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_AttendBooking(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	session := &entities.Session{Username: "drhouse", Role: entities.RoleDoctor}
	req := httptest.NewRequest("POST", "/api/bookings/5/attend", nil)
	req.SetPathValue("id", "5")
	req = req.WithContext(middleware.ContextWithSession(req.Context(), session))
	w := httptest.NewRecorder()

	handler.AttendBooking(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, service.attended)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "attended", response["status"])
}

func TestBookingHandler_AttendBooking_Forbidden(t *testing.T) {
	service := &stubBookingService{err: apperrors.NewForbiddenError("doctor role required")}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("POST", "/api/bookings/5/attend", nil)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	handler.AttendBooking(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_ListAudit(t *testing.T) {
	service := &stubBookingService{}
	handler := handlers.NewBookingHandler(service)

	req := httptest.NewRequest("GET", "/api/audit", nil)
	w := httptest.NewRecorder()

	handler.ListAudit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}
