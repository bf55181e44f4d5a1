package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/hospitalmanagement/backend/internal/application/services"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// Mocks

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) GetByID(ctx context.Context, id int64) (*entities.ArchivedBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ArchivedBooking), args.Error(1)
}

func (m *MockArchiveRepository) List(ctx context.Context) ([]*entities.ArchivedBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ArchivedBooking), args.Error(1)
}

func (m *MockArchiveRepository) ListByDoctor(ctx context.Context, doctorUsername string) ([]*entities.ArchivedBooking, error) {
	args := m.Called(ctx, doctorUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ArchivedBooking), args.Error(1)
}

func (m *MockArchiveRepository) ListByPatientEmail(ctx context.Context, email string) ([]*entities.ArchivedBooking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ArchivedBooking), args.Error(1)
}

func (m *MockArchiveRepository) SetFeedback(ctx context.Context, id int64, feedback string) error {
	args := m.Called(ctx, id, feedback)
	return args.Error(0)
}

// Tests

func TestArchiveService_ListCompleted(t *testing.T) {
	t.Run("patients see only their own records", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		records := []*entities.ArchivedBooking{{ID: 1, PatientEmail: "jdoe@patients.example"}}
		repo.On("ListByPatientEmail", mock.Anything, "jdoe@patients.example").Return(records, nil)

		result, err := service.ListCompleted(context.Background(), patientSession())

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		repo.AssertNotCalled(t, "List")
		repo.AssertNotCalled(t, "ListByDoctor")
	})

	t.Run("doctors see the bookings they attended", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		records := []*entities.ArchivedBooking{{ID: 1, Doctor: "drhouse"}}
		repo.On("ListByDoctor", mock.Anything, "drhouse").Return(records, nil)

		result, err := service.ListCompleted(context.Background(), doctorSession())

		assert.NoError(t, err)
		assert.Equal(t, "drhouse", result[0].Doctor)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		_, err := service.ListCompleted(context.Background(), nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestArchiveService_SubmitFeedback(t *testing.T) {
	t.Run("overwrites existing feedback", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		repo.On("SetFeedback", mock.Anything, int64(4), "great care").Return(nil)

		err := service.SubmitFeedback(context.Background(), 4, "great care")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found for unknown record", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		repo.On("SetFeedback", mock.Anything, int64(4), "great care").Return(apperrors.NewNotFoundError("completed booking not found"))

		err := service.SubmitFeedback(context.Background(), 4, "great care")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestArchiveService_ListForDoctor(t *testing.T) {
	t.Run("returns the caller's attended bookings", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		feedback := "very thorough"
		records := []*entities.ArchivedBooking{{ID: 1, Doctor: "drhouse", Feedback: &feedback}}
		repo.On("ListByDoctor", mock.Anything, "drhouse").Return(records, nil)

		result, err := service.ListForDoctor(context.Background(), doctorSession())

		assert.NoError(t, err)
		assert.Equal(t, "very thorough", *result[0].Feedback)
	})

	t.Run("rejects patient callers", func(t *testing.T) {
		repo := new(MockArchiveRepository)
		service := services.NewArchiveService(repo)

		_, err := service.ListForDoctor(context.Background(), patientSession())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		repo.AssertNotCalled(t, "ListByDoctor")
	})
}
