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

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) List(ctx context.Context) ([]*entities.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) ExistsByEmailAndDepartment(ctx context.Context, email, department string) (bool, error) {
	args := m.Called(ctx, email, department)
	return args.Bool(0), args.Error(1)
}

// Tests

func TestDirectoryService_RegisterDoctor(t *testing.T) {
	t.Run("successfully registers a doctor", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		repo.On("ExistsByEmailAndDepartment", mock.Anything, "house@hospital.example", "Diagnostics").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Doctor) bool {
			return d.Name == "Gregory House" && d.Department == "Diagnostics"
		})).Return(nil)

		doctor, err := service.RegisterDoctor(context.Background(), doctorSession(), "Gregory House", "House@Hospital.Example", "Diagnostics")

		assert.NoError(t, err)
		assert.Equal(t, "house@hospital.example", doctor.Email)
		repo.AssertExpectations(t)
	})

	t.Run("allows the same doctor in a second department", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		repo.On("ExistsByEmailAndDepartment", mock.Anything, "house@hospital.example", "Neurology").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.RegisterDoctor(context.Background(), doctorSession(), "Gregory House", "house@hospital.example", "Neurology")

		assert.NoError(t, err)
	})

	t.Run("rejects duplicate department registration", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		repo.On("ExistsByEmailAndDepartment", mock.Anything, "house@hospital.example", "Diagnostics").Return(true, nil)

		_, err := service.RegisterDoctor(context.Background(), doctorSession(), "Gregory House", "house@hospital.example", "Diagnostics")

		assert.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects patient callers", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		_, err := service.RegisterDoctor(context.Background(), patientSession(), "John Doe", "jdoe@patients.example", "Diagnostics")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		repo.AssertNotCalled(t, "ExistsByEmailAndDepartment")
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		_, err := service.RegisterDoctor(context.Background(), doctorSession(), "Gregory House", "", "Diagnostics")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestDirectoryService_ListDoctors(t *testing.T) {
	t.Run("returns all registrations", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		service := services.NewDirectoryService(repo)

		doctors := []*entities.Doctor{
			{ID: 1, Name: "Gregory House", Department: "Diagnostics"},
			{ID: 2, Name: "Meredith Grey", Department: "Surgery"},
		}
		repo.On("List", mock.Anything).Return(doctors, nil)

		result, err := service.ListDoctors(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 2)
	})
}
