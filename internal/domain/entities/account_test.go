package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, entities.RolePatient.Valid())
	assert.True(t, entities.RoleDoctor.Valid())
	assert.False(t, entities.Role("Admin").Valid())
	assert.False(t, entities.Role("").Valid())
	assert.False(t, entities.Role("patient").Valid())
}

func TestAccount_PasswordHashNeverSerialized(t *testing.T) {
	account := entities.Account{
		ID:           1,
		Username:     "jdoe",
		Email:        "jdoe@patients.example",
		PasswordHash: "$2a$10$notarealhash",
		Role:         entities.RolePatient,
	}

	data, err := json.Marshal(account)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "notarealhash")
}
