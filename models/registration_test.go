package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, category := range RegistrationCategories {
		assert.True(t, IsValidCategory(category), "category: %s", category)
	}

	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Student"))
	assert.False(t, IsValidCategory("vendor"))
}
