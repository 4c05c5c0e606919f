package middleware

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestMutatingMethod(t *testing.T) {
	assert.False(t, mutatingMethod(fiber.MethodGet))
	assert.False(t, mutatingMethod(fiber.MethodDelete))

	assert.True(t, mutatingMethod(fiber.MethodPost))
	assert.True(t, mutatingMethod(fiber.MethodPatch))
	assert.True(t, mutatingMethod(fiber.MethodPut))
}
