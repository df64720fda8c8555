package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("HELPERS_TEST_VALUE", "value")

	assert.Equal(t, "value", GetEnv("HELPERS_TEST_VALUE", "default"))
	assert.Equal(t, "default", GetEnv("HELPERS_TEST_MISSING", "default"))
}

func TestGetEnvOrPanic(t *testing.T) {
	t.Setenv("HELPERS_TEST_VALUE", "value")

	assert.Equal(t, "value", GetEnvOrPanic("HELPERS_TEST_VALUE"))
	assert.Panics(t, func() { GetEnvOrPanic("HELPERS_TEST_MISSING") })
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("HELPERS_TEST_INT", "3")
	t.Setenv("HELPERS_TEST_BAD_INT", "three")

	assert.Equal(t, 3, GetEnvInt("HELPERS_TEST_INT", 0))
	assert.Equal(t, 7, GetEnvInt("HELPERS_TEST_BAD_INT", 7))
	assert.Equal(t, 7, GetEnvInt("HELPERS_TEST_MISSING", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("HELPERS_TEST_BOOL", "true")
	t.Setenv("HELPERS_TEST_BAD_BOOL", "maybe")

	assert.True(t, GetEnvBool("HELPERS_TEST_BOOL", false))
	assert.False(t, GetEnvBool("HELPERS_TEST_BAD_BOOL", false))
	assert.True(t, GetEnvBool("HELPERS_TEST_MISSING", true))
}
