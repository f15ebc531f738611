package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	d := BuildWelcome("FitTrack", "http://localhost:3000", "Ana Lee", "ana@example.com",
		WithTime(time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)))

	subject, text, html, err := Render(Welcome, ToMap(d))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to FitTrack", subject)
	assert.Contains(t, text, "Hi Ana Lee,")
	assert.Contains(t, text, "ana@example.com")
	assert.NotContains(t, text, "Questions?")
	assert.Contains(t, html, "01 October 2026, 08:30")
}

func TestRenderDefaults(t *testing.T) {
	subject, text, _, err := Render(Welcome, map[string]any{"Email": "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to FitTrack", subject)
	assert.Contains(t, text, "Hi there,")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", "  "))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, "x", defaultFn("x", time.Time{}))
	assert.Equal(t, "Ana", defaultFn("x", "Ana"))
	assert.Equal(t, 3, defaultFn("x", 3))
}
