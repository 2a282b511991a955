package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000))
	assert.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	encoded := EncodeCursor(original)
	parsed, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, parsed)

	assert.True(t, original.CreatedAt.Equal(parsed.CreatedAt))
	assert.Equal(t, original.ID, parsed.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	parsed, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestParseCursorInvalid(t *testing.T) {
	_, err := ParseCursor("not-base64!!")
	assert.Error(t, err)

	_, err = ParseCursor("bm8tcGlwZS1oZXJl") // decodes without a separator
	assert.Error(t, err)
}
