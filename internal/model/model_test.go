package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemToggle_TwiceRestoresOriginal(t *testing.T) {
	for _, initial := range []bool{false, true} {
		item := Item{Title: "Milk", Done: initial}
		item.Toggle()
		assert.Equal(t, !initial, item.Done)
		item.Toggle()
		assert.Equal(t, initial, item.Done)
	}
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("cat")
	assert.Equal(t, "cat-1", gen.NewID())
	assert.Equal(t, "cat-2", gen.NewID())
	assert.Equal(t, "cat-3", gen.NewID())
}

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Groceries \t")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", name)

	for _, bad := range []string{"", "   ", "\n\t"} {
		_, err := NormalizeName(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, IsValidationError(err))
	}
}

func TestNormalizeTitle_TooLong(t *testing.T) {
	_, err := NormalizeTitle(strings.Repeat("x", MaxTextLength+1))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	title, err := NormalizeTitle(strings.Repeat("é", MaxTextLength))
	require.NoError(t, err, "length is measured in characters, not bytes")
	assert.Equal(t, MaxTextLength, len([]rune(title)))
}

func TestError_Format(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewWriteError("commit", cause)

	assert.Equal(t, "STORAGE_WRITE: commit: storage write failed: disk I/O error", err.Error())
	assert.ErrorIs(t, err, cause)

	v := NewValidationError("title", "title must not be empty")
	assert.Equal(t, "VALIDATION: title: title must not be empty", v.Error())
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("save items: %w", NewReadError("load items", errors.New("boom")))

	assert.True(t, IsReadError(wrapped))
	assert.False(t, IsWriteError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.True(t, IsNotFound(NewNotFoundError("category", "x")))
	assert.True(t, HasCode(NewAmbiguousError("category", "Home", 2), ErrCodeAmbiguous))
}
