package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("FL_TEST_STR", "value")
	t.Setenv("FL_TEST_INT", "42")
	t.Setenv("FL_TEST_BOOL", "true")
	t.Setenv("FL_TEST_DUR", "90m")
	t.Setenv("FL_TEST_BAD", "nope")

	assert.Equal(t, "value", Getenv("FL_TEST_STR", "x"))
	assert.Equal(t, "x", Getenv("FL_TEST_UNSET", "x"))

	n, err := GetenvInt("FL_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	_, err = GetenvInt("FL_TEST_BAD", 1)
	assert.Error(t, err)

	b, err := GetenvBool("FL_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	d, err := GetenvDuration("FL_TEST_DUR", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = GetenvDuration("FL_TEST_UNSET", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestParsePositiveID(t *testing.T) {
	id, err := ParsePositiveID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := ParsePositiveID(bad)
		assert.Error(t, err, bad)
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	got := OptionalString("  Main St ")
	require.NotNil(t, got)
	assert.Equal(t, "Main St", *got)
}
