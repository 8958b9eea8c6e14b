package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval_MajorScaleDegrees(t *testing.T) {
	cases := map[string]int{
		"1P": 0, "2M": 2, "3M": 4, "4P": 5, "5P": 7, "6M": 9, "7M": 11,
	}
	for token, want := range cases {
		got, err := ParseInterval(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
}

func TestParseInterval_MinorAndAltered(t *testing.T) {
	cases := map[string]int{
		"2m": 1, "3m": 3, "6m": 8, "7m": 10, // lowered major-class
		"5d": 6, "5A": 8, "4A": 6, // altered perfect-class
		"7dd": 9,   // diminished seventh, chained
		"5AA": 9,   // doubly augmented
	}
	for token, want := range cases {
		got, err := ParseInterval(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
}

func TestParseInterval_OctaveExtension(t *testing.T) {
	cases := map[string]int{
		"8P": 12, "9M": 14, "11P": 17, "13M": 21,
	}
	for token, want := range cases {
		got, err := ParseInterval(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}
}

func TestParseInterval_QualityClassMismatch(t *testing.T) {
	for _, token := range []string{"1M", "4m", "5M", "8m", "3P", "7P", "11M"} {
		_, err := ParseInterval(token)
		require.Error(t, err, token)
		var ce *CatalogError
		require.ErrorAs(t, err, &ce, token)
		assert.Equal(t, ErrQualityMismatch, ce.Code, token)
	}
}

func TestParseInterval_Malformed(t *testing.T) {
	for _, token := range []string{"", "3", "M", "3X", "0P", "16P", "3Mm", "5Ad", "P3"} {
		_, err := ParseInterval(token)
		assert.Error(t, err, token)
	}
}
