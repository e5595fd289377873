package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		bucket string
		low    string
		below  string
	}{
		{"0-499", "0", "500"},
		{"500-999", "500", "1000"},
		{"2000-4999", "2000", "5000"},
		{"5000+", "5000", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			low, below, ok := ParsePriceRange(tt.bucket)
			require.True(t, ok)
			if tt.low == "" {
				assert.Nil(t, low)
			} else {
				require.NotNil(t, low)
				assert.Equal(t, tt.low, low.String())
			}
			if tt.below == "" {
				assert.Nil(t, below)
			} else {
				require.NotNil(t, below)
				assert.Equal(t, tt.below, below.String())
			}
		})
	}

	for _, bad := range []string{"cheap", "900-100", "a-b"} {
		_, _, ok := ParsePriceRange(bad)
		assert.False(t, ok, bad)
	}
}
