package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "2024-03-05", Canonical("2024-03-05T14:30:00Z"))
	assert.Equal(t, "2024-03-05", Canonical("2024-03-05"))
	assert.Equal(t, "", Canonical(""))
	assert.Equal(t, "", Canonical("not a date"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "March 5, 2024", Display("2024-03-05T14:30:00Z"))
	assert.Equal(t, "", Display(""))
	assert.Equal(t, "", Display("garbage"))
}

func TestToISO(t *testing.T) {
	iso := ToISO("2024-03-05")
	require.NotNil(t, iso)
	assert.Equal(t, "2024-03-05T00:00:00Z", *iso)

	// Empty input means "field intentionally cleared" and maps to null.
	assert.Nil(t, ToISO(""))
	assert.Nil(t, ToISO("junk"))
}
