package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Ennasr", Capitalize("ennasr"))
	assert.Equal(t, "Sidi bou", Capitalize("sidi bou"))
	assert.Equal(t, "Hammam lif", Capitalize("HAMMAM LIF"))
	assert.Equal(t, "Étoile", Capitalize("étoile"))
	assert.Equal(t, "", Capitalize(""))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Lac 2", "lac"))
	assert.True(t, ContainsFold("La Marsa", "MARSA"))
	assert.False(t, ContainsFold("Bardo", "ennasr"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "40", FormatNumber(40))
	assert.Equal(t, "410.5", FormatNumber(410.5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "Modé...", Truncate("Modéré", 4))
}
