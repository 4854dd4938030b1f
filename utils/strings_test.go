package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistrictCode(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{75013, "13e"},
		{7, "07e"},
		{75001, "01e"},
		{20, "20e"},
		{1, "01e"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDistrictCode(c.code), "code %d", c.code)
	}
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "General Leclerc", RemoveAccents("Général Leclerc"))
	assert.Equal(t, "Eveche", RemoveAccents("Évêché"))
	assert.Equal(t, "rue de la Paix", RemoveAccents("rue de la Paix"))
}

func TestCleanStreetName(t *testing.T) {
	assert.Equal(t, "RUE DE L'EVECHE", CleanStreetName("12 rue de l'Évêché"))
	assert.Equal(t, "BOULEVARD SAINT-GERMAIN", CleanStreetName("boulevard Saint-Germain"))
	assert.Equal(t, "RUE DE RIVOLI", CleanStreetName("  4 rue de Rivoli "))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Rue De Rivoli", TitleCase("RUE DE RIVOLI"))
}
