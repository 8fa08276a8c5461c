package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

func TestParseDatum(t *testing.T) {
	datum, err := domain.ParseDatum("01.11.1912")
	require.NoError(t, err)
	assert.Equal(t, 1912, datum.Year())
	assert.Equal(t, time.November, datum.Month())
	assert.Equal(t, 1, datum.Day())
	assert.Equal(t, time.UTC, datum.Location())
}

func TestParseDatum_Invalid(t *testing.T) {
	for _, input := range []string{"", "1912-11-01", "32.01.2024", "01.13.2024", "1.11.1912"} {
		_, err := domain.ParseDatum(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestFormatDatum_Roundtrip(t *testing.T) {
	datum, err := domain.ParseDatum("03.05.2024")
	require.NoError(t, err)
	assert.Equal(t, "03.05.2024", domain.FormatDatum(datum))
}

func TestSameDatum(t *testing.T) {
	morning := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 3, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	assert.True(t, domain.SameDatum(morning, evening))
	assert.False(t, domain.SameDatum(evening, nextDay))
}
