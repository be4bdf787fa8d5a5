package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAmount_ConvencionLatina verifica la normalización de montos con
// punto de miles y coma decimal, incluyendo negativos (descuentos).
func TestParseAmount_ConvencionLatina(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"23.941", "23941"},
		{"7,50", "7.5"},
		{"-7", "-7"},
		{"1.234,56", "1234.56"},
		{"40,00", "40"},
		{"9.121.637", "9121637"},
		{"-1.234", "-1234"},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, "ParseAmount(%q) no debe fallar", tc.in)
		assert.Equal(t, tc.want, got.String(), "ParseAmount(%q)", tc.in)
	}
}

func TestParseAmount_Invalido(t *testing.T) {
	_, err := ParseAmount("CONSUMO")
	assert.Error(t, err, "texto no numérico debe producir error")

	_, err = ParseAmount("")
	assert.Error(t, err)
}

// TestParseSpanishDate cubre los dos formatos de fecha de las boletas:
// dd-MMM-yyyy con mes abreviado en español y dd/mm/yyyy.
func TestParseSpanishDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"01-AGO-2024", time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{"15-ene-2023", time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"31-DIC-2024", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"10/01/2024", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{"05-SEP-2024", time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseSpanishDate(tc.in)
		require.NoError(t, err, "ParseSpanishDate(%q)", tc.in)
		assert.True(t, tc.want.Equal(got), "ParseSpanishDate(%q) = %v, esperado %v", tc.in, got, tc.want)
	}
}

func TestParseSpanishDate_Invalida(t *testing.T) {
	for _, in := range []string{"", "texto", "99-XXX-2024", "2024-08-01"} {
		_, err := ParseSpanishDate(in)
		assert.Error(t, err, "ParseSpanishDate(%q) debe fallar", in)
	}
}

func TestSpanishMonthNumber(t *testing.T) {
	m, ok := SpanishMonthNumber("Agosto")
	require.True(t, ok)
	assert.Equal(t, 8, m)

	m, ok = SpanishMonthNumber("diciembre")
	require.True(t, ok)
	assert.Equal(t, 12, m)

	_, ok = SpanishMonthNumber("augustus")
	assert.False(t, ok)
}
