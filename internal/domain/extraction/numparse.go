package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Las boletas chilenas usan la convención latinoamericana: "." separa miles
// y "," decimales ("1.234,56"). Los meses abreviados vienen en español
// (01-AGO-2024) y a veces en formato dd/mm/yyyy.

var spanishMonthAbbrev = map[string]string{
	"ENE": "Jan", "FEB": "Feb", "MAR": "Mar", "ABR": "Apr",
	"MAY": "May", "JUN": "Jun", "JUL": "Jul", "AGO": "Aug",
	"SEP": "Sep", "OCT": "Oct", "NOV": "Nov", "DIC": "Dec",
}

var spanishMonthNames = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

// ParseAmount convierte un monto con convención latinoamericana a decimal:
// quita los puntos de miles y usa la coma como separador decimal.
// Acepta montos negativos (descuentos: "-7").
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	return d, nil
}

// ParseSpanishDate parsea fechas de boleta: primero dd-MMM-yyyy con mes
// abreviado en español (01-AGO-2024), luego dd/mm/yyyy como fallback.
func ParseSpanishDate(s string) (time.Time, error) {
	candidate := strings.ToUpper(strings.TrimSpace(s))
	for es, en := range spanishMonthAbbrev {
		if strings.Contains(candidate, es) {
			candidate = strings.Replace(candidate, es, en, 1)
			break
		}
	}
	if t, err := time.Parse("02-Jan-2006", candidate); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02/01/2006", candidate); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", s)
}

// SpanishMonthNumber devuelve el número (1..12) de un nombre de mes completo
// en español, sin distinguir mayúsculas. ok=false si no es un mes.
func SpanishMonthNumber(name string) (int, bool) {
	m, ok := spanishMonthNames[strings.ToLower(name)]
	return m, ok
}

// truncInt convierte un monto decimal a pesos enteros truncando hacia cero,
// preservando el signo (los descuentos quedan negativos).
func truncInt(d decimal.Decimal) int {
	return int(d.IntPart())
}
