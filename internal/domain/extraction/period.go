package extraction

import "time"

// Las boletas no traen el período facturado de forma explícita: se infiere
// restando meses a la fecha que sí aparece impresa. La tabla de offsets
// (1 mes para lectura actual/emisión, 2 para próxima lectura/vencimiento)
// está calibrada contra los layouts reales de cada proveedor y debe
// reproducirse tal cual.

// periodBefore resta monthsBack meses calendario a una fecha y devuelve el
// período resultante, retrocediendo de año cuando el mes queda en cero o
// negativo.
func periodBefore(t time.Time, monthsBack int) *Period {
	month := int(t.Month()) - monthsBack
	year := t.Year()
	for month <= 0 {
		month += 12
		year--
	}
	return &Period{Month: month, Year: year}
}

// previousPeriod resta un mes a un período (mes, año) ya conocido.
func previousPeriod(month, year int) *Period {
	if month > 1 {
		return &Period{Month: month - 1, Year: year}
	}
	return &Period{Month: 12, Year: year - 1}
}
