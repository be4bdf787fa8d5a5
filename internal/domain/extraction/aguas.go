package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AguasExtractor extrae boletas de agua potable (Aguas Andinas).
// El layout tiene tres zonas: el cuadro de cargos entre VENCIMIENTO y
// "El valor neto", el cuadro informativo de tarifas unitarias ("aguas
// informa") y el detalle de consumo con lecturas del medidor.
type AguasExtractor struct{}

// NewAguasExtractor construye el extractor de agua.
func NewAguasExtractor() *AguasExtractor {
	return &AguasExtractor{}
}

// Provider implementa BillExtractor.
func (e *AguasExtractor) Provider() Provider { return ProviderAguas }

var (
	aguasInvoiceRe = regexp.MustCompile(`(?i)(?:FACTURA|BOLETA)\s+ELECTR[ÓO]NICA\s*N[°º]\s*(\d+)`)
	aguasClientRe  = regexp.MustCompile(`Nro de cuenta\s*(\d+-[\dkK]+)`)
	aguasTotalRe   = regexp.MustCompile(`TOTAL A PAGAR\s*\$\s*([\d.,]+)`)

	// Sección de cargos: entre el encabezado VENCIMIENTO...TOTAL A PAGAR y el
	// pie del cuadro. Incluye descuentos posteriores a TOTAL VENTA.
	aguasChargeSectionRe = regexp.MustCompile(`(?s)VENCIMIENTO.*?TOTAL A PAGAR.*?\n(.*?)(?:El valor neto|Acogido Pago|Los valores con IVA)`)

	// Línea de cargo: nombre en mayúsculas (admite paréntesis y %) seguido de
	// uno o dos valores numéricos, positivos o negativos.
	// "IVA (19%) 23.941" | "CONSUMO AGUA 40,00 18.464" | "DESCUENTO LEY REDONDEO -7"
	aguasChargeLineRe = regexp.MustCompile(`^([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s()%\d]+?)\s+(-?[\d.,]+)(?:\s+(-?[\d.,]+))?\s*$`)

	// Cuadro "aguas informa": tarifas unitarias en formato "descripción = $ valor".
	aguasRateSectionRe = regexp.MustCompile(`(?s)Los valores con IVA.*?son los siguientes:(.*?)(?:Plantas de Tratamiento|LECTURA ACTUAL|Corte o Reposición)`)
	aguasRateRe        = regexp.MustCompile(`([A-Za-zÁÉÍÓÚáéíóúñÑ][A-Za-zÁÉÍÓÚáéíóúñÑ\s\d°]+?)\s*[=:]\s*\$\s*([\d.,]+)`)

	// Fallback de período: nombre de mes completo + año en cualquier parte.
	aguasMonthYearRe = regexp.MustCompile(`(?i)(Enero|Febrero|Marzo|Abril|Mayo|Junio|Julio|Agosto|Septiembre|Octubre|Noviembre|Diciembre)\s+(\d{4})`)
)

// aguasPeriodPatterns se prueban en orden; gana el primero que matchea.
// monthsBack: 1 para lectura actual/emisión, 2 para próxima lectura y
// vencimiento (esas fechas caen dos meses después del período facturado).
var aguasPeriodPatterns = []struct {
	re         *regexp.Regexp
	monthsBack int
}{
	{regexp.MustCompile(`(?is)LECTURA ACTUAL\s*(\d{2}-[A-Z]{3}-\d{4})`), 1},
	{regexp.MustCompile(`(?is)LECTURA ACTUAL\s*(\d{2}/\d{2}/\d{4})`), 1},
	{regexp.MustCompile(`(?is)LECTURA ACTUAL\s+(\d{2}-[A-Za-z]{3}-\d{4})`), 1},
	{regexp.MustCompile(`(?is)Periodo de Lectura.*?(\d{2}-[A-Z]{3}-\d{4})`), 1},
	{regexp.MustCompile(`(?is)LECTURA ANTERIOR\s*\d{2}-[A-Z]{3}-\d{4}\s*[\d.,]+\s*m3.*?LECTURA ACTUAL\s*(\d{2}-[A-Z]{3}-\d{4})`), 1},
	{regexp.MustCompile(`(?is)FECHA ESTIMADA PRÓXIMA LECTURA\s+(\d{2}-[A-Z]{3}-\d{4})`), 2},
	{regexp.MustCompile(`(?is)FECHA EMISIÓN:\s*(\d{2}-[A-Z]{3}-\d{4})`), 1},
	{regexp.MustCompile(`(?is)VENCIMIENTO\s+(\d{2}-[A-Z]{3}-\d{4})`), 2},
}

// Tarifas de corte/reposición que pueden aparecer fuera del cuadro de tarifas.
var aguasCorteRates = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`Corte o Reposición 1era instancia[:\s]*\$\s*([\d.,]+)`), "Tarifa Corte o Reposición 1era instancia"},
	{regexp.MustCompile(`Corte o Reposición 2da instancia[:\s]*\$\s*([\d.,]+)`), "Tarifa Corte o Reposición 2da instancia"},
}

// Clases de patrón del detalle de consumo.
const (
	detailDateValue = "date_value" // fecha + valor numérico (lecturas)
	detailValue     = "value"      // valor numérico
	detailText      = "text"       // valor de texto (claves, códigos)
	detailLastPaid  = "last_paid"  // fecha + monto (último pago)
)

var aguasDetailPatterns = []struct {
	re        *regexp.Regexp
	name      string
	valueType string
	kind      string
}{
	// Lecturas con fecha y valor; la fecha se omite del nombre para poder
	// agrupar la serie histórica por cargo.
	{regexp.MustCompile(`LECTURA ACTUAL\s+(\d{2}-[A-Z]{3}-\d{4})\s+([\d.,]+)\s+m3`), "Lectura actual", UnitM3, detailDateValue},
	{regexp.MustCompile(`LECTURA ANTERIOR\s+(\d{2}-[A-Z]{3}-\d{4})\s+([\d.,]+)\s+m3`), "Lectura anterior", UnitM3, detailDateValue},

	{regexp.MustCompile(`DIFERENCIA DE LECTURAS\s+([\d.,]+)\s+m3`), "Diferencia de lecturas", UnitM3, detailValue},
	{regexp.MustCompile(`CONSUMO TOTAL\s+([\d.,]+)\s+m3`), "Consumo total", UnitM3, detailValue},
	{regexp.MustCompile(`LÍMITE DE SOBRECONSUMO\s+([\d.,]+)\s+M3`), "Límite de sobreconsumo", UnitM3, detailValue},

	{regexp.MustCompile(`Número de Medidor\s+(\d+)`), "Número de medidor", UnitNumero, detailValue},
	{regexp.MustCompile(`Diametro Arranque individual[-\s]+([\d]+)`), "Diámetro arranque", "mm", detailValue},

	{regexp.MustCompile(`Grupo Tarifario\s+([A-Z_0-9]+)`), "Grupo tarifario", UnitCodigo, detailText},
	{regexp.MustCompile(`Clave Facturación\s+([A-Za-z\s]+?)(?:\n|Clave)`), "Clave facturación", UnitCodigo, detailText},
	{regexp.MustCompile(`Clave Lectura\s+([A-Z\s]+?)(?:\n|ACUSE)`), "Clave lectura", UnitCodigo, detailText},

	{regexp.MustCompile(`Factor de Cobro del Periodo\s+([\d.,]+)`), "Factor de cobro del periodo", "factor", detailValue},

	{regexp.MustCompile(`FECHA ESTIMADA PRÓXIMA LECTURA\s+(\d{2}-[A-Z]{3}-\d{4})`), "Fecha próxima lectura", UnitFecha, detailText},
	{regexp.MustCompile(`Ultimo pago\s+(\d{2}-[A-Z]{3}-\d{4})\s+\$\s*([\d.,]+)`), "Último pago", UnitPesos, detailLastPaid},
}

// Extract implementa BillExtractor para boletas de agua.
func (e *AguasExtractor) Extract(text, file string) *Result {
	res := &Result{File: file, Provider: ProviderAguas}

	if m := aguasInvoiceRe.FindStringSubmatch(text); m != nil {
		res.InvoiceNumber = m[1]
	}
	if m := aguasClientRe.FindStringSubmatch(text); m != nil {
		res.ClientNumber = m[1]
	}
	res.Period = e.resolvePeriod(text)
	if m := aguasTotalRe.FindStringSubmatch(text); m != nil {
		if total, err := ParseAmount(m[1]); err == nil {
			res.TotalAmount = &total
		}
	}

	res.Charges = append(res.Charges, e.mainCharges(text)...)
	res.Charges = append(res.Charges, e.unitRates(text)...)
	res.Charges = append(res.Charges, e.consumptionDetails(text)...)
	return res
}

// resolvePeriod prueba la lista ordenada de fechas candidatas y resta el
// offset de meses correspondiente. Si una fecha matcheada no parsea, se
// continúa con el siguiente patrón en vez de abortar. Sin fecha alguna,
// cae al nombre de mes + año en el texto (también restando un mes).
func (e *AguasExtractor) resolvePeriod(text string) *Period {
	for _, p := range aguasPeriodPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		date, err := ParseSpanishDate(m[1])
		if err != nil {
			continue
		}
		return periodBefore(date, p.monthsBack)
	}

	if m := aguasMonthYearRe.FindStringSubmatch(text); m != nil {
		month, ok := SpanishMonthNumber(m[1])
		if ok {
			var year int
			for _, r := range m[2] {
				year = year*10 + int(r-'0')
			}
			return previousPeriod(month, year)
		}
	}
	return nil
}

// mainCharges recorre línea a línea el cuadro de cargos y clasifica cada
// línea según su estructura: dos números finales (cantidad + monto) o uno
// solo (monto plano). Las líneas que no matchean se omiten en silencio.
func (e *AguasExtractor) mainCharges(text string) []Charge {
	section := aguasChargeSectionRe.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var charges []Charge
	for _, line := range strings.Split(section[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := aguasChargeLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])

		if m[3] != "" {
			// Cantidad y monto: "CONSUMO AGUA 40,00 18.464"
			value, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			amount, err := ParseAmount(m[3])
			if err != nil {
				continue
			}
			valueType := UnitM3
			if strings.Contains(name, "CARGO FIJO") || strings.Contains(name, "DESPACHO") {
				valueType = UnitUnidad
			}
			charges = append(charges, Charge{Name: name, Value: value, ValueType: valueType, Charge: truncInt(amount)})
		} else {
			// Solo monto: "IVA (19%) 23.941" -> cantidad implícita 1
			amount, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			charges = append(charges, Charge{Name: name, Value: decimal.NewFromInt(1), ValueType: UnitUnidad, Charge: truncInt(amount)})
		}
	}
	return charges
}

// unitRates extrae las tarifas unitarias informativas del cuadro
// "aguas informa" ("descripción = $ valor") más las de corte/reposición
// que pueden aparecer fuera del cuadro. Siempre charge = 0.
func (e *AguasExtractor) unitRates(text string) []Charge {
	var rates []Charge

	if section := aguasRateSectionRe.FindStringSubmatch(text); section != nil {
		for _, m := range aguasRateRe.FindAllStringSubmatch(section[1], -1) {
			name := strings.TrimSpace(m[1])
			value, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			if !strings.HasPrefix(name, "Tarifa") {
				name = "Tarifa " + name
			}
			rates = append(rates, Charge{Name: name, Value: value, ValueType: UnitRatePerUnit})
		}
	}

	for _, corte := range aguasCorteRates {
		m := corte.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if containsChargeName(rates, corte.name) {
			continue
		}
		value, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		rates = append(rates, Charge{Name: corte.name, Value: value, ValueType: UnitRatePerUnit})
	}
	return rates
}

// consumptionDetails extrae el detalle de consumo (lecturas, claves,
// factores) como líneas informativas con charge = 0. Un patrón cuyo valor
// no parsea se salta y se sigue con el resto.
func (e *AguasExtractor) consumptionDetails(text string) []Charge {
	var details []Charge
	for _, p := range aguasDetailPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch p.kind {
		case detailDateValue:
			value, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			details = append(details, Charge{Name: p.name, Value: value, ValueType: p.valueType})
		case detailValue:
			value, err := ParseAmount(m[1])
			if err != nil {
				continue
			}
			details = append(details, Charge{Name: p.name, Value: value, ValueType: p.valueType})
		case detailText:
			details = append(details, Charge{Name: p.name + ": " + strings.TrimSpace(m[1]), Value: decimal.Zero, ValueType: p.valueType})
		case detailLastPaid:
			amount, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			details = append(details, Charge{Name: p.name + " (" + m[1] + ")", Value: amount, ValueType: p.valueType})
		}
	}
	return details
}

func containsChargeName(charges []Charge, name string) bool {
	for _, c := range charges {
		if c.Name == name {
			return true
		}
	}
	return false
}
