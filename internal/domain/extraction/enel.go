package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// EnelExtractor extrae facturas de electricidad (Enel). A diferencia del
// agua, el período no viene como fecha de lectura sino como un par de
// fechas inicio/fin en una misma línea, y varios campos cambian de
// ubicación entre versiones del layout, de ahí las listas de fallback.
type EnelExtractor struct{}

// NewEnelExtractor construye el extractor de electricidad.
func NewEnelExtractor() *EnelExtractor {
	return &EnelExtractor{}
}

// Provider implementa BillExtractor.
func (e *EnelExtractor) Provider() Provider { return ProviderEnel }

// Números de factura, de más específico a menos específico. El último es el
// formato antiguo de 10 dígitos al inicio de línea.
var enelInvoicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)FACTURA ELECTRONICA\s*N°\s*(\d{8})`),
	regexp.MustCompile(`(?im)FACTURA ELECTR[ÓO]NICA\s*N[°º]\s*(\d{8})`),
	regexp.MustCompile(`(?im)N°\s*(\d{8})\s*(?:\n|$)`),
	regexp.MustCompile(`(?im)^(\d{10})\s+(?:Compañía|Cliente)`),
}

// Números de cliente: etiqueta explícita, anclado a la localidad al final de
// la dirección, o anclado a una fecha contigua.
var enelClientPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Número de cliente\s*(\d+(?:-[\dkK]+)?)`),
	regexp.MustCompile(`SANTIAGO\s*-\s*(\d{6,7}-[\dkK])`),
	regexp.MustCompile(`SANTIAGO\s+(\d{6,7}-[\dkK])`),
	regexp.MustCompile(`(\d{6,7}-[\dkK])\s*\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`(\d{7}-[\dkK])\s+\d{2}/\d{2}/\d{4}`),
}

// Período de lectura: par de fechas inicio/fin.
var enelPeriodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Periodo de Lectura\s+(\d{2}/\d{2}/\d{4})\s*.*?\s*(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)Transporte de electricidad.*?(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`),
}

var enelDatePairRe = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)

var enelTariffRe = regexp.MustCompile(`(?i)(AT\d+\s+AREA\s+\d+\s+\S+\s+Caso\s+\d+\s+\([a-z]\))`)

var enelTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total a pagar\s*\$?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Monto Total\s*\$?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)TOTAL A PAGAR\s*\$?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Pagar hasta el.*?\$?\s*([\d.,]+)`),
}

var (
	// Sección de cargos: entre la dirección de suministro y los totales, o el
	// renglón de resumen de medidores que cierra el cuadro.
	enelChargeSectionRe = regexp.MustCompile(`(?is)(?:CLUB HIPICO|AVD TUPPER|Dirección suministro).*?\n(.*?)(?:Total Monto Neto|\d+-[\dkK]\s+[\d,]+\s+[\d,]+\s+\d+\s+\d+-\d+-\d+)`)

	// "Electricidad Consumida (119092kWh) 9.121.637" | "Dem. Horas punta (206,000kW) 1.494.224"
	enelChargeWithUnitRe = regexp.MustCompile(`^([A-Za-zÁÉÍÓÚáéíóúñÑ][A-Za-zÁÉÍÓÚáéíóúñÑ\s.]+?)\s+\((\d+(?:[.,]\d+)?)(k?Wh?|kW)\)\s+(-?[\d.,]+)`)

	// "Cargo por Servicio Público 89.320" (texto extra al final se ignora)
	enelChargeSimpleRe = regexp.MustCompile(`^([A-Za-zÁÉÍÓÚáéíóúñÑ][A-Za-zÁÉÍÓÚáéíóúñÑ\s.]+?)\s+(-?[\d.,]+)(?:\s+[A-Z0-9].*)?$`)
)

// Totales del resumen al pie del cuadro de cargos.
var enelSummaryPatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)Total Monto Neto\s+([\d.,]+)`), "Total Monto Neto"},
	{regexp.MustCompile(`(?i)Total I\.?\s*V\.?\s*A\.?\s*\(19%\)\s+([\d.,]+)`), "Total I.V.A. (19%)"},
	{regexp.MustCompile(`(?i)Monto Exento\s+([\d.,]+)`), "Monto Exento"},
	{regexp.MustCompile(`(?i)Monto Total\s+([\d.,]+)`), "Monto Total"},
}

// Extract implementa BillExtractor para facturas de electricidad.
func (e *EnelExtractor) Extract(text, file string) *Result {
	res := &Result{File: file, Provider: ProviderEnel}

	for _, re := range enelInvoicePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			res.InvoiceNumber = m[1]
			break
		}
	}
	for _, re := range enelClientPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			res.ClientNumber = m[1]
			break
		}
	}
	res.Period = e.resolvePeriod(text)
	if m := enelTariffRe.FindStringSubmatch(text); m != nil {
		res.Tariff = m[1]
	}
	for _, re := range enelTotalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		total, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		res.TotalAmount = &total
		break
	}

	res.Charges = append(res.Charges, e.charges(text)...)
	res.Charges = append(res.Charges, e.summary(text)...)
	return res
}

// resolvePeriod busca el período de lectura: primero con los patrones
// específicos y, si no, dos fechas distintas juntas en una misma línea.
// El mes de la factura es el mes anterior a la fecha final del período.
func (e *EnelExtractor) resolvePeriod(text string) *Period {
	var endDate string
	for _, re := range enelPeriodPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			endDate = m[2]
			break
		}
	}
	if endDate == "" {
		// Línea por línea para garantizar que ambas fechas estén juntas.
		for _, line := range strings.Split(text, "\n") {
			m := enelDatePairRe.FindStringSubmatch(line)
			if m != nil && m[1] != m[2] {
				endDate = m[2]
				break
			}
		}
	}
	if endDate == "" {
		return nil
	}
	date, err := ParseSpanishDate(endDate)
	if err != nil {
		return nil
	}
	return periodBefore(date, 1)
}

// charges recorre la sección de cargos línea a línea. Primero intenta el
// patrón con cantidad entre paréntesis (kWh/kW); si no, el patrón simple
// nombre + monto. Una línea produce a lo más un cargo y las que no
// matchean se omiten.
func (e *EnelExtractor) charges(text string) []Charge {
	section := enelChargeSectionRe.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var charges []Charge
	for _, line := range strings.Split(section[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "Total") || strings.Contains(line, "Monto") {
			continue
		}

		if m := enelChargeWithUnitRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			quantity, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			amount, err := ParseAmount(m[4])
			if err != nil {
				continue
			}
			valueType := m[3]
			switch strings.ToUpper(m[3]) {
			case "WH":
				// Lectura en Wh pelados: convertir a kWh.
				valueType = UnitKWh
				quantity = quantity.Div(decimal.NewFromInt(1000))
			case "KWH":
				valueType = UnitKWh
			case "KW":
				valueType = UnitKW
			}
			charges = append(charges, Charge{Name: name, Value: quantity, ValueType: valueType, Charge: truncInt(amount)})
			continue
		}

		if m := enelChargeSimpleRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			digits := strings.NewReplacer(".", "", ",", "").Replace(m[2])
			if len(digits) < 2 {
				// Un solo dígito suelto no es un monto de cargo creíble.
				continue
			}
			amount, err := ParseAmount(m[2])
			if err != nil {
				continue
			}
			charges = append(charges, Charge{Name: name, Value: decimal.NewFromInt(1), ValueType: UnitUnidad, Charge: truncInt(amount)})
		}
	}
	return charges
}

// summary extrae los totales del pie (Monto Neto, IVA, Exento, Total) como
// cargos planos de cantidad 1.
func (e *EnelExtractor) summary(text string) []Charge {
	var charges []Charge
	for _, p := range enelSummaryPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		charges = append(charges, Charge{Name: p.name, Value: decimal.NewFromInt(1), ValueType: UnitUnidad, Charge: truncInt(amount)})
	}
	return charges
}
