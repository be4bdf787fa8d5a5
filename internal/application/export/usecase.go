package export

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

// Tipos de exportación aceptados en meter_type.
const (
	ExportWater       = "WATER"
	ExportElectricity = "ELECTRICITY"
	ExportBoth        = "BOTH"
	ExportAll         = "ALL"
)

// ExportExcelUseCase genera el Excel de facturas: hoja "Agua" y/o
// "Electricidad" con identificación del medidor, cifras destacadas y la
// desagregación dinámica de cargos (dos columnas por cargo).
type ExportExcelUseCase struct {
	meters  repository.MeterRepository
	bills   repository.BillRepository
	charges repository.ChargeRepository
}

// NewExportExcelUseCase construye el caso de uso.
func NewExportExcelUseCase(meters repository.MeterRepository, bills repository.BillRepository, charges repository.ChargeRepository) *ExportExcelUseCase {
	return &ExportExcelUseCase{meters: meters, bills: bills, charges: charges}
}

// billRow boleta con su medidor y cargos ya resueltos.
type billRow struct {
	bill    *entity.Bill
	meter   *entity.Meter
	charges []*entity.Charge
}

// parsePeriod convierte "YYYY-MM" a período absoluto en meses.
func parsePeriod(s string) (int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	return year*12 + month, nil
}

// Export genera el archivo. ALL exporta el histórico completo sin fechas;
// los demás tipos exigen start/end en YYYY-MM. Devuelve nombre sugerido y
// contenido.
func (uc *ExportExcelUseCase) Export(meterType, startDate, endDate string) (string, []byte, error) {
	var startPeriod, endPeriod int
	switch meterType {
	case ExportAll:
		// Histórico completo: sin acotar.
	case ExportWater, ExportElectricity, ExportBoth:
		if startDate == "" || endDate == "" {
			return "", nil, domain.ErrInvalidInput
		}
		var err error
		if startPeriod, err = parsePeriod(startDate); err != nil {
			return "", nil, domain.ErrInvalidInput
		}
		if endPeriod, err = parsePeriod(endDate); err != nil {
			return "", nil, domain.ErrInvalidInput
		}
	default:
		return "", nil, domain.ErrInvalidInput
	}

	f := excelize.NewFile()
	defer f.Close()

	switch meterType {
	case ExportBoth, ExportAll:
		if err := uc.writeSheet(f, "Agua", entity.MeterTypeWater, startPeriod, endPeriod); err != nil {
			return "", nil, err
		}
		if err := uc.writeSheet(f, "Electricidad", entity.MeterTypeElectricity, startPeriod, endPeriod); err != nil {
			return "", nil, err
		}
	case ExportWater:
		if err := uc.writeSheet(f, "Agua", entity.MeterTypeWater, startPeriod, endPeriod); err != nil {
			return "", nil, err
		}
	case ExportElectricity:
		if err := uc.writeSheet(f, "Electricidad", entity.MeterTypeElectricity, startPeriod, endPeriod); err != nil {
			return "", nil, err
		}
	}
	// La hoja por defecto sobra una vez creadas las del informe.
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		_ = f.DeleteSheet("Sheet1")
	}

	var filename string
	switch meterType {
	case ExportAll:
		filename = "Facturas_Historico_Completo.xlsx"
	case ExportBoth:
		filename = fmt.Sprintf("Facturas_Completas_%s_a_%s.xlsx", startDate, endDate)
	case ExportWater:
		filename = fmt.Sprintf("Facturas_AguasAndinas_%s_a_%s.xlsx", startDate, endDate)
	default:
		filename = fmt.Sprintf("Facturas_Enel_%s_a_%s.xlsx", startDate, endDate)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, err
	}
	return filename, buf.Bytes(), nil
}

// rows junta boletas del tipo pedido con su medidor y cargos.
func (uc *ExportExcelUseCase) rows(meterType string, startPeriod, endPeriod int) ([]billRow, error) {
	bills, err := uc.bills.List(repository.BillFilter{
		MeterType:   meterType,
		StartPeriod: startPeriod,
		EndPeriod:   endPeriod,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]billRow, 0, len(bills))
	for _, b := range bills {
		meter, err := uc.meters.GetByID(b.MeterID)
		if err != nil {
			return nil, err
		}
		charges, err := uc.charges.ListByBill(b.ID)
		if err != nil {
			return nil, err
		}
		if meter == nil {
			meter = &entity.Meter{}
		}
		rows = append(rows, billRow{bill: b, meter: meter, charges: charges})
	}
	return rows, nil
}

// uniqueCharges nombres de cargos con valor monetario o de consumo,
// excluyendo las líneas puramente informativas (tarifas unitarias, claves
// de contexto, fechas). Ordenados para que las columnas sean estables.
func uniqueCharges(rows []billRow) []string {
	names := map[string]struct{}{}
	for _, r := range rows {
		for _, c := range r.charges {
			hasMoney := c.Charge != 0
			hasQuantity := c.Value.IsPositive() && (c.ValueType == "m3" || c.ValueType == "kWh")
			informative := (c.Charge == 0 && (c.ValueType == "código" || c.ValueType == "fecha" || c.ValueType == "texto" || c.ValueType == "número")) ||
				strings.HasPrefix(c.Name, "Tarifa") ||
				strings.Contains(c.Name, "Factor de cobro") ||
				strings.Contains(c.Name, "Grupo tarifario") ||
				strings.Contains(c.Name, "Último pago") ||
				strings.Contains(c.Name, "Diámetro arranque")
			if (hasMoney || hasQuantity) && !informative {
				names[c.Name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// consumption busca el cargo de consumo principal de la boleta.
func consumption(r billRow, meterType string) (float64, bool) {
	needle := "CONSUMO AGUA"
	if meterType == entity.MeterTypeElectricity {
		needle = "Electricidad Consumida"
	}
	for _, c := range r.charges {
		if strings.Contains(c.Name, needle) {
			v, _ := c.Value.Float64()
			return v, true
		}
	}
	return 0, false
}

// writeSheet arma una hoja: filas 1-3 de encabezados (grupos combinados,
// nombres de cargos y sub-encabezados) y una fila por boleta.
func (uc *ExportExcelUseCase) writeSheet(f *excelize.File, sheet, meterType string, startPeriod, endPeriod int) error {
	rows, err := uc.rows(meterType, startPeriod, endPeriod)
	if err != nil {
		return err
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return err
	}

	isElectricity := meterType == entity.MeterTypeElectricity
	idHeaders := []string{"ID Factura", "N° de Cliente"}
	if isElectricity {
		idHeaders = append(idHeaders, "Tarifa")
	}
	idHeaders = append(idHeaders, "Macrozona", "Instalación", "Dirección")

	consumoLabel := "Consumo [m3]"
	unitHeader := "m3"
	if isElectricity {
		consumoLabel = "Consumo [kWh]"
		unitHeader = "kWh/kW"
	}
	cifrasHeaders := []string{"Período", consumoLabel, "Total a Pagar [$]"}

	charges := uniqueCharges(rows)
	numIDCols := len(idHeaders)
	lastCifrasCol := numIDCols + len(cifrasHeaders)
	firstChargeCol := lastCifrasCol + 1
	lastChargeCol := lastCifrasCol + len(charges)*2

	// Filas 1-2: grupos combinados.
	idEnd, _ := excelize.CoordinatesToCellName(numIDCols, 2)
	if err := f.MergeCell(sheet, "A1", idEnd); err != nil {
		return err
	}
	cifrasStart, _ := excelize.CoordinatesToCellName(numIDCols+1, 1)
	cifrasEnd, _ := excelize.CoordinatesToCellName(lastCifrasCol, 2)
	if err := f.MergeCell(sheet, cifrasStart, cifrasEnd); err != nil {
		return err
	}
	_ = f.SetCellValue(sheet, "A1", "IDENTIFICACIÓN")
	_ = f.SetCellValue(sheet, cifrasStart, "CIFRAS DESTACADAS")

	if len(charges) > 0 {
		start, _ := excelize.CoordinatesToCellName(firstChargeCol, 1)
		end, _ := excelize.CoordinatesToCellName(lastChargeCol, 1)
		if err := f.MergeCell(sheet, start, end); err != nil {
			return err
		}
		_ = f.SetCellValue(sheet, start, "Desagregación de Cargos")

		// Fila 2: nombre de cada cargo sobre su par de columnas.
		col := firstChargeCol
		for _, name := range charges {
			a, _ := excelize.CoordinatesToCellName(col, 2)
			b, _ := excelize.CoordinatesToCellName(col+1, 2)
			if err := f.MergeCell(sheet, a, b); err != nil {
				return err
			}
			_ = f.SetCellValue(sheet, a, name)
			col += 2
		}
	}

	// Fila 3: sub-encabezados.
	col := 1
	for _, h := range append(append([]string{}, idHeaders...), cifrasHeaders...) {
		cell, _ := excelize.CoordinatesToCellName(col, 3)
		_ = f.SetCellValue(sheet, cell, h)
		col++
	}
	for range charges {
		a, _ := excelize.CoordinatesToCellName(col, 3)
		b, _ := excelize.CoordinatesToCellName(col+1, 3)
		_ = f.SetCellValue(sheet, a, unitHeader)
		_ = f.SetCellValue(sheet, b, "Monto [$]")
		col += 2
	}

	lastHeaderCell, _ := excelize.CoordinatesToCellName(max(lastChargeCol, lastCifrasCol), 3)
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return err
	}
	_ = f.SetRowHeight(sheet, 1, 30)
	_ = f.SetColWidth(sheet, "A", "B", 16)

	// Fila 4+: datos.
	for i, r := range rows {
		rowNum := i + 4
		values := []interface{}{r.bill.InvoiceNumber, r.meter.ClientNumber}
		if isElectricity {
			values = append(values, r.bill.Tariff)
		}
		values = append(values, r.meter.Macrozone, r.meter.Installation, r.meter.Address)
		values = append(values, fmt.Sprintf("%02d/%d", r.bill.Month, r.bill.Year))
		if v, ok := consumption(r, meterType); ok {
			values = append(values, v)
		} else {
			values = append(values, "")
		}
		values = append(values, r.bill.TotalToPay.IntPart())

		col := 1
		for _, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
			col++
		}

		byName := map[string]*entity.Charge{}
		for _, c := range r.charges {
			if _, ok := byName[c.Name]; !ok {
				byName[c.Name] = c
			}
		}
		for _, name := range charges {
			qtyCell, _ := excelize.CoordinatesToCellName(col, rowNum)
			amountCell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if c, ok := byName[name]; ok {
				if c.Value.IsPositive() && (c.ValueType == "m3" || c.ValueType == "kWh") {
					v, _ := c.Value.Float64()
					_ = f.SetCellValue(sheet, qtyCell, v)
				}
				if c.Charge != 0 {
					_ = f.SetCellValue(sheet, amountCell, c.Charge)
				}
			}
			col += 2
		}
	}
	return nil
}
