// seed_meters carga el catastro de medidores desde un CSV exportado de
// planilla (separado por punto y coma, codificación ISO-8859-1, como lo
// entregan las áreas de operación).
//
// Formato: client_number;name;type;coverage[;macrozona;instalacion;direccion]
// La primera fila se salta si es encabezado. Los medidores existentes se
// actualizan con los datos de ubicación; los nuevos se crean.
//
// Uso: go run ./cmd/seed_meters medidores.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/sicea-api/pkg/config"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_meters <archivo.csv>")
		os.Exit(1)
	}
	csvPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	meters := postgres.NewMeterRepository(pool)

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Str("archivo", csvPath).Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	// Las planillas llegan en Latin-1; convertimos a UTF-8 al leer.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1 // columnas de ubicación opcionales

	rows, err := r.ReadAll()
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	created, updated, skipped := 0, 0, 0
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		m, err := parseRow(row)
		if err != nil {
			skipped++
			log.Warn().Int("fila", i+1).Err(err).Msg("fila inválida, se omite")
			continue
		}

		existing, err := meters.GetByClientNumber(m.ClientNumber)
		if err != nil {
			log.Fatal().Str("cliente", m.ClientNumber).Err(err).Msg("consultar medidor")
		}
		if existing == nil {
			m.ID = uuid.New().String()
			if err := meters.Create(m); err != nil {
				log.Fatal().Str("cliente", m.ClientNumber).Err(err).Msg("crear medidor")
			}
			created++
			continue
		}
		existing.Name = m.Name
		existing.MeterType = m.MeterType
		existing.Coverage = m.Coverage
		existing.Macrozone = m.Macrozone
		existing.Installation = m.Installation
		existing.Address = m.Address
		if err := meters.Update(existing); err != nil {
			log.Fatal().Str("cliente", m.ClientNumber).Err(err).Msg("actualizar medidor")
		}
		updated++
	}

	log.Info().
		Int("creados", created).
		Int("actualizados", updated).
		Int("omitidos", skipped).
		Msg("catastro de medidores cargado")
}

// isHeader detecta una fila de encabezado exportada de planilla.
func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "client_number")
}

func parseRow(row []string) (*entity.Meter, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("se esperan al menos 4 columnas, hay %d", len(row))
	}
	m := &entity.Meter{
		ClientNumber: strings.TrimSpace(row[0]),
		Name:         strings.TrimSpace(row[1]),
		MeterType:    strings.ToUpper(strings.TrimSpace(row[2])),
		Coverage:     strings.TrimSpace(row[3]),
	}
	if len(row) > 4 {
		m.Macrozone = strings.TrimSpace(row[4])
	}
	if len(row) > 5 {
		m.Installation = strings.TrimSpace(row[5])
	}
	if len(row) > 6 {
		m.Address = strings.TrimSpace(row[6])
	}
	if !m.Validar() {
		return nil, fmt.Errorf("medidor inválido: cliente=%q tipo=%q", m.ClientNumber, m.MeterType)
	}
	return m, nil
}
