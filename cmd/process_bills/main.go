// process_bills procesa en lote las boletas PDF que estén en las carpetas
// de entrada configuradas (INPUT_WATER_DIR e INPUT_ENERGY_DIR) y las
// persiste en la base de datos, igual que el endpoint de ingesta.
//
// Uso: go run ./cmd/process_bills
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/application/ingest"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/pdftext"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/storage"
	"github.com/tu-usuario/sicea-api/pkg/config"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

func main() {
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

	store, err := storage.NewLocalStore(cfg.Storage.BillsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de PDFs")
	}

	uc := ingest.NewProcessBatchUseCase(
		pdftext.New(), store,
		postgres.NewMeterRepository(pool),
		postgres.NewBillRepository(pool),
		postgres.NewChargeRepository(pool),
		log,
	)

	var files []ingest.BatchFile
	for _, dir := range []string{cfg.Storage.WaterDir, cfg.Storage.EnergyDir} {
		batch, err := readPDFs(dir)
		if err != nil {
			log.Warn().Str("dir", dir).Err(err).Msg("no se pudo leer la carpeta de entrada")
			continue
		}
		files = append(files, batch...)
	}
	if len(files) == 0 {
		log.Info().Msg("no hay boletas PDF en las carpetas de entrada")
		return
	}

	log.Info().Int("archivos", len(files)).Msg("procesando lote de boletas")
	results := uc.ProcessBatch(files)

	ok, failed := 0, 0
	for _, r := range results {
		if r.Status == dto.ProcessStatusOK {
			ok++
			log.Info().
				Str("archivo", r.File).
				Str("cliente", r.ClientNumber).
				Int("mes", r.Month).
				Int("año", r.Year).
				Msg("boleta procesada")
		} else {
			failed++
			log.Error().Str("archivo", r.File).Str("error", r.Error).Msg("boleta rechazada")
		}
	}
	log.Info().Int("procesadas", ok).Int("rechazadas", failed).Msg("lote finalizado")
	if failed > 0 {
		os.Exit(1)
	}
}

// readPDFs lee a memoria todos los .pdf del directorio (no recursivo).
func readPDFs(dir string) ([]ingest.BatchFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []ingest.BatchFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, ingest.BatchFile{Name: e.Name(), Data: data})
	}
	return files, nil
}
