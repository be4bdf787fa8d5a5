package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, meter_id, month, year, total_to_pay, invoice_number, tariff, pdf_filename`

// BillRepo implementación del puerto BillRepository sobre PostgreSQL (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador de persistencia para boletas. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste una boleta. (meter_id, month, year) es único: un período
// repetido devuelve ErrDuplicate.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.MeterID, bill.Month, bill.Year,
		bill.TotalToPay, bill.InvoiceNumber, bill.Tariff, bill.PDFFilename,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una boleta por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByMeterAndPeriod obtiene la boleta de un medidor para un mes calendario.
func (r *BillRepo) GetByMeterAndPeriod(meterID string, month, year int) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE meter_id = $1 AND month = $2 AND year = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, meterID, month, year))
}

// Exists consulta de solo lectura usada por el validador de lotes.
func (r *BillRepo) Exists(meterID string, month, year int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM bills WHERE meter_id = $1 AND month = $2 AND year = $3)`,
		meterID, month, year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("bill exists: %w", err)
	}
	return exists, nil
}

// List lista boletas con filtros opcionales. Los argumentos en cero/vacío
// no filtran; el rango usa el período absoluto year*12 + month.
func (r *BillRepo) List(filter repository.BillFilter) ([]*entity.Bill, error) {
	query := `
		SELECT b.id, b.meter_id, b.month, b.year, b.total_to_pay, b.invoice_number, b.tariff, b.pdf_filename
		FROM bills b
		JOIN meters m ON m.id = b.meter_id
		WHERE ($1 = '' OR m.client_number = $1)
		  AND ($2 = '' OR m.meter_type = $2)
		  AND ($3 = 0 OR b.month = $3)
		  AND ($4 = 0 OR b.year = $4)
		  AND ($5 = 0 OR b.year * 12 + b.month >= $5)
		  AND ($6 = 0 OR b.year * 12 + b.month <= $6)
		ORDER BY b.year, b.month, m.client_number`
	rows, err := r.q.Query(context.Background(), query,
		filter.ClientNumber, filter.MeterType, filter.Month, filter.Year,
		filter.StartPeriod, filter.EndPeriod,
	)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.MeterID, &b.Month, &b.Year,
			&b.TotalToPay, &b.InvoiceNumber, &b.Tariff, &b.PDFFilename); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de la boleta.
func (r *BillRepo) Update(bill *entity.Bill) error {
	query := `
		UPDATE bills SET month = $2, year = $3, total_to_pay = $4, invoice_number = $5, tariff = $6, pdf_filename = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.Month, bill.Year, bill.TotalToPay,
		bill.InvoiceNumber, bill.Tariff, bill.PDFFilename,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update bill: %w", err)
	}
	return nil
}

// Delete elimina una boleta por ID.
func (r *BillRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

func (r *BillRepo) scanOne(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(&b.ID, &b.MeterID, &b.Month, &b.Year,
		&b.TotalToPay, &b.InvoiceNumber, &b.Tariff, &b.PDFFilename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}
