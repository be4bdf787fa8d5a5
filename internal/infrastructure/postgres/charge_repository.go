package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

var _ repository.ChargeRepository = (*ChargeRepo)(nil)

// ChargeRepo implementación del puerto ChargeRepository sobre PostgreSQL (usable con pool o tx).
type ChargeRepo struct {
	q Querier
}

// NewChargeRepository construye el adaptador de persistencia para cargos. Pasar pool o tx (Querier).
func NewChargeRepository(q Querier) *ChargeRepo {
	return &ChargeRepo{q: q}
}

// Create persiste un cargo de una boleta.
func (r *ChargeRepo) Create(charge *entity.Charge) error {
	query := `
		INSERT INTO charges (id, bill_id, name, value, value_type, charge)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		charge.ID, charge.BillID, charge.Name, charge.Value, charge.ValueType, charge.Charge,
	)
	if err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}
	return nil
}

// ListByBill lista los cargos de una boleta en orden de inserción
// (columna seq bigserial de la tabla).
func (r *ChargeRepo) ListByBill(billID string) ([]*entity.Charge, error) {
	query := `
		SELECT id, bill_id, name, value, value_type, charge
		FROM charges WHERE bill_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()
	var list []*entity.Charge
	for rows.Next() {
		var c entity.Charge
		if err := rows.Scan(&c.ID, &c.BillID, &c.Name, &c.Value, &c.ValueType, &c.Charge); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DeleteByBill elimina todos los cargos de una boleta.
func (r *ChargeRepo) DeleteByBill(billID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM charges WHERE bill_id = $1`, billID)
	if err != nil {
		return fmt.Errorf("delete charges: %w", err)
	}
	return nil
}
