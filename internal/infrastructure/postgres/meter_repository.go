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

var _ repository.MeterRepository = (*MeterRepo)(nil)

const meterColumns = `id, name, client_number, meter_type, coverage, macrozona, instalacion, direccion`

// MeterRepo implementación del puerto MeterRepository sobre PostgreSQL (usable con pool o tx).
type MeterRepo struct {
	q Querier
}

// NewMeterRepository construye el adaptador de persistencia para medidores. Pasar pool o tx (Querier).
func NewMeterRepository(q Querier) *MeterRepo {
	return &MeterRepo{q: q}
}

// Create persiste un nuevo medidor. El número de cliente es único.
func (r *MeterRepo) Create(meter *entity.Meter) error {
	query := `
		INSERT INTO meters (` + meterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		meter.ID, meter.Name, meter.ClientNumber, meter.MeterType,
		meter.Coverage, meter.Macrozone, meter.Installation, meter.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert meter: %w", err)
	}
	return nil
}

// GetOrCreate busca el medidor por número de cliente y lo crea con los
// defaults si no existe. El insert condicional lo hace seguro frente a
// cargas concurrentes del mismo cliente.
func (r *MeterRepo) GetOrCreate(clientNumber string, defaults *entity.Meter) (*entity.Meter, error) {
	query := `
		INSERT INTO meters (` + meterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (client_number) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		defaults.ID, defaults.Name, clientNumber, defaults.MeterType,
		defaults.Coverage, defaults.Macrozone, defaults.Installation, defaults.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create meter: %w", err)
	}
	meter, err := r.GetByClientNumber(clientNumber)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, fmt.Errorf("get or create meter %s: no visible tras insertar", clientNumber)
	}
	return meter, nil
}

// GetByID obtiene un medidor por ID.
func (r *MeterRepo) GetByID(id string) (*entity.Meter, error) {
	query := `SELECT ` + meterColumns + ` FROM meters WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByClientNumber obtiene un medidor por su número de cliente.
func (r *MeterRepo) GetByClientNumber(clientNumber string) (*entity.Meter, error) {
	query := `SELECT ` + meterColumns + ` FROM meters WHERE client_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, clientNumber))
}

// List lista todos los medidores.
func (r *MeterRepo) List() ([]*entity.Meter, error) {
	query := `SELECT ` + meterColumns + ` FROM meters ORDER BY client_number`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	defer rows.Close()
	var list []*entity.Meter
	for rows.Next() {
		var m entity.Meter
		if err := rows.Scan(&m.ID, &m.Name, &m.ClientNumber, &m.MeterType,
			&m.Coverage, &m.Macrozone, &m.Installation, &m.Address); err != nil {
			return nil, fmt.Errorf("scan meter: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza nombre, tipo y ubicación. El número de cliente no cambia.
func (r *MeterRepo) Update(meter *entity.Meter) error {
	query := `
		UPDATE meters SET name = $2, meter_type = $3, coverage = $4, macrozona = $5, instalacion = $6, direccion = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		meter.ID, meter.Name, meter.MeterType, meter.Coverage,
		meter.Macrozone, meter.Installation, meter.Address,
	)
	if err != nil {
		return fmt.Errorf("update meter: %w", err)
	}
	return nil
}

// Delete elimina un medidor por ID.
func (r *MeterRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM meters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meter: %w", err)
	}
	return nil
}

func (r *MeterRepo) scanOne(row pgx.Row) (*entity.Meter, error) {
	var m entity.Meter
	err := row.Scan(&m.ID, &m.Name, &m.ClientNumber, &m.MeterType,
		&m.Coverage, &m.Macrozone, &m.Installation, &m.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meter: %w", err)
	}
	return &m, nil
}
