package usecase

import (
	"github.com/google/uuid"
	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

// MeterUseCase casos de uso CRUD para medidores. El alta normal es lazy
// (al procesar la primera boleta de un cliente); esto cubre el alta manual
// y la edición de nombre/tipo/cobertura.
type MeterUseCase struct {
	repo repository.MeterRepository
}

// NewMeterUseCase construye el caso de uso.
func NewMeterUseCase(repo repository.MeterRepository) *MeterUseCase {
	return &MeterUseCase{repo: repo}
}

// Create crea un medidor. El número de cliente es clave natural única.
func (uc *MeterUseCase) Create(in dto.CreateMeterRequest) (*dto.MeterResponse, error) {
	meter := &entity.Meter{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ClientNumber: in.ClientNumber,
		MeterType:    in.MeterType,
		Coverage:     in.Coverage,
		Macrozone:    in.Macrozone,
		Installation: in.Installation,
		Address:      in.Address,
	}
	if !meter.Validar() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByClientNumber(in.ClientNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(meter); err != nil {
		return nil, err
	}
	return toMeterResponse(meter), nil
}

// GetByID obtiene un medidor por ID.
func (uc *MeterUseCase) GetByID(id string) (*dto.MeterResponse, error) {
	meter, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, nil
	}
	return toMeterResponse(meter), nil
}

// List lista todos los medidores.
func (uc *MeterUseCase) List() ([]dto.MeterResponse, error) {
	meters, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.MeterResponse, 0, len(meters))
	for _, m := range meters {
		out = append(out, *toMeterResponse(m))
	}
	return out, nil
}

// Update edita nombre, tipo o cobertura. El número de cliente no se
// modifica: es la clave con la que matchean las boletas.
func (uc *MeterUseCase) Update(id string, in dto.UpdateMeterRequest) (*dto.MeterResponse, error) {
	meter, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, nil
	}
	if in.Name != nil {
		meter.Name = *in.Name
	}
	if in.MeterType != nil {
		meter.MeterType = *in.MeterType
	}
	if in.Coverage != nil {
		meter.Coverage = *in.Coverage
	}
	if in.Macrozone != nil {
		meter.Macrozone = *in.Macrozone
	}
	if in.Installation != nil {
		meter.Installation = *in.Installation
	}
	if in.Address != nil {
		meter.Address = *in.Address
	}
	if !meter.Validar() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(meter); err != nil {
		return nil, err
	}
	return toMeterResponse(meter), nil
}

// Delete elimina un medidor por ID.
func (uc *MeterUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMeterResponse(m *entity.Meter) *dto.MeterResponse {
	if m == nil {
		return nil
	}
	return &dto.MeterResponse{
		ID:           m.ID,
		Name:         m.Name,
		ClientNumber: m.ClientNumber,
		MeterType:    m.MeterType,
		Coverage:     m.Coverage,
		Macrozone:    m.Macrozone,
		Installation: m.Installation,
		Address:      m.Address,
	}
}
