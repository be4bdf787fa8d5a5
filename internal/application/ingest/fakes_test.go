package ingest

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

// fakeTexts devuelve los bytes del documento como si fueran el texto
// extraído del PDF; un contenido que empieza con "!" simula un PDF ilegible.
type fakeTexts struct{}

func (fakeTexts) Text(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("!")) {
		return "", errors.New("pdf ilegible")
	}
	return string(data), nil
}

func (f fakeTexts) FirstPages(data []byte, n int) (string, error) {
	return f.Text(data)
}

type fakeStore struct {
	files map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{files: map[string][]byte{}} }

func (s *fakeStore) Save(name string, data []byte) error {
	s.files[name] = data
	return nil
}

func (s *fakeStore) Open(name string) (io.ReadCloser, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Remove(name string) error {
	delete(s.files, name)
	return nil
}

type fakeMeterRepo struct {
	byClient map[string]*entity.Meter
	creates  int
}

func newFakeMeterRepo() *fakeMeterRepo { return &fakeMeterRepo{byClient: map[string]*entity.Meter{}} }

func (r *fakeMeterRepo) Create(m *entity.Meter) error {
	if _, ok := r.byClient[m.ClientNumber]; ok {
		return domain.ErrDuplicate
	}
	r.creates++
	r.byClient[m.ClientNumber] = m
	return nil
}

func (r *fakeMeterRepo) GetOrCreate(clientNumber string, defaults *entity.Meter) (*entity.Meter, error) {
	if m, ok := r.byClient[clientNumber]; ok {
		return m, nil
	}
	if err := r.Create(defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (r *fakeMeterRepo) GetByID(id string) (*entity.Meter, error) {
	for _, m := range r.byClient {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMeterRepo) GetByClientNumber(clientNumber string) (*entity.Meter, error) {
	return r.byClient[clientNumber], nil
}

func (r *fakeMeterRepo) List() ([]*entity.Meter, error) {
	out := make([]*entity.Meter, 0, len(r.byClient))
	for _, m := range r.byClient {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMeterRepo) Update(m *entity.Meter) error { return nil }
func (r *fakeMeterRepo) Delete(id string) error       { return nil }

type billKey struct {
	meterID     string
	month, year int
}

type fakeBillRepo struct {
	byKey   map[billKey]*entity.Bill
	creates int
}

func newFakeBillRepo() *fakeBillRepo { return &fakeBillRepo{byKey: map[billKey]*entity.Bill{}} }

func (r *fakeBillRepo) Create(b *entity.Bill) error {
	key := billKey{meterID: b.MeterID, month: b.Month, year: b.Year}
	if _, ok := r.byKey[key]; ok {
		return domain.ErrDuplicate
	}
	r.creates++
	r.byKey[key] = b
	return nil
}

func (r *fakeBillRepo) GetByID(id string) (*entity.Bill, error) {
	for _, b := range r.byKey {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) GetByMeterAndPeriod(meterID string, month, year int) (*entity.Bill, error) {
	return r.byKey[billKey{meterID: meterID, month: month, year: year}], nil
}

func (r *fakeBillRepo) Exists(meterID string, month, year int) (bool, error) {
	_, ok := r.byKey[billKey{meterID: meterID, month: month, year: year}]
	return ok, nil
}

func (r *fakeBillRepo) List(filter repository.BillFilter) ([]*entity.Bill, error) {
	out := make([]*entity.Bill, 0, len(r.byKey))
	for _, b := range r.byKey {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBillRepo) Update(b *entity.Bill) error { return nil }
func (r *fakeBillRepo) Delete(id string) error      { return nil }

type fakeChargeRepo struct {
	charges []*entity.Charge
}

func (r *fakeChargeRepo) Create(c *entity.Charge) error {
	r.charges = append(r.charges, c)
	return nil
}

func (r *fakeChargeRepo) ListByBill(billID string) ([]*entity.Charge, error) {
	var out []*entity.Charge
	for _, c := range r.charges {
		if c.BillID == billID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChargeRepo) DeleteByBill(billID string) error {
	kept := r.charges[:0]
	for _, c := range r.charges {
		if c.BillID != billID {
			kept = append(kept, c)
		}
	}
	r.charges = kept
	return nil
}

// Boleta de agua mínima: cliente, fecha de lectura, total y dos cargos.
var aguasBatchText = strings.Join([]string{
	"AGUAS ANDINAS S.A.",
	"Agua Potable",
	"Nro de cuenta 4529041-7",
	"LECTURA ACTUAL 01-AGO-2024",
	"VENCIMIENTO TOTAL A PAGAR",
	"05-OCT-2024 $ 147.506",
	"CARGO FIJO 1,00 1.049",
	"IVA (19%) 23.941",
	"El valor neto de este documento",
	"TOTAL A PAGAR $ 147.506",
	"",
}, "\n")

// Factura de electricidad mínima.
var enelBatchText = strings.Join([]string{
	"ENEL DISTRIBUCIÓN CHILE S.A.",
	"Suministro de Electricidad",
	"Número de cliente 2556131-7",
	"Periodo de Lectura 10/12/2023 10/01/2024",
	"Total a pagar $ 9.748.155",
	"",
}, "\n")
