package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/phenrril/lojamobile/internal/domain"
)

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	setErr error
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeSource struct {
	mu      sync.Mutex
	list    []domain.Customer
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSource) FetchCustomers(ctx context.Context) ([]domain.Customer, error) {
	f.mu.Lock()
	f.calls++
	entered, release := f.entered, f.release
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Customer(nil), f.list...), nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeBackup assigns its own ids ("m1", "m2", ...) like MockAPI does and logs
// every write as "POST clienteId" or "PUT backupId".
type fakeBackup struct {
	mu        sync.Mutex
	records   []domain.Customer
	next      int
	log       []string
	listErr   error
	createErr error
	// failUpdate makes Update fail for that backup id
	failUpdate string
}

func newFakeBackup(records ...domain.Customer) *fakeBackup {
	f := &fakeBackup{}
	for _, c := range records {
		f.records = append(f.records, f.assign(c))
	}
	return f
}

func (f *fakeBackup) assign(c domain.Customer) domain.Customer {
	f.next++
	c.BackupID = fmt.Sprintf("m%d", f.next)
	return c
}

func (f *fakeBackup) List(context.Context) ([]domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Customer{}, f.records...), nil
}

func (f *fakeBackup) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, "POST "+c.ID)
	if f.createErr != nil {
		return nil, f.createErr
	}
	c = f.assign(c)
	f.records = append(f.records, c)
	return &c, nil
}

func (f *fakeBackup) Update(_ context.Context, backupID string, c domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, "PUT "+backupID)
	if backupID == f.failUpdate {
		return nil, errors.New("backup caído")
	}
	for i := range f.records {
		if f.records[i].BackupID == backupID {
			c.BackupID = backupID
			f.records[i] = c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackup) Records() []domain.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Customer(nil), f.records...)
}

func (f *fakeBackup) Log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

type fakeLookup struct {
	got string
}

func (f *fakeLookup) Lookup(_ context.Context, cep string) (*domain.Address, error) {
	f.got = cep
	if cep == "99999999" {
		return nil, domain.ErrNotFound
	}
	return &domain.Address{CEP: "01001-000", Street: "Praça da Sé", City: "São Paulo", State: "SP"}, nil
}

func customer(id, name string) domain.Customer {
	return domain.Customer{
		ID:     id,
		Name:   name,
		CPF:    "12345678901",
		Email:  "cliente@mail.com",
		Phone:  "11999999999",
		Number: "10",
	}
}
