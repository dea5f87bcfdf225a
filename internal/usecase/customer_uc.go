package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/phenrril/lojamobile/internal/domain"
	"github.com/phenrril/lojamobile/internal/metrics"
)

const (
	// backgroundTimeout bounds the best-effort backup create issued by Add.
	backgroundTimeout = 30 * time.Second
	// syncTimeout bounds a shared sync run, which outlives its callers.
	syncTimeout = 2 * time.Minute
)

var cepRe = regexp.MustCompile(`^[0-9]{8}$`)

// CustomerUC owns the local customer set and reconciles it against the
// backup mirror. Mutating operations run one at a time; concurrent Sync
// calls share a single run.
type CustomerUC struct {
	store   domain.KVStore
	primary domain.CustomerSource
	backup  domain.BackupMirror
	address domain.AddressLookup

	now   func() time.Time
	newID func() string

	ops    sync.Mutex
	flight singleflight.Group
	bg     sync.WaitGroup

	mu        sync.RWMutex
	customers []domain.Customer
	backupSet []domain.Customer
	status    domain.SyncStatus
	lastSync  *time.Time
}

// NewCustomerUC builds the engine. A nil primary makes the engine use its
// own local set as the primary source.
func NewCustomerUC(store domain.KVStore, primary domain.CustomerSource, backup domain.BackupMirror, address domain.AddressLookup) *CustomerUC {
	return &CustomerUC{
		store:     store,
		primary:   primary,
		backup:    backup,
		address:   address,
		now:       time.Now,
		newID:     uuid.NewString,
		status:    domain.SyncIdle,
		customers: []domain.Customer{},
		backupSet: []domain.Customer{},
	}
}

// Open loads the persisted customers and last sync time. Missing keys are fine.
func (uc *CustomerUC) Open(ctx context.Context) error {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	list := []domain.Customer{}
	raw, err := uc.store.Get(ctx, domain.KeyCustomers)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("decodificar clientes locales: %w", err)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("leer clientes locales: %w", err)
	}

	var last *time.Time
	raw, err = uc.store.Get(ctx, domain.KeyLastSync)
	switch {
	case err == nil:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decodificar última sincronización: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("decodificar última sincronización: %w", err)
		}
		last = &t
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("leer última sincronización: %w", err)
	}

	uc.mu.Lock()
	uc.customers = list
	uc.lastSync = last
	uc.mu.Unlock()
	return nil
}

func (uc *CustomerUC) Customers() []domain.Customer {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return cloneCustomers(uc.customers)
}

// BackupCustomers returns the backup set seen by the last fetch.
func (uc *CustomerUC) BackupCustomers() []domain.Customer {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return cloneCustomers(uc.backupSet)
}

func (uc *CustomerUC) Status() domain.SyncStatus {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.status
}

func (uc *CustomerUC) LastSync() *time.Time {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.lastSync == nil {
		return nil
	}
	t := *uc.lastSync
	return &t
}

// Search filters the local set by name (case-insensitive) or CPF.
func (uc *CustomerUC) Search(query string) []domain.Customer {
	q := strings.TrimSpace(query)
	all := uc.Customers()
	if q == "" {
		return all
	}
	lq := strings.ToLower(q)
	out := []domain.Customer{}
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), lq) || strings.Contains(c.CPF, q) {
			out = append(out, c)
		}
	}
	return out
}

// Load replaces the local set with the primary source.
func (uc *CustomerUC) Load(ctx context.Context) error {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	uc.setStatus(domain.SyncLoading)
	list, err := uc.fetchPrimary(ctx)
	if err == nil {
		err = uc.saveCustomers(ctx, list)
	}
	if err != nil {
		log.Error().Err(err).Msg("cargar clientes")
		uc.setStatus(domain.SyncError)
		return err
	}
	uc.setStatus(domain.SyncSuccess)
	return nil
}

// Add appends a customer and persists the set. The backup create runs in
// the background and its failure is only logged.
func (uc *CustomerUC) Add(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	if err := domain.Validate(c); err != nil {
		return domain.Customer{}, err
	}

	uc.ops.Lock()
	defer uc.ops.Unlock()

	// el id del backup lo asigna el backup
	c.BackupID = ""
	if c.ID == "" {
		c.ID = uc.newID()
		c.Pending = true
	} else if uc.indexOf(c.ID) >= 0 {
		return domain.Customer{}, fmt.Errorf("%w: id %s duplicado", domain.ErrValidation, c.ID)
	}
	if c.CreatedAt == "" {
		c.CreatedAt = uc.now().UTC().Format(time.RFC3339)
	}

	list := append(uc.Customers(), c)
	if err := uc.saveCustomers(ctx, list); err != nil {
		log.Error().Err(err).Msg("agregar cliente")
		return domain.Customer{}, err
	}

	bgCtx := context.WithoutCancel(ctx)
	uc.bg.Add(1)
	go func(c domain.Customer) {
		defer uc.bg.Done()
		ctx, cancel := context.WithTimeout(bgCtx, backgroundTimeout)
		defer cancel()
		out, err := uc.backup.Create(ctx, c)
		if err != nil {
			metrics.BackupPropagationFailures.Inc()
			log.Warn().Err(err).Str("cliente_id", c.ID).Msg("no se pudo copiar el cliente al backup")
			return
		}
		metrics.BackupWrites.WithLabelValues("create").Inc()
		log.Debug().Str("cliente_id", c.ID).Str("backup_id", out.BackupID).Msg("cliente copiado al backup")
	}(c)

	return c, nil
}

// Update merges patch into the customer with id. The change stays local and
// is marked pending until the next Sync.
func (uc *CustomerUC) Update(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	list := uc.Customers()
	i := indexOf(list, id)
	if i < 0 {
		return domain.Customer{}, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	c := patch.Apply(list[i])
	if err := domain.Validate(c); err != nil {
		return domain.Customer{}, err
	}
	c.Pending = true
	list[i] = c
	if err := uc.saveCustomers(ctx, list); err != nil {
		log.Error().Err(err).Str("cliente_id", id).Msg("actualizar cliente")
		return domain.Customer{}, err
	}
	return c, nil
}

// Sync pulls the primary source into the local set and pushes every local
// record to the backup mirror, one request at a time.
//
// Concurrent callers share one run. The run is detached from the caller's
// cancellation and bounded by syncTimeout; a caller whose ctx ends gets
// ctx.Err() while the run goes on for the others.
func (uc *CustomerUC) Sync(ctx context.Context) (domain.SyncReport, error) {
	runCtx := context.WithoutCancel(ctx)
	uc.bg.Add(1)
	ch := uc.flight.DoChan("sync", func() (any, error) {
		ctx, cancel := context.WithTimeout(runCtx, syncTimeout)
		defer cancel()
		return uc.sync(ctx)
	})

	select {
	case res := <-ch:
		uc.bg.Done()
		if res.Shared {
			log.Debug().Msg("sincronización compartida con una ejecución en curso")
		}
		if res.Err != nil {
			return domain.SyncReport{}, res.Err
		}
		return res.Val.(domain.SyncReport), nil
	case <-ctx.Done():
		go func() {
			<-ch
			uc.bg.Done()
		}()
		log.Warn().Err(ctx.Err()).Msg("se abandonó la espera de la sincronización")
		return domain.SyncReport{}, ctx.Err()
	}
}

func (uc *CustomerUC) sync(ctx context.Context) (domain.SyncReport, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	start := time.Now()
	uc.setStatus(domain.SyncLoading)
	log.Info().Msg("iniciando sincronización")

	report, err := uc.runSync(ctx)
	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SyncRuns.WithLabelValues("error").Inc()
		log.Error().Err(err).Int("procesados", report.Processed).Msg("error en la sincronización")
		uc.setStatus(domain.SyncError)
		return domain.SyncReport{}, err
	}
	report.Duration = time.Since(start)
	metrics.SyncRuns.WithLabelValues("success").Inc()
	uc.setStatus(domain.SyncSuccess)
	log.Info().
		Int("procesados", report.Processed).
		Int("creados", report.Created).
		Int("actualizados", report.Updated).
		Dur("duracion", report.Duration).
		Msg("sincronización finalizada")
	return report, nil
}

func (uc *CustomerUC) runSync(ctx context.Context) (domain.SyncReport, error) {
	var report domain.SyncReport

	list, err := uc.fetchPrimary(ctx)
	if err != nil {
		return report, err
	}
	if err := uc.saveCustomers(ctx, list); err != nil {
		return report, err
	}

	remote, err := uc.backup.List(ctx)
	if err != nil {
		return report, err
	}
	uc.setBackup(remote)

	// se compara por clienteId; el id del backup solo sirve de path
	for i, c := range list {
		if c.ID == "" {
			continue
		}
		pushed := c
		pushed.Pending = false
		switch b := findByID(remote, c.ID); {
		case b == nil:
			pushed.BackupID = ""
			out, err := uc.backup.Create(ctx, pushed)
			if err != nil {
				return report, err
			}
			list[i].BackupID = out.BackupID
			remote = append(remote, *out)
			report.Created++
			metrics.BackupWrites.WithLabelValues("create").Inc()
		case b.BackupID == "":
			log.Warn().Str("cliente_id", c.ID).Msg("registro del backup sin id, no se actualiza")
		default:
			pushed.BackupID = b.BackupID
			if _, err := uc.backup.Update(ctx, b.BackupID, pushed); err != nil {
				return report, err
			}
			list[i].BackupID = b.BackupID
			report.Updated++
			metrics.BackupWrites.WithLabelValues("update").Inc()
		}
		list[i].Pending = false
		report.Processed++
	}

	if report.Processed > 0 {
		if err := uc.saveCustomers(ctx, list); err != nil {
			return report, err
		}
	}

	now := uc.now()
	raw, err := json.Marshal(now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return report, err
	}
	if err := uc.store.Set(ctx, domain.KeyLastSync, raw); err != nil {
		return report, fmt.Errorf("guardar última sincronización: %w", err)
	}
	uc.mu.Lock()
	uc.lastSync = &now
	uc.mu.Unlock()

	report.FinishedAt = now
	return report, nil
}

// Restore overwrites the local set with the backup mirror.
func (uc *CustomerUC) Restore(ctx context.Context) ([]domain.Customer, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	uc.setStatus(domain.SyncLoading)
	remote, err := uc.backup.List(ctx)
	if err == nil {
		err = uc.saveCustomers(ctx, remote)
	}
	if err != nil {
		log.Error().Err(err).Msg("restaurar backup")
		uc.setStatus(domain.SyncError)
		return nil, err
	}
	uc.setBackup(remote)
	uc.setStatus(domain.SyncSuccess)
	log.Info().Int("clientes", len(remote)).Msg("clientes restaurados del backup")
	return cloneCustomers(remote), nil
}

// Differences fetches the backup set and compares it with the local set.
func (uc *CustomerUC) Differences(ctx context.Context) (domain.Differences, error) {
	remote, err := uc.backup.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("verificar diferencias")
		return domain.Differences{}, err
	}
	uc.setBackup(remote)
	return domain.Diff(uc.Customers(), remote), nil
}

// LookupAddress resolves an 8-digit CEP.
func (uc *CustomerUC) LookupAddress(ctx context.Context, cep string) (*domain.Address, error) {
	c := strings.NewReplacer("-", "", ".", "", " ", "").Replace(cep)
	if !cepRe.MatchString(c) {
		return nil, fmt.Errorf("%w: el CEP debe tener 8 dígitos", domain.ErrValidation)
	}
	if uc.address == nil {
		return nil, errors.New("consulta de CEP no configurada")
	}
	return uc.address.Lookup(ctx, c)
}

// Wait blocks until background work finishes: backup creates issued by Add
// and sync runs whose callers stopped waiting.
func (uc *CustomerUC) Wait() { uc.bg.Wait() }

func (uc *CustomerUC) fetchPrimary(ctx context.Context) ([]domain.Customer, error) {
	if uc.primary == nil {
		log.Warn().Msg("sin fuente primaria configurada, se usan los clientes locales")
		return uc.Customers(), nil
	}
	list, err := uc.primary.FetchCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return cloneCustomers(list), nil
}

// saveCustomers persists list and makes it the in-memory set.
func (uc *CustomerUC) saveCustomers(ctx context.Context, list []domain.Customer) error {
	if list == nil {
		list = []domain.Customer{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serializar clientes: %w", err)
	}
	if err := uc.store.Set(ctx, domain.KeyCustomers, raw); err != nil {
		return fmt.Errorf("guardar clientes: %w", err)
	}
	uc.mu.Lock()
	uc.customers = cloneCustomers(list)
	uc.mu.Unlock()
	return nil
}

func (uc *CustomerUC) setStatus(s domain.SyncStatus) {
	uc.mu.Lock()
	uc.status = s
	uc.mu.Unlock()
}

func (uc *CustomerUC) setBackup(list []domain.Customer) {
	uc.mu.Lock()
	uc.backupSet = cloneCustomers(list)
	uc.mu.Unlock()
}

func (uc *CustomerUC) indexOf(id string) int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return indexOf(uc.customers, id)
}

func indexOf(list []domain.Customer, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func findByID(list []domain.Customer, id string) *domain.Customer {
	if i := indexOf(list, id); i >= 0 {
		return &list[i]
	}
	return nil
}

func cloneCustomers(list []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, len(list))
	for i, c := range list {
		if c.Address != nil {
			a := *c.Address
			c.Address = &a
		}
		out[i] = c
	}
	return out
}
