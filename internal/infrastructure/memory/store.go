// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en desarrollo local (STORE_DRIVER=memory); respeta las mismas
// restricciones que los almacenes reales, incluida la unicidad (code, date_key).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu  sync.RWMutex
	seq int64

	movements      map[string]*record[entity.Movement]
	pallets        map[string]*record[entity.Pallet]
	warehouseScans map[string]*record[entity.WarehouseScan]
	scanKeys       map[string]string // code|date_key -> id
	attempts       map[string]*record[entity.ScanAttempt]
	incidents      map[string]*record[entity.Incident]
	boxBatches     map[string]*record[entity.BoxBatch]
	workers        map[string]*record[entity.Worker]
	users          map[string]*record[entity.User]
}

type record[T any] struct {
	seq int64
	val T
}

// New construye un almacén vacío.
func New() *Store {
	return &Store{
		movements:      map[string]*record[entity.Movement]{},
		pallets:        map[string]*record[entity.Pallet]{},
		warehouseScans: map[string]*record[entity.WarehouseScan]{},
		scanKeys:       map[string]string{},
		attempts:       map[string]*record[entity.ScanAttempt]{},
		incidents:      map[string]*record[entity.Incident]{},
		boxBatches:     map[string]*record[entity.BoxBatch]{},
		workers:        map[string]*record[entity.Worker]{},
		users:          map[string]*record[entity.User]{},
	}
}

// Repositories expone el almacén con los puertos del dominio.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Movements:      &MovementRepo{s: s},
		Pallets:        &PalletRepo{s: s},
		WarehouseScans: &WarehouseScanRepo{s: s},
		ScanAttempts:   &ScanAttemptRepo{s: s},
		Incidents:      &IncidentRepo{s: s},
		BoxBatches:     &BoxBatchRepo{s: s},
		Workers:        &WorkerRepo{s: s},
		Users:          &UserRepo{s: s},
		Ping:           func(context.Context) error { return nil },
		Close:          func(context.Context) error { return nil },
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func newID() string { return uuid.New().String() }

// sortNewest ordena por date_key desc y luego por orden de inserción desc.
func sortNewest[T any](recs []*record[T], dateKey func(*T) string) []*T {
	sort.Slice(recs, func(i, j int) bool {
		di, dj := dateKey(&recs[i].val), dateKey(&recs[j].val)
		if di != dj {
			return di > dj
		}
		return recs[i].seq > recs[j].seq
	})
	out := make([]*T, 0, len(recs))
	for _, r := range recs {
		v := r.val
		out = append(out, &v)
	}
	return out
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepo implementación en memoria de repository.MovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = newID()
	cp := *m
	cp.Items = append([]entity.LineItem(nil), m.Items...)
	r.s.movements[m.ID] = &record[entity.Movement]{seq: r.s.next(), val: cp}
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := rec.val
	return &v, nil
}

func (r *MovementRepo) Complete(_ context.Context, id string, c entity.MovementCompletion) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	dep := c.DepartureAt
	rec.val.DepartureAt = &dep
	rec.val.PalletsInside = copyInt(c.PalletsInside)
	rec.val.BoxesInside = copyInt(c.BoxesInside)
	rec.val.UpdatedAt = c.UpdatedAt
	v := rec.val
	return &v, nil
}

func (r *MovementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.Movement]
	for _, rec := range r.s.movements {
		if !f.Contains(rec.val.DateKey) {
			continue
		}
		if f.Kind != "" && rec.val.Kind != f.Kind {
			continue
		}
		recs = append(recs, rec)
	}
	return sortNewest(recs, func(m *entity.Movement) string { return m.DateKey }), nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ── Tarimas ──────────────────────────────────────────────────────────────────

// PalletRepo implementación en memoria de repository.PalletRepository.
type PalletRepo struct{ s *Store }

var _ repository.PalletRepository = (*PalletRepo)(nil)

func (r *PalletRepo) Create(_ context.Context, p *entity.Pallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID()
	r.s.pallets[p.ID] = &record[entity.Pallet]{seq: r.s.next(), val: *p}
	return nil
}

func (r *PalletRepo) GetByID(_ context.Context, id string) (*entity.Pallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.pallets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := rec.val
	return &v, nil
}

func (r *PalletRepo) FindByCodeAndDay(_ context.Context, code, dateKey string) (*entity.Pallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *record[entity.Pallet]
	for _, rec := range r.s.pallets {
		if rec.val.Code != code || rec.val.DateKey != dateKey {
			continue
		}
		if best == nil || rec.seq > best.seq {
			best = rec
		}
	}
	if best == nil {
		return nil, nil
	}
	v := best.val
	return &v, nil
}

func (r *PalletRepo) List(_ context.Context, f entity.PalletFilter) ([]*entity.Pallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.Pallet]
	for _, rec := range r.s.pallets {
		if !f.Contains(rec.val.DateKey) {
			continue
		}
		if f.PalletType != "" && rec.val.PalletType != f.PalletType {
			continue
		}
		recs = append(recs, rec)
	}
	return sortNewest(recs, func(p *entity.Pallet) string { return p.DateKey }), nil
}

func (r *PalletRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pallets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.pallets, id)
	return nil
}

func (r *PalletRepo) DeleteByDay(_ context.Context, dateKey string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, rec := range r.s.pallets {
		if rec.val.DateKey == dateKey {
			delete(r.s.pallets, id)
			n++
		}
	}
	return n, nil
}

// ── Copias de almacén ────────────────────────────────────────────────────────

// WarehouseScanRepo implementación en memoria de repository.WarehouseScanRepository.
type WarehouseScanRepo struct{ s *Store }

var _ repository.WarehouseScanRepository = (*WarehouseScanRepo)(nil)

func scanKey(code, dateKey string) string { return code + "|" + dateKey }

// Create verifica e inserta bajo el mismo lock: equivale a la restricción única del almacén.
func (r *WarehouseScanRepo) Create(_ context.Context, ws *entity.WarehouseScan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := scanKey(ws.Code, ws.DateKey)
	if _, dup := r.s.scanKeys[key]; dup {
		return domain.ErrConflict
	}
	ws.ID = newID()
	cp := *ws
	cp.Pallet = append(entity.Fields(nil), ws.Pallet...)
	r.s.warehouseScans[ws.ID] = &record[entity.WarehouseScan]{seq: r.s.next(), val: cp}
	r.s.scanKeys[key] = ws.ID
	return nil
}

func (r *WarehouseScanRepo) Exists(_ context.Context, code, dateKey string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.scanKeys[scanKey(code, dateKey)]
	return ok, nil
}

func (r *WarehouseScanRepo) List(_ context.Context, f entity.WarehouseScanFilter) ([]*entity.WarehouseScan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.WarehouseScan]
	for _, rec := range r.s.warehouseScans {
		if !f.Contains(rec.val.DateKey) {
			continue
		}
		if f.Shift != "" && rec.val.Shift != f.Shift {
			continue
		}
		recs = append(recs, rec)
	}
	return sortNewest(recs, func(w *entity.WarehouseScan) string { return w.DateKey }), nil
}

// ── Escaneos e incidencias ───────────────────────────────────────────────────

// ScanAttemptRepo implementación en memoria de repository.ScanAttemptRepository.
type ScanAttemptRepo struct{ s *Store }

var _ repository.ScanAttemptRepository = (*ScanAttemptRepo)(nil)

func (r *ScanAttemptRepo) Create(_ context.Context, a *entity.ScanAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID()
	r.s.attempts[a.ID] = &record[entity.ScanAttempt]{seq: r.s.next(), val: *a}
	return nil
}

func (r *ScanAttemptRepo) ListByDay(_ context.Context, dateKey string) ([]*entity.ScanAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.ScanAttempt]
	for _, rec := range r.s.attempts {
		if rec.val.DateKey == dateKey {
			recs = append(recs, rec)
		}
	}
	return sortNewest(recs, func(a *entity.ScanAttempt) string { return a.DateKey }), nil
}

// IncidentRepo implementación en memoria de repository.IncidentRepository.
type IncidentRepo struct{ s *Store }

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

func (r *IncidentRepo) Create(_ context.Context, i *entity.Incident) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i.ID = newID()
	r.s.incidents[i.ID] = &record[entity.Incident]{seq: r.s.next(), val: *i}
	return nil
}

func (r *IncidentRepo) ListByDay(_ context.Context, dateKey string) ([]*entity.Incident, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.Incident]
	for _, rec := range r.s.incidents {
		if rec.val.DateKey == dateKey {
			recs = append(recs, rec)
		}
	}
	return sortNewest(recs, func(i *entity.Incident) string { return i.DateKey }), nil
}

// ── Cajas ────────────────────────────────────────────────────────────────────

// BoxBatchRepo implementación en memoria de repository.BoxBatchRepository.
type BoxBatchRepo struct{ s *Store }

var _ repository.BoxBatchRepository = (*BoxBatchRepo)(nil)

func (r *BoxBatchRepo) Create(_ context.Context, b *entity.BoxBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = newID()
	r.s.boxBatches[b.ID] = &record[entity.BoxBatch]{seq: r.s.next(), val: *b}
	return nil
}

func (r *BoxBatchRepo) GetByID(_ context.Context, id string) (*entity.BoxBatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.boxBatches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := rec.val
	return &v, nil
}

func (r *BoxBatchRepo) Update(_ context.Context, b *entity.BoxBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.boxBatches[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.val = *b
	return nil
}

func (r *BoxBatchRepo) List(_ context.Context, f entity.BoxBatchFilter) ([]*entity.BoxBatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*record[entity.BoxBatch]
	for _, rec := range r.s.boxBatches {
		if !f.Contains(rec.val.DateKey) {
			continue
		}
		if f.BoxType != "" && rec.val.BoxType != f.BoxType {
			continue
		}
		recs = append(recs, rec)
	}
	return sortNewest(recs, func(b *entity.BoxBatch) string { return b.DateKey }), nil
}

func (r *BoxBatchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boxBatches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.boxBatches, id)
	return nil
}

// ── Trabajadoras y usuarios ──────────────────────────────────────────────────

// WorkerRepo implementación en memoria de repository.WorkerRepository.
type WorkerRepo struct{ s *Store }

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

func (r *WorkerRepo) Create(_ context.Context, w *entity.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = newID()
	r.s.workers[w.ID] = &record[entity.Worker]{seq: r.s.next(), val: *w}
	return nil
}

func (r *WorkerRepo) List(_ context.Context) ([]*entity.Worker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Worker, 0, len(r.s.workers))
	for _, rec := range r.s.workers {
		v := rec.val
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WorkerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.workers, id)
	return nil
}

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.val.Email, u.Email) {
			return domain.ErrConflict
		}
	}
	u.ID = newID()
	r.s.users[u.ID] = &record[entity.User]{seq: r.s.next(), val: *u}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := rec.val
	return &v, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.val.Email, email) {
			v := rec.val
			return &v, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, rec := range r.s.users {
		v := rec.val
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}
