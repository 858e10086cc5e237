package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newestFirst orden común de los listados por fecha.
var newestFirst = bson.D{{Key: "dateKey", Value: -1}, {Key: "createdAt", Value: -1}}

func dayRange(r entity.DateRange) bson.M {
	return bson.M{"$gte": r.From, "$lte": r.To}
}

func storageErr(op string, err error) error {
	return domain.NewStorageError("mongodb: "+op, err)
}

// findAll ejecuta Find y decodifica todo el cursor en out.
func findAll(ctx context.Context, coll *mongo.Collection, filter any, sort bson.D, out any) error {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// deleteByID devuelve domain.ErrNotFound si no se borró nada.
func deleteByID(ctx context.Context, coll *mongo.Collection, op, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr(op, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepository implementa repository.MovementRepository.
type MovementRepository struct{ coll *mongo.Collection }

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	m.ID = uuid.New().String()
	if _, err := r.coll.InsertOne(ctx, toMovementDoc(m)); err != nil {
		return storageErr("insertar movimiento", err)
	}
	return nil
}

func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var d movementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener movimiento", err)
	}
	return d.entity(), nil
}

// Complete actualiza la fase 2 sin condicionar al estado: la última escritura gana.
func (r *MovementRepository) Complete(ctx context.Context, id string, c entity.MovementCompletion) (*entity.Movement, error) {
	update := bson.M{"$set": bson.M{
		"departureAt":   c.DepartureAt,
		"palletsInside": c.PalletsInside,
		"boxesInside":   c.BoxesInside,
		"updatedAt":     c.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d movementDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("cerrar movimiento", err)
	}
	return d.entity(), nil
}

func (r *MovementRepository) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	filter := bson.M{"dateKey": dayRange(f.DateRange)}
	if f.Kind != "" {
		filter["kind"] = string(f.Kind)
	}
	var docs []movementDoc
	if err := findAll(ctx, r.coll, filter, newestFirst, &docs); err != nil {
		return nil, storageErr("listar movimientos", err)
	}
	out := make([]*entity.Movement, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// ── Tarimas ──────────────────────────────────────────────────────────────────

// PalletRepository implementa repository.PalletRepository.
type PalletRepository struct{ coll *mongo.Collection }

var _ repository.PalletRepository = (*PalletRepository)(nil)

func (r *PalletRepository) Create(ctx context.Context, p *entity.Pallet) error {
	p.ID = uuid.New().String()
	if _, err := r.coll.InsertOne(ctx, toPalletDoc(p)); err != nil {
		return storageErr("insertar tarima", err)
	}
	return nil
}

func (r *PalletRepository) GetByID(ctx context.Context, id string) (*entity.Pallet, error) {
	var d palletDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener tarima", err)
	}
	return d.entity(), nil
}

func (r *PalletRepository) FindByCodeAndDay(ctx context.Context, code, dateKey string) (*entity.Pallet, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var d palletDoc
	if err := r.coll.FindOne(ctx, bson.M{"code": code, "dateKey": dateKey}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr("buscar tarima", err)
	}
	return d.entity(), nil
}

func (r *PalletRepository) List(ctx context.Context, f entity.PalletFilter) ([]*entity.Pallet, error) {
	filter := bson.M{"dateKey": dayRange(f.DateRange)}
	if f.PalletType != "" {
		filter["palletType"] = f.PalletType
	}
	var docs []palletDoc
	if err := findAll(ctx, r.coll, filter, newestFirst, &docs); err != nil {
		return nil, storageErr("listar tarimas", err)
	}
	out := make([]*entity.Pallet, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *PalletRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "eliminar tarima", id)
}

func (r *PalletRepository) DeleteByDay(ctx context.Context, dateKey string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"dateKey": dateKey})
	if err != nil {
		return 0, storageErr("eliminar tarimas del día", err)
	}
	return res.DeletedCount, nil
}

// ── Copias de almacén ────────────────────────────────────────────────────────

// WarehouseScanRepository implementa repository.WarehouseScanRepository.
type WarehouseScanRepository struct{ coll *mongo.Collection }

var _ repository.WarehouseScanRepository = (*WarehouseScanRepository)(nil)

// Create inserta sin consulta previa; el índice único uniq_code_date rechaza el duplicado.
func (r *WarehouseScanRepository) Create(ctx context.Context, ws *entity.WarehouseScan) error {
	ws.ID = uuid.New().String()
	if _, err := r.coll.InsertOne(ctx, toWarehouseScanDoc(ws)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return storageErr("insertar copia de almacén", err)
	}
	return nil
}

func (r *WarehouseScanRepository) Exists(ctx context.Context, code, dateKey string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"code": code, "dateKey": dateKey}, options.Count().SetLimit(1))
	if err != nil {
		return false, storageErr("verificar copia de almacén", err)
	}
	return n > 0, nil
}

func (r *WarehouseScanRepository) List(ctx context.Context, f entity.WarehouseScanFilter) ([]*entity.WarehouseScan, error) {
	filter := bson.M{"dateKey": dayRange(f.DateRange)}
	if f.Shift != "" {
		filter["shift"] = string(f.Shift)
	}
	var docs []warehouseScanDoc
	sort := bson.D{{Key: "dateKey", Value: -1}, {Key: "scannedAt", Value: -1}}
	if err := findAll(ctx, r.coll, filter, sort, &docs); err != nil {
		return nil, storageErr("listar copias de almacén", err)
	}
	out := make([]*entity.WarehouseScan, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// ── Escaneos e incidencias ───────────────────────────────────────────────────

// ScanAttemptRepository implementa repository.ScanAttemptRepository.
type ScanAttemptRepository struct{ coll *mongo.Collection }

var _ repository.ScanAttemptRepository = (*ScanAttemptRepository)(nil)

func (r *ScanAttemptRepository) Create(ctx context.Context, a *entity.ScanAttempt) error {
	a.ID = uuid.New().String()
	doc := scanAttemptDoc{
		ID: a.ID, Code: a.Code, ActorID: a.ActorID, ActorName: a.ActorName, Role: string(a.Role),
		Found: a.Found, PalletID: a.PalletID, DateKey: a.DateKey, CreatedAt: a.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storageErr("insertar intento de escaneo", err)
	}
	return nil
}

func (r *ScanAttemptRepository) ListByDay(ctx context.Context, dateKey string) ([]*entity.ScanAttempt, error) {
	var docs []scanAttemptDoc
	if err := findAll(ctx, r.coll, bson.M{"dateKey": dateKey}, newestFirst, &docs); err != nil {
		return nil, storageErr("listar intentos de escaneo", err)
	}
	out := make([]*entity.ScanAttempt, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.ScanAttempt{
			ID: d.ID, Code: d.Code, ActorID: d.ActorID, ActorName: d.ActorName, Role: entity.Role(d.Role),
			Found: d.Found, PalletID: d.PalletID, DateKey: d.DateKey, CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return out, nil
}

// IncidentRepository implementa repository.IncidentRepository.
type IncidentRepository struct{ coll *mongo.Collection }

var _ repository.IncidentRepository = (*IncidentRepository)(nil)

func (r *IncidentRepository) Create(ctx context.Context, i *entity.Incident) error {
	i.ID = uuid.New().String()
	doc := incidentDoc{
		ID: i.ID, Code: i.Code, ReportedBy: i.ReportedBy, ReportedByName: i.ReportedByName,
		Status: i.Status, ScanAttemptID: i.ScanAttemptID, DateKey: i.DateKey, CreatedAt: i.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storageErr("insertar incidencia", err)
	}
	return nil
}

func (r *IncidentRepository) ListByDay(ctx context.Context, dateKey string) ([]*entity.Incident, error) {
	var docs []incidentDoc
	if err := findAll(ctx, r.coll, bson.M{"dateKey": dateKey}, newestFirst, &docs); err != nil {
		return nil, storageErr("listar incidencias", err)
	}
	out := make([]*entity.Incident, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Incident{
			ID: d.ID, Code: d.Code, ReportedBy: d.ReportedBy, ReportedByName: d.ReportedByName,
			Status: d.Status, ScanAttemptID: d.ScanAttemptID, DateKey: d.DateKey, CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return out, nil
}

// ── Cajas ────────────────────────────────────────────────────────────────────

// BoxBatchRepository implementa repository.BoxBatchRepository.
type BoxBatchRepository struct{ coll *mongo.Collection }

var _ repository.BoxBatchRepository = (*BoxBatchRepository)(nil)

func (r *BoxBatchRepository) Create(ctx context.Context, b *entity.BoxBatch) error {
	b.ID = uuid.New().String()
	if _, err := r.coll.InsertOne(ctx, toBoxBatchDoc(b)); err != nil {
		return storageErr("insertar conteo de cajas", err)
	}
	return nil
}

func (r *BoxBatchRepository) GetByID(ctx context.Context, id string) (*entity.BoxBatch, error) {
	var d boxBatchDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener conteo de cajas", err)
	}
	return d.entity(), nil
}

func (r *BoxBatchRepository) Update(ctx context.Context, b *entity.BoxBatch) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, toBoxBatchDoc(b))
	if err != nil {
		return storageErr("actualizar conteo de cajas", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BoxBatchRepository) List(ctx context.Context, f entity.BoxBatchFilter) ([]*entity.BoxBatch, error) {
	filter := bson.M{"dateKey": dayRange(f.DateRange)}
	if f.BoxType != "" {
		filter["boxType"] = f.BoxType
	}
	var docs []boxBatchDoc
	if err := findAll(ctx, r.coll, filter, newestFirst, &docs); err != nil {
		return nil, storageErr("listar conteos de cajas", err)
	}
	out := make([]*entity.BoxBatch, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *BoxBatchRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "eliminar conteo de cajas", id)
}

// ── Trabajadoras y usuarios ──────────────────────────────────────────────────

// WorkerRepository implementa repository.WorkerRepository.
type WorkerRepository struct{ coll *mongo.Collection }

var _ repository.WorkerRepository = (*WorkerRepository)(nil)

func (r *WorkerRepository) Create(ctx context.Context, w *entity.Worker) error {
	w.ID = uuid.New().String()
	doc := workerDoc{ID: w.ID, Name: w.Name, Area: w.Area, CreatedAt: w.CreatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storageErr("insertar trabajadora", err)
	}
	return nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]*entity.Worker, error) {
	var docs []workerDoc
	if err := findAll(ctx, r.coll, bson.M{}, bson.D{{Key: "name", Value: 1}}, &docs); err != nil {
		return nil, storageErr("listar trabajadoras", err)
	}
	out := make([]*entity.Worker, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Worker{ID: d.ID, Name: d.Name, Area: d.Area, CreatedAt: d.CreatedAt.UTC()})
	}
	return out, nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "eliminar trabajadora", id)
}

// UserRepository implementa repository.UserRepository.
type UserRepository struct{ coll *mongo.Collection }

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = uuid.New().String()
	doc := userDoc{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name,
		Role: string(u.Role), Active: u.Active, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return storageErr("insertar usuario", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener usuario", err)
	}
	return d.entity(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr("buscar usuario", err)
	}
	return d.entity(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var docs []userDoc
	if err := findAll(ctx, r.coll, bson.M{}, bson.D{{Key: "email", Value: 1}}, &docs); err != nil {
		return nil, storageErr("listar usuarios", err)
	}
	out := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr("contar usuarios", err)
	}
	return n, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "eliminar usuario", id)
}
