package mongodb

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
)

type lineItemDoc struct {
	Type  string `bson:"type"`
	Count int    `bson:"count"`
}

type movementDoc struct {
	ID              string        `bson:"_id"`
	Kind            string        `bson:"kind"`
	DateKey         string        `bson:"dateKey"`
	RecordedBy      string        `bson:"recordedBy"`
	ContainerNumber string        `bson:"containerNumber,omitempty"`
	Origin          string        `bson:"origin,omitempty"`
	SealNumber      string        `bson:"sealNumber,omitempty"`
	Personnel       string        `bson:"personnel,omitempty"`
	Carrier         string        `bson:"carrier,omitempty"`
	PalletType      string        `bson:"palletType,omitempty"`
	PalletCount     int           `bson:"palletCount,omitempty"`
	TrailerID       string        `bson:"trailerId,omitempty"`
	TractorID       string        `bson:"tractorId,omitempty"`
	Items           []lineItemDoc `bson:"items,omitempty"`
	ArrivalAt       time.Time     `bson:"arrivalAt"`
	DepartureAt     *time.Time    `bson:"departureAt"`
	PalletsInside   *int          `bson:"palletsInside"`
	BoxesInside     *int          `bson:"boxesInside"`
	CreatedAt       time.Time     `bson:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt"`
}

func toMovementDoc(m *entity.Movement) movementDoc {
	d := movementDoc{
		ID: m.ID, Kind: string(m.Kind), DateKey: m.DateKey, RecordedBy: m.RecordedBy,
		ContainerNumber: m.ContainerNumber, Origin: m.Origin, SealNumber: m.SealNumber,
		Personnel: m.Personnel, Carrier: m.Carrier, PalletType: m.PalletType,
		PalletCount: m.PalletCount, TrailerID: m.TrailerID, TractorID: m.TractorID,
		ArrivalAt: m.ArrivalAt, DepartureAt: m.DepartureAt,
		PalletsInside: m.PalletsInside, BoxesInside: m.BoxesInside,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	for _, it := range m.Items {
		d.Items = append(d.Items, lineItemDoc{Type: it.Type, Count: it.Count})
	}
	return d
}

func (d movementDoc) entity() *entity.Movement {
	m := &entity.Movement{
		ID: d.ID, Kind: entity.MovementKind(d.Kind), DateKey: d.DateKey, RecordedBy: d.RecordedBy,
		ContainerNumber: d.ContainerNumber, Origin: d.Origin, SealNumber: d.SealNumber,
		Personnel: d.Personnel, Carrier: d.Carrier, PalletType: d.PalletType,
		PalletCount: d.PalletCount, TrailerID: d.TrailerID, TractorID: d.TractorID,
		ArrivalAt: d.ArrivalAt.UTC(), DepartureAt: utcPtr(d.DepartureAt),
		PalletsInside: d.PalletsInside, BoxesInside: d.BoxesInside,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
	for _, it := range d.Items {
		m.Items = append(m.Items, entity.LineItem{Type: it.Type, Count: it.Count})
	}
	return m
}

type palletDoc struct {
	ID             string    `bson:"_id"`
	Code           string    `bson:"code"`
	AssignedWorker string    `bson:"assignedWorker"`
	PalletType     string    `bson:"palletType"`
	DateKey        string    `bson:"dateKey"`
	RecordedBy     string    `bson:"recordedBy"`
	CreatedAt      time.Time `bson:"createdAt"`
}

func toPalletDoc(p *entity.Pallet) palletDoc {
	return palletDoc{
		ID: p.ID, Code: p.Code, AssignedWorker: p.AssignedWorker, PalletType: p.PalletType,
		DateKey: p.DateKey, RecordedBy: p.RecordedBy, CreatedAt: p.CreatedAt,
	}
}

func (d palletDoc) entity() *entity.Pallet {
	return &entity.Pallet{
		ID: d.ID, Code: d.Code, AssignedWorker: d.AssignedWorker, PalletType: d.PalletType,
		DateKey: d.DateKey, RecordedBy: d.RecordedBy, CreatedAt: d.CreatedAt.UTC(),
	}
}

// warehouseScanDoc guarda la copia de la tarima como bson.D para conservar el orden de las claves.
type warehouseScanDoc struct {
	ID          string    `bson:"_id"`
	Code        string    `bson:"code"`
	Shift       string    `bson:"shift"`
	Responsible string    `bson:"responsible"`
	DateKey     string    `bson:"dateKey"`
	RecordedBy  string    `bson:"recordedBy"`
	ScannedAt   time.Time `bson:"scannedAt"`
	Pallet      bson.D    `bson:"pallet"`
}

func toWarehouseScanDoc(ws *entity.WarehouseScan) warehouseScanDoc {
	d := warehouseScanDoc{
		ID: ws.ID, Code: ws.Code, Shift: string(ws.Shift), Responsible: ws.Responsible,
		DateKey: ws.DateKey, RecordedBy: ws.RecordedBy, ScannedAt: ws.ScannedAt,
		Pallet: make(bson.D, 0, len(ws.Pallet)),
	}
	for _, kv := range ws.Pallet {
		d.Pallet = append(d.Pallet, bson.E{Key: kv.Key, Value: kv.Value})
	}
	return d
}

func (d warehouseScanDoc) entity() *entity.WarehouseScan {
	ws := &entity.WarehouseScan{
		ID: d.ID, Code: d.Code, Shift: entity.Shift(d.Shift), Responsible: d.Responsible,
		DateKey: d.DateKey, RecordedBy: d.RecordedBy, ScannedAt: d.ScannedAt.UTC(),
		Pallet: make(entity.Fields, 0, len(d.Pallet)),
	}
	for _, e := range d.Pallet {
		ws.Pallet = append(ws.Pallet, entity.Field{Key: e.Key, Value: scalar(e.Value)})
	}
	return ws
}

// scalar normaliza enteros de 32 bits escritos por otros clientes.
func scalar(v any) any {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int:
		return int64(n)
	}
	return v
}

type scanAttemptDoc struct {
	ID        string    `bson:"_id"`
	Code      string    `bson:"code"`
	ActorID   string    `bson:"actorId"`
	ActorName string    `bson:"actorName"`
	Role      string    `bson:"role"`
	Found     bool      `bson:"found"`
	PalletID  *string   `bson:"palletId"`
	DateKey   string    `bson:"dateKey"`
	CreatedAt time.Time `bson:"createdAt"`
}

type incidentDoc struct {
	ID             string    `bson:"_id"`
	Code           string    `bson:"code"`
	ReportedBy     string    `bson:"reportedBy"`
	ReportedByName string    `bson:"reportedByName"`
	Status         string    `bson:"status"`
	ScanAttemptID  string    `bson:"scanAttemptId"`
	DateKey        string    `bson:"dateKey"`
	CreatedAt      time.Time `bson:"createdAt"`
}

type boxBatchDoc struct {
	ID         string    `bson:"_id"`
	BoxType    string    `bson:"boxType"`
	Quantity   int       `bson:"quantity"`
	DateKey    string    `bson:"dateKey"`
	Notes      string    `bson:"notes,omitempty"`
	RecordedBy string    `bson:"recordedBy"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func toBoxBatchDoc(b *entity.BoxBatch) boxBatchDoc {
	return boxBatchDoc{
		ID: b.ID, BoxType: b.BoxType, Quantity: b.Quantity, DateKey: b.DateKey, Notes: b.Notes,
		RecordedBy: b.RecordedBy, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func (d boxBatchDoc) entity() *entity.BoxBatch {
	return &entity.BoxBatch{
		ID: d.ID, BoxType: d.BoxType, Quantity: d.Quantity, DateKey: d.DateKey, Notes: d.Notes,
		RecordedBy: d.RecordedBy, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type workerDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Area      string    `bson:"area,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	Active       bool      `bson:"active"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d userDoc) entity() *entity.User {
	return &entity.User{
		ID: d.ID, Email: d.Email, PasswordHash: d.PasswordHash, Name: d.Name,
		Role: entity.Role(d.Role), Active: d.Active,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
