// Package report genera los documentos descargables: exportaciones a hoja de cálculo
// para el panel de administración y la etiqueta QR de cada tarima.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Exportaciones disponibles.
const (
	ExportMovements      = "movements"
	ExportPallets        = "pallets"
	ExportWarehouseScans = "warehouse-scans"
	ExportBoxBatches     = "box-batches"
)

// UseCase exportaciones y etiquetas.
type UseCase struct {
	store  *repository.Store
	xlsx   SpreadsheetWriter
	labels LabelRenderer
	loc    *time.Location
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(store *repository.Store, xlsx SpreadsheetWriter, labels LabelRenderer, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{store: store, xlsx: xlsx, labels: labels, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Export genera el xlsx de la colección indicada para el filtro de fechas.
// Una colección desconocida devuelve domain.ErrNotFound.
func (uc *UseCase) Export(ctx context.Context, name string, q dto.DateQuery) (*File, error) {
	r, err := q.Range(entity.DateKeyOf(uc.now(), uc.loc))
	if err != nil {
		return nil, err
	}
	var sheet Sheet
	switch name {
	case ExportMovements:
		sheet, err = uc.movementsSheet(ctx, r)
	case ExportPallets:
		sheet, err = uc.palletsSheet(ctx, r)
	case ExportWarehouseScans:
		sheet, err = uc.warehouseScansSheet(ctx, r)
	case ExportBoxBatches:
		sheet, err = uc.boxBatchesSheet(ctx, r)
	default:
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.Write(sheet)
	if err != nil {
		return nil, fmt.Errorf("generar xlsx: %w", err)
	}
	return &File{
		Name:        fmt.Sprintf("%s_%s_%s.xlsx", name, r.From, r.To),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// PalletLabel genera el PDF con el QR del código de la tarima.
func (uc *UseCase) PalletLabel(ctx context.Context, id string) (*File, error) {
	p, err := uc.store.Pallets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := uc.labels.PalletLabel(p)
	if err != nil {
		return nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	return &File{
		Name:        fmt.Sprintf("tarima_%s.pdf", p.Code),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

func (uc *UseCase) movementsSheet(ctx context.Context, r entity.DateRange) (Sheet, error) {
	list, err := uc.store.Movements.List(ctx, entity.MovementFilter{DateRange: r})
	if err != nil {
		return Sheet{}, err
	}
	s := Sheet{
		Name: "Movimientos",
		Headers: []string{
			"Fecha", "Tipo", "Estado", "Contenedor", "Origen", "Sello", "Personal", "Transportista",
			"Tipo de tarima", "Tarimas", "Caja", "Tractor", "Líneas", "Llegada", "Salida",
			"Tarimas dentro", "Cajas dentro",
		},
	}
	for _, m := range list {
		s.Rows = append(s.Rows, []any{
			m.DateKey, string(m.Kind), string(m.State()), m.ContainerNumber, m.Origin, m.SealNumber,
			m.Personnel, m.Carrier, m.PalletType, m.PalletCount, m.TrailerID, m.TractorID,
			lineItems(m.Items), uc.clock(&m.ArrivalAt), uc.clock(m.DepartureAt),
			intOrBlank(m.PalletsInside), intOrBlank(m.BoxesInside),
		})
	}
	return s, nil
}

func (uc *UseCase) palletsSheet(ctx context.Context, r entity.DateRange) (Sheet, error) {
	list, err := uc.store.Pallets.List(ctx, entity.PalletFilter{DateRange: r})
	if err != nil {
		return Sheet{}, err
	}
	s := Sheet{Name: "Tarimas", Headers: []string{"Fecha", "Código", "Trabajadora", "Tipo", "Hora"}}
	for _, p := range list {
		s.Rows = append(s.Rows, []any{p.DateKey, p.Code, p.AssignedWorker, p.PalletType, uc.clock(&p.CreatedAt)})
	}
	return s, nil
}

// warehouseScansSheet agrega una columna por cada campo copiado, en el orden en que aparece por primera vez.
func (uc *UseCase) warehouseScansSheet(ctx context.Context, r entity.DateRange) (Sheet, error) {
	list, err := uc.store.WarehouseScans.List(ctx, entity.WarehouseScanFilter{DateRange: r})
	if err != nil {
		return Sheet{}, err
	}
	var extra []string
	seen := map[string]bool{"code": true}
	for _, ws := range list {
		for _, kv := range ws.Pallet {
			if !seen[kv.Key] {
				seen[kv.Key] = true
				extra = append(extra, kv.Key)
			}
		}
	}
	s := Sheet{Name: "Almacén", Headers: append([]string{"Fecha", "Código", "Turno", "Responsable", "Hora"}, extra...)}
	for _, ws := range list {
		row := []any{ws.DateKey, ws.Code, string(ws.Shift), ws.Responsible, uc.clock(&ws.ScannedAt)}
		for _, k := range extra {
			v, _ := ws.Pallet.Get(k)
			row = append(row, v)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func (uc *UseCase) boxBatchesSheet(ctx context.Context, r entity.DateRange) (Sheet, error) {
	list, err := uc.store.BoxBatches.List(ctx, entity.BoxBatchFilter{DateRange: r})
	if err != nil {
		return Sheet{}, err
	}
	s := Sheet{Name: "Cajas", Headers: []string{"Fecha", "Tipo de caja", "Cantidad", "Notas"}}
	total := 0
	for _, b := range list {
		s.Rows = append(s.Rows, []any{b.DateKey, b.BoxType, b.Quantity, b.Notes})
		total += b.Quantity
	}
	s.Rows = append(s.Rows, []any{"Total", "", total, ""})
	return s, nil
}

// clock hora local del negocio (HH:MM) o vacío.
func (uc *UseCase) clock(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(uc.loc).Format("15:04")
}

func lineItems(items []entity.LineItem) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%d", it.Type, it.Count)
	}
	return out
}

func intOrBlank(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
