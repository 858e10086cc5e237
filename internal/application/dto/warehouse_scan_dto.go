package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ErrInvalidBody el cuerpo no es un objeto JSON.
var ErrInvalidBody = errors.New("cuerpo inválido")

// Claves de metadatos del cuerpo de POST /warehouse-scans; el resto es la copia de la tarima.
const (
	MetaShift       = "shift"
	MetaResponsible = "responsible"
	MetaDate        = "date"
)

// SaveWarehouseScanRequest entrada para guardar la copia de almacén.
type SaveWarehouseScanRequest struct {
	Shift       string
	Responsible string
	Date        string
	Pallet      entity.Fields
}

// ParseSaveWarehouseScanRequest lee un objeto JSON plano conservando el orden de las claves.
// Valores anidados (objetos o arreglos) se rechazan con domain.ValidationError sobre esa clave.
func ParseSaveWarehouseScanRequest(body []byte) (*SaveWarehouseScanRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, ErrInvalidBody
	}
	out := &SaveWarehouseScanRequest{}
	verr := domain.NewValidationError()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, ErrInvalidBody
		}
		key, _ := kt.(string)
		vt, err := dec.Token()
		if err != nil {
			return nil, ErrInvalidBody
		}
		var value any
		switch v := vt.(type) {
		case json.Delim:
			if err := skipValue(dec); err != nil {
				return nil, ErrInvalidBody
			}
			verr.Add(key)
			continue
		case json.Number:
			n, ok := normalizeNumber(v)
			if !ok {
				verr.Add(key)
				continue
			}
			value = n
		default:
			value = v
		}
		switch key {
		case MetaShift, MetaResponsible, MetaDate:
			s, ok := value.(string)
			if value != nil && !ok {
				verr.Add(key)
				continue
			}
			setMeta(out, key, s)
		default:
			out.Pallet = setField(out.Pallet, key, value)
		}
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, ErrInvalidBody
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func setMeta(r *SaveWarehouseScanRequest, key, value string) {
	switch key {
	case MetaShift:
		r.Shift = value
	case MetaResponsible:
		r.Responsible = value
	case MetaDate:
		r.Date = value
	}
}

// setField reemplaza en su posición una clave repetida.
func setField(f entity.Fields, key string, value any) entity.Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, entity.Field{Key: key, Value: value})
}

func skipValue(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// normalizeNumber devuelve int64 para enteros y float64 para el resto. Un entero fuera
// de int64 o un decimal que no cabe en float64 no se puede guardar tal cual: ok es false.
func normalizeNumber(n json.Number) (any, bool) {
	if !strings.ContainsAny(n.String(), ".eE") {
		i, err := n.Int64()
		return i, err == nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return f, true
}

// PalletFields serializa entity.Fields como objeto JSON en el orden guardado.
type PalletFields entity.Fields

// MarshalJSON implementa json.Marshaler.
func (f PalletFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WarehouseScanResponse salida de una copia de almacén.
type WarehouseScanResponse struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Shift       string       `json:"shift"`
	Responsible string       `json:"responsible"`
	DateKey     string       `json:"date_key"`
	ScannedAt   time.Time    `json:"scanned_at"`
	RecordedBy  string       `json:"recorded_by"`
	Pallet      PalletFields `json:"pallet"`
}

// WarehouseScanListResponse lista de copias de almacén.
type WarehouseScanListResponse struct {
	Items []WarehouseScanResponse `json:"items"`
}

// WarehouseScanCheckResponse resultado de la verificación previa (sólo informativa).
type WarehouseScanCheckResponse struct {
	Code    string `json:"code"`
	DateKey string `json:"date_key"`
	Exists  bool   `json:"exists"`
}

// ScanRequest cuerpo de POST /scan.
type ScanRequest struct {
	Code string `json:"code"`
}

// ScanResponse resultado de un escaneo.
type ScanResponse struct {
	Registered bool            `json:"registered"`
	Pallet     *PalletResponse `json:"pallet,omitempty"`
	IncidentID string          `json:"incident_id,omitempty"`
}

// ScanAttemptResponse salida de un intento de escaneo.
type ScanAttemptResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Role      string    `json:"role"`
	Found     bool      `json:"found"`
	PalletID  *string   `json:"pallet_id"`
	DateKey   string    `json:"date_key"`
	CreatedAt time.Time `json:"created_at"`
}

// IncidentResponse salida de una incidencia.
type IncidentResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	ReportedBy     string    `json:"reported_by"`
	ReportedByName string    `json:"reported_by_name"`
	Status         string    `json:"status"`
	ScanAttemptID  string    `json:"scan_attempt_id"`
	DateKey        string    `json:"date_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScanLogResponse intentos e incidencias de un día.
type ScanLogResponse struct {
	DateKey   string                `json:"date_key"`
	Attempts  []ScanAttemptResponse `json:"attempts"`
	Incidents []IncidentResponse    `json:"incidents"`
}
