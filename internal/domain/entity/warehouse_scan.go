package entity

import (
	"math"
	"strconv"
	"time"
)

// Shift turno de almacén.
type Shift string

// Turnos reconocidos.
const (
	ShiftMatutino   Shift = "matutino"
	ShiftVespertino Shift = "vespertino"
)

// Valid indica si el turno es uno de los dos reconocidos.
func (s Shift) Valid() bool {
	return s == ShiftMatutino || s == ShiftVespertino
}

// WarehouseScan copia deduplicada de una tarima registrada en almacén.
// Única por (Code, DateKey); nunca se modifica ni se elimina.
type WarehouseScan struct {
	ID          string
	Code        string
	Shift       Shift
	Responsible string
	DateKey     string
	RecordedBy  string
	ScannedAt   time.Time
	Pallet      Fields // copia literal de la tarima, en el orden recibido
}

// WarehouseScanFilter filtro por día o rango, con turno opcional.
type WarehouseScanFilter struct {
	DateRange
	Shift Shift
}

// Field par clave/valor escalar (string, int64, float64, bool o nil).
type Field struct {
	Key   string
	Value any
}

// Fields mapa ordenado de campos escalares.
type Fields []Field

// Get devuelve el valor de key.
func (f Fields) Get(key string) (any, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// String devuelve el valor de key si es texto.
func (f Fields) String(key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Text devuelve el valor de key como texto: las cadenas tal cual y los números en
// su forma decimal. Otros tipos o una clave ausente devuelven "".
func (f Fields) Text(key string) string {
	v, _ := f.Get(key)
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

// Without devuelve una copia sin las claves indicadas, conservando el orden.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, 0, len(f))
next:
	for _, kv := range f {
		for _, k := range keys {
			if kv.Key == k {
				continue next
			}
		}
		out = append(out, kv)
	}
	return out
}

// IsScalar indica si v es un valor admitido en Fields.
// Un float64 infinito o NaN no tiene representación JSON y se rechaza.
func IsScalar(v any) bool {
	switch x := v.(type) {
	case nil, string, bool, int, int32, int64:
		return true
	case float64:
		return !math.IsInf(x, 0) && !math.IsNaN(x)
	}
	return false
}
