package entity

import "time"

// DateKeyLayout formato fijo YYYY-MM-DD; la comparación lexicográfica equivale a la de calendario.
const DateKeyLayout = "2006-01-02"

// DateKeyOf devuelve la clave de día de t en la zona loc.
func DateKeyOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateKeyLayout)
}

// ValidDateKey verifica que s sea una fecha de calendario real con ancho fijo.
func ValidDateKey(s string) bool {
	if len(s) != len(DateKeyLayout) {
		return false
	}
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateKeyLayout) == s
}

// DateRange rango inclusivo [From, To] de claves de día. Un solo día usa From == To.
type DateRange struct {
	From string
	To   string
}

// SingleDay construye el rango de un día.
func SingleDay(day string) DateRange {
	return DateRange{From: day, To: day}
}

// IsSingleDay indica si el rango cubre un solo día.
func (r DateRange) IsSingleDay() bool { return r.From == r.To }

// Contains indica si key cae dentro del rango (ambos extremos incluidos).
func (r DateRange) Contains(key string) bool {
	return r.From <= key && key <= r.To
}
