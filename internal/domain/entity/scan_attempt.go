package entity

import "time"

// ScanAttempt registro de cada escaneo enviado, encontrado o no.
type ScanAttempt struct {
	ID        string
	Code      string
	ActorID   string
	ActorName string
	Role      Role
	Found     bool
	PalletID  *string
	DateKey   string
	CreatedAt time.Time
}

// IncidentStatusNew estado inicial de una incidencia; la resolución ocurre fuera del sistema.
const IncidentStatusNew = "new"

// Incident se abre cuando un código escaneado no corresponde a ninguna tarima del día.
type Incident struct {
	ID             string
	Code           string
	ReportedBy     string
	ReportedByName string
	Status         string
	ScanAttemptID  string
	DateKey        string
	CreatedAt      time.Time
}
