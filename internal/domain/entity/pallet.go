package entity

import "time"

// Pallet tarima registrada por una trabajadora durante la jornada.
// El código no es único entre días; se busca siempre junto con DateKey.
type Pallet struct {
	ID             string
	Code           string
	AssignedWorker string
	PalletType     string
	DateKey        string
	RecordedBy     string
	CreatedAt      time.Time
}

// PalletFilter filtro por día o rango, con tipo de tarima opcional.
type PalletFilter struct {
	DateRange
	PalletType string
}
