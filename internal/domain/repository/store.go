package repository

import "context"

// Store agrupa los repositorios de un mismo backend (mongo, postgres o memoria).
type Store struct {
	Movements      MovementRepository
	Pallets        PalletRepository
	WarehouseScans WarehouseScanRepository
	ScanAttempts   ScanAttemptRepository
	Incidents      IncidentRepository
	BoxBatches     BoxBatchRepository
	Workers        WorkerRepository
	Users          UserRepository

	// Ping verifica la conexión (health check); Close libera recursos.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}
