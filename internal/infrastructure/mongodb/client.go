// Package mongodb implementa los puertos de persistencia sobre MongoDB, el almacén
// de documentos por defecto. Cada entidad vive en su propia colección.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nombres de colección.
const (
	CollMovements      = "movements"
	CollPallets        = "pallets"
	CollWarehouseScans = "warehouse_scans"
	CollScanAttempts   = "scan_attempts"
	CollIncidents      = "incidents"
	CollBoxBatches     = "box_batches"
	CollWorkers        = "workers"
	CollUsers          = "users"
)

// Config configuración de conexión.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Client envuelve el cliente de MongoDB con la base de datos de la aplicación.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewClient conecta y verifica la conexión con un ping.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: conectar: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return &Client{client: client, database: client.Database(cfg.Database)}, nil
}

// Database devuelve la base de datos de la aplicación.
func (c *Client) Database() *mongo.Database { return c.database }

// Close desconecta el cliente.
func (c *Client) Close(ctx context.Context) error { return c.client.Disconnect(ctx) }

// HealthCheck verifica la conexión.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes crea los índices; es idempotente. El índice único de warehouse_scans
// es la garantía de una sola copia por (code, dateKey).
func (c *Client) EnsureIndexes(ctx context.Context) error {
	byDay := func(extra ...bson.E) mongo.IndexModel {
		keys := bson.D{{Key: "dateKey", Value: -1}, {Key: "createdAt", Value: -1}}
		return mongo.IndexModel{Keys: append(keys, extra...)}
	}
	indexes := map[string][]mongo.IndexModel{
		CollMovements: {byDay(), {Keys: bson.D{{Key: "kind", Value: 1}, {Key: "dateKey", Value: -1}}}},
		CollPallets:   {byDay(), {Keys: bson.D{{Key: "code", Value: 1}, {Key: "dateKey", Value: 1}}}},
		CollWarehouseScans: {
			{
				Keys:    bson.D{{Key: "code", Value: 1}, {Key: "dateKey", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_code_date"),
			},
			{Keys: bson.D{{Key: "dateKey", Value: -1}, {Key: "scannedAt", Value: -1}}},
		},
		CollScanAttempts: {byDay()},
		CollIncidents:    {byDay()},
		CollBoxBatches:   {byDay()},
		CollUsers: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		}},
	}
	for coll, models := range indexes {
		if _, err := c.database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongodb: índices de %s: %w", coll, err)
		}
	}
	return nil
}

// Repositories expone las colecciones con los puertos del dominio.
func (c *Client) Repositories() *repository.Store {
	db := c.database
	return &repository.Store{
		Movements:      &MovementRepository{coll: db.Collection(CollMovements)},
		Pallets:        &PalletRepository{coll: db.Collection(CollPallets)},
		WarehouseScans: &WarehouseScanRepository{coll: db.Collection(CollWarehouseScans)},
		ScanAttempts:   &ScanAttemptRepository{coll: db.Collection(CollScanAttempts)},
		Incidents:      &IncidentRepository{coll: db.Collection(CollIncidents)},
		BoxBatches:     &BoxBatchRepository{coll: db.Collection(CollBoxBatches)},
		Workers:        &WorkerRepository{coll: db.Collection(CollWorkers)},
		Users:          &UserRepository{coll: db.Collection(CollUsers)},
		Ping:           c.HealthCheck,
		Close:          c.Close,
	}
}
