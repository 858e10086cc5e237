// Package postgres implementa los puertos de persistencia sobre PostgreSQL (pgx).
package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

// NewPool crea el pool con la configuración de la app y verifica la conexión.
// Con DATABASE_URL se intenta fijar la IPv4 del host (los contenedores suelen no tener IPv6).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.DatabaseURL != "" {
		dsn = withIPv4Host(dsn)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// Repositories arma el Store sobre el pool.
func Repositories(pool *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Movements:      NewMovementRepository(pool),
		Pallets:        NewPalletRepository(pool),
		WarehouseScans: NewWarehouseScanRepository(pool),
		ScanAttempts:   NewScanAttemptRepository(pool),
		Incidents:      NewIncidentRepository(pool),
		BoxBatches:     NewBoxBatchRepository(pool),
		Workers:        NewWorkerRepository(pool),
		Users:          NewUserRepository(pool),
		Ping:           pool.Ping,
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

// withIPv4Host reemplaza el hostname de la URL por su IPv4 si la resolución lo permite.
func withIPv4Host(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return databaseURL
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			u.Host = net.JoinHostPort(ip.String(), port)
			return u.String()
		}
	}
	return databaseURL
}
