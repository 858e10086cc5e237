package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. No hay migraciones: sólo bootstrap idempotente.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movements (
		id               TEXT PRIMARY KEY,
		kind             TEXT NOT NULL,
		date_key         CHAR(10) NOT NULL,
		recorded_by      TEXT NOT NULL DEFAULT '',
		container_number TEXT NOT NULL DEFAULT '',
		origin           TEXT NOT NULL DEFAULT '',
		seal_number      TEXT NOT NULL DEFAULT '',
		personnel        TEXT NOT NULL DEFAULT '',
		carrier          TEXT NOT NULL DEFAULT '',
		pallet_type      TEXT NOT NULL DEFAULT '',
		pallet_count     INTEGER NOT NULL DEFAULT 0,
		trailer_id       TEXT NOT NULL DEFAULT '',
		tractor_id       TEXT NOT NULL DEFAULT '',
		items            JSONB NOT NULL DEFAULT '[]',
		arrival_at       TIMESTAMPTZ NOT NULL,
		departure_at     TIMESTAMPTZ,
		pallets_inside   INTEGER,
		boxes_inside     INTEGER,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_day ON movements (date_key DESC, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS pallets (
		id              TEXT PRIMARY KEY,
		code            TEXT NOT NULL,
		assigned_worker TEXT NOT NULL,
		pallet_type     TEXT NOT NULL,
		date_key        CHAR(10) NOT NULL,
		recorded_by     TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pallets_code_day ON pallets (code, date_key)`,
	`CREATE TABLE IF NOT EXISTS warehouse_scans (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL,
		shift       TEXT NOT NULL,
		responsible TEXT NOT NULL,
		date_key    CHAR(10) NOT NULL,
		recorded_by TEXT NOT NULL DEFAULT '',
		scanned_at  TIMESTAMPTZ NOT NULL,
		pallet      JSON NOT NULL,
		CONSTRAINT uniq_code_date UNIQUE (code, date_key)
	)`,
	`CREATE TABLE IF NOT EXISTS scan_attempts (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL,
		actor_id   TEXT NOT NULL,
		actor_name TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL,
		found      BOOLEAN NOT NULL,
		pallet_id  TEXT,
		date_key   CHAR(10) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS incidents (
		id               TEXT PRIMARY KEY,
		code             TEXT NOT NULL,
		reported_by      TEXT NOT NULL,
		reported_by_name TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL,
		scan_attempt_id  TEXT NOT NULL,
		date_key         CHAR(10) NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS box_batches (
		id          TEXT PRIMARY KEY,
		box_type    TEXT NOT NULL,
		quantity    INTEGER NOT NULL,
		date_key    CHAR(10) NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		recorded_by TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		area       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema ejecuta el bootstrap del esquema.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: esquema: %w", err)
		}
	}
	return nil
}
