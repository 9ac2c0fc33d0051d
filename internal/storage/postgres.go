package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inviti8/freenet-lepus/internal/deployments"
	"github.com/inviti8/freenet-lepus/internal/retry"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository. The initial
// ping retries per the given strategy; SQL statements afterwards do not.
func NewPostgresRepository(ctx context.Context, databaseURL string, strategy retry.Strategy) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := strategy.Execute(ctx, func() error {
		return pool.Ping(ctx)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS contract_deployments (
			deployment_key TEXT PRIMARY KEY,
			contract       TEXT NOT NULL,
			network        TEXT NOT NULL,
			contract_id    TEXT NOT NULL,
			wasm_hash      TEXT NOT NULL,
			admin          TEXT NOT NULL,
			burn_bps       INTEGER NOT NULL,
			token          TEXT NOT NULL,
			recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure deployments table: %w", err)
	}
	return nil
}

// SaveDeploymentRecord upserts a deployment record, mirroring the ledger's
// overwrite-per-key semantics.
func (r *PostgresRepository) SaveDeploymentRecord(ctx context.Context, contract string, rec *deployments.Record) error {
	query := `
		INSERT INTO contract_deployments (
			deployment_key, contract, network, contract_id, wasm_hash,
			admin, burn_bps, token
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (deployment_key) DO UPDATE SET
			contract_id = EXCLUDED.contract_id,
			wasm_hash   = EXCLUDED.wasm_hash,
			admin       = EXCLUDED.admin,
			burn_bps    = EXCLUDED.burn_bps,
			token       = EXCLUDED.token,
			recorded_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		deployments.Key(contract, rec.Network),
		contract,
		rec.Network,
		rec.ContractID,
		rec.WasmHash,
		rec.Admin,
		rec.BurnBps,
		rec.Token,
	)

	if err != nil {
		return fmt.Errorf("failed to save deployment record: %w", err)
	}

	return nil
}

// GetDeploymentRecord retrieves the record for a contract on a network.
func (r *PostgresRepository) GetDeploymentRecord(ctx context.Context, contract, network string) (*deployments.Record, error) {
	query := `
		SELECT contract_id, wasm_hash, admin, burn_bps, token, network
		FROM contract_deployments
		WHERE deployment_key = $1
	`

	var rec deployments.Record
	err := r.pool.QueryRow(ctx, query, deployments.Key(contract, network)).Scan(
		&rec.ContractID,
		&rec.WasmHash,
		&rec.Admin,
		&rec.BurnBps,
		&rec.Token,
		&rec.Network,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("deployment not found: %s", deployments.Key(contract, network))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment record: %w", err)
	}

	return &rec, nil
}

// ListDeploymentRecords lists recorded deployments with pagination.
func (r *PostgresRepository) ListDeploymentRecords(ctx context.Context, limit, offset int) ([]*deployments.Record, error) {
	query := `
		SELECT contract_id, wasm_hash, admin, burn_bps, token, network
		FROM contract_deployments
		ORDER BY recorded_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployment records: %w", err)
	}
	defer rows.Close()

	var records []*deployments.Record
	for rows.Next() {
		var rec deployments.Record
		if err := rows.Scan(
			&rec.ContractID,
			&rec.WasmHash,
			&rec.Admin,
			&rec.BurnBps,
			&rec.Token,
			&rec.Network,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deployment record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deployment records: %w", err)
	}

	return records, nil
}

// Ping checks the database connection.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
