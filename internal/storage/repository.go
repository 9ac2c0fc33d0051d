package storage

import (
	"context"

	"github.com/inviti8/freenet-lepus/internal/deployments"
)

// Repository defines the interface for the deployment-record mirror.
// The JSON ledger on disk is the source of truth; the mirror exists so CI
// runs can query deployment history without checking out the repo.
type Repository interface {
	// Deployment records
	SaveDeploymentRecord(ctx context.Context, contract string, rec *deployments.Record) error
	GetDeploymentRecord(ctx context.Context, contract, network string) (*deployments.Record, error)
	ListDeploymentRecords(ctx context.Context, limit, offset int) ([]*deployments.Record, error)

	// Health & Maintenance
	Ping(ctx context.Context) error
	Close() error
}
