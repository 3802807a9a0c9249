package domain

import "context"

// OperationRepository persists the local log of trade and swap operations.
type OperationRepository interface {
	AddOperation(ctx context.Context, op *Operation) error
	GetOperation(ctx context.Context, id string) (*Operation, error)
	// GetAllOperations returns every recorded operation, newest first.
	GetAllOperations(ctx context.Context) ([]Operation, error)
	UpdateOperation(
		ctx context.Context, id string,
		updateFn func(op *Operation) (*Operation, error),
	) error
}
