// Package dbbadger persists the local operation log on disk through
// badgerhold.
package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
)

type operationRepositoryImpl struct {
	db *DbManager
}

// NewOperationRepositoryImpl returns a badger-backed
// domain.OperationRepository.
func NewOperationRepositoryImpl(db *DbManager) domain.OperationRepository {
	return operationRepositoryImpl{db: db}
}

func (r operationRepositoryImpl) AddOperation(
	_ context.Context, op *domain.Operation,
) error {
	if err := r.db.Store.Insert(op.Id, *op); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return r.db.Store.Update(op.Id, *op)
		}
		return err
	}
	return nil
}

func (r operationRepositoryImpl) GetOperation(
	_ context.Context, id string,
) (*domain.Operation, error) {
	var op domain.Operation
	if err := r.db.Store.Get(id, &op); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrOperationNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r operationRepositoryImpl) GetAllOperations(
	_ context.Context,
) ([]domain.Operation, error) {
	ops := make([]domain.Operation, 0)
	query := (&badgerhold.Query{}).SortBy("CreatedAt").Reverse()
	if err := r.db.Store.Find(&ops, query); err != nil {
		return nil, err
	}
	return ops, nil
}

func (r operationRepositoryImpl) UpdateOperation(
	ctx context.Context, id string,
	updateFn func(op *domain.Operation) (*domain.Operation, error),
) error {
	current, err := r.GetOperation(ctx, id)
	if err != nil {
		return err
	}

	updated, err := updateFn(current)
	if err != nil {
		return err
	}

	return r.db.Store.Update(id, *updated)
}
