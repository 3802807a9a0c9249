// Package inmemory provides a volatile OperationRepository, used in tests
// and when no data directory is configured.
package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
)

type operationRepositoryImpl struct {
	lock       *sync.RWMutex
	operations map[string]domain.Operation
}

// NewOperationRepositoryImpl returns an in-memory domain.OperationRepository.
func NewOperationRepositoryImpl() domain.OperationRepository {
	return &operationRepositoryImpl{
		lock:       &sync.RWMutex{},
		operations: map[string]domain.Operation{},
	}
}

func (r *operationRepositoryImpl) AddOperation(
	_ context.Context, op *domain.Operation,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.operations[op.Id] = *op
	return nil
}

func (r *operationRepositoryImpl) GetOperation(
	_ context.Context, id string,
) (*domain.Operation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	op, ok := r.operations[id]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	return &op, nil
}

func (r *operationRepositoryImpl) GetAllOperations(
	_ context.Context,
) ([]domain.Operation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ops := make([]domain.Operation, 0, len(r.operations))
	for _, op := range r.operations {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].CreatedAt == ops[j].CreatedAt {
			return ops[i].Id > ops[j].Id
		}
		return ops[i].CreatedAt > ops[j].CreatedAt
	})
	return ops, nil
}

func (r *operationRepositoryImpl) UpdateOperation(
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

	r.lock.Lock()
	defer r.lock.Unlock()
	r.operations[id] = *updated
	return nil
}
