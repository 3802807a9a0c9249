package inmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/storage/db/inmemory"
)

func TestOperationRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := inmemory.NewOperationRepositoryImpl()

	_, err := repo.GetOperation(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrOperationNotFound)

	first := domain.NewTradeOperation("order-1")
	first.CreatedAt = time.Now().Add(-time.Minute).Unix()
	require.NoError(t, repo.AddOperation(ctx, first))

	second := domain.NewSwapOperation(0, 42)
	require.NoError(t, repo.AddOperation(ctx, second))

	got, err := repo.GetOperation(ctx, first.Id)
	require.NoError(t, err)
	require.Equal(t, first.Id, got.Id)
	require.Equal(t, domain.StatusIdle, got.Status)

	require.NoError(t, repo.UpdateOperation(
		ctx, first.Id, func(op *domain.Operation) (*domain.Operation, error) {
			if err := op.Prepare(); err != nil {
				return nil, err
			}
			return op, nil
		},
	))

	got, err = repo.GetOperation(ctx, first.Id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, got.Status)

	all, err := repo.GetAllOperations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// newest first
	require.Equal(t, second.Id, all[0].Id)
	require.Equal(t, first.Id, all[1].Id)
}
