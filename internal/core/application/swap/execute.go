package swap

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
)

// Execute drives a swap through the whole lifecycle: prepare (fresh quote +
// manifest), sign, submit and confirmation. At most one operation can be in
// flight per service; a concurrent attempt is rejected, not queued.
func (s *Service) Execute(
	ctx context.Context, assetIn, assetOut uint64,
	amountIn, slippage decimal.Decimal,
) (*domain.Operation, error) {
	if assetIn == assetOut {
		return nil, domain.ErrSameAssetPair
	}
	if amountIn.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	if s.op != nil && s.op.IsInFlight() {
		s.mtx.Unlock()
		return nil, domain.ErrOperationInFlight
	}
	op := domain.NewSwapOperation(assetIn, assetOut)
	s.op = op
	s.mtx.Unlock()

	if err := s.repo.AddOperation(ctx, op); err != nil {
		log.WithError(err).Warnf("failed to record swap operation %s", op.Id)
	}

	if err := s.run(ctx, op, assetIn, assetOut, amountIn, slippage); err != nil {
		return op, err
	}
	return op, nil
}

// Operation returns the operation currently owned by the service, nil if
// none was started yet.
func (s *Service) Operation() *domain.Operation {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.op
}

func (s *Service) run(
	ctx context.Context, op *domain.Operation,
	assetIn, assetOut uint64, amountIn, slippage decimal.Decimal,
) error {
	if err := op.Prepare(); err != nil {
		return err
	}
	s.saveOperation(ctx, op)

	// quotes are never reused across operations: reserves may have shifted
	// since the quote the user looked at was computed
	quote, err := s.computeQuote(ctx, assetIn, assetOut, amountIn, slippage)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if !quote.PoolExists {
		return s.fail(ctx, op, domain.ErrPoolNotFound)
	}

	// cheap local check before the expensive wallet round-trip
	balance, err := s.wallet.Balance(ctx, assetIn)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if balance.LessThan(amountIn) {
		return s.fail(ctx, op, domain.ErrInsufficientFunds)
	}

	manifest, err := s.amm.PrepareSwap(ctx, ports.PrepareSwap{
		AssetIn:      assetIn,
		AssetOut:     assetOut,
		AmountIn:     amountIn,
		MinAmountOut: quote.MinAmountOut,
		Sender:       s.wallet.Address(),
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err := manifest.Validate(); err != nil {
		return s.fail(ctx, op, err)
	}

	if err := op.Sign(); err != nil {
		return err
	}
	s.saveOperation(ctx, op)

	signed, err := s.wallet.SignTransactions(ctx, manifest.BuyerLegs())
	if err != nil {
		return s.fail(ctx, op, fmt.Errorf("%w: %v", domain.ErrSigningRejected, err))
	}
	group, err := manifest.SpliceSigned(signed)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := op.Submit(); err != nil {
		return err
	}
	s.saveOperation(ctx, op)

	txId, err := s.amm.SubmitSwap(ctx, ports.SubmitSwap{
		SignedTransactions: group,
		GroupId:            manifest.GroupId,
		Sender:             s.wallet.Address(),
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	return s.waitConfirmation(ctx, op, txId)
}

func (s *Service) waitConfirmation(
	ctx context.Context, op *domain.Operation, txId string,
) error {
	status, err := s.amm.GetTxStatus(ctx, txId)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if status.Confirmed {
		return s.confirm(ctx, op, txId)
	}

	if err := op.AwaitConfirmation(txId); err != nil {
		return err
	}
	s.saveOperation(ctx, op)

	for i := 0; i < s.confirmAttempts; i++ {
		select {
		case <-ctx.Done():
			return s.fail(ctx, op, ctx.Err())
		case <-time.After(s.confirmInterval):
		}

		status, err := s.amm.GetTxStatus(ctx, txId)
		if err != nil {
			return s.fail(ctx, op, err)
		}
		if status.Failed {
			return s.fail(ctx, op, fmt.Errorf(
				"%w: transaction group rejected on chain", domain.ErrSubmissionFailed,
			))
		}
		if status.Confirmed {
			return s.confirm(ctx, op, txId)
		}
	}
	return s.fail(ctx, op, domain.ErrConfirmationTimeout)
}

func (s *Service) confirm(ctx context.Context, op *domain.Operation, txId string) error {
	if err := op.Confirm(txId); err != nil {
		return err
	}
	s.saveOperation(ctx, op)
	log.Debugf("swap %s confirmed with tx %s", op.Id, txId)
	return nil
}

func (s *Service) fail(ctx context.Context, op *domain.Operation, opErr error) error {
	if err := op.Fail(opErr.Error()); err != nil {
		log.WithError(err).Warnf("failed to mark swap %s as failed", op.Id)
	}
	s.saveOperation(ctx, op)
	log.WithError(opErr).Debugf("swap %s failed", op.Id)
	return opErr
}

// saveOperation persists a lifecycle transition to the local operation log.
// The log is informative, failures to write it never abort the flow.
func (s *Service) saveOperation(ctx context.Context, op *domain.Operation) {
	if err := s.repo.UpdateOperation(
		ctx, op.Id, func(_ *domain.Operation) (*domain.Operation, error) {
			return op, nil
		},
	); err != nil {
		log.WithError(err).Warnf("failed to update swap operation %s", op.Id)
	}
}
