package trade

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
)

// Execute purchases the given listing, driving the operation through
// prepare -> sign -> submit -> confirm. The manifest is requested fresh from
// the order book on every call and discarded afterwards: a retry must re-run
// the whole flow since fees and balances may have shifted in between. At
// most one operation can be in flight per service; a concurrent attempt is
// rejected, not queued.
func (s *Service) Execute(ctx context.Context, orderId string) (*domain.Operation, error) {
	if len(orderId) <= 0 {
		return nil, domain.ErrOrderNotFound
	}

	s.mtx.Lock()
	if s.op != nil && s.op.IsInFlight() {
		s.mtx.Unlock()
		return nil, domain.ErrOperationInFlight
	}
	op := domain.NewTradeOperation(orderId)
	s.op = op
	s.mtx.Unlock()

	if err := s.repo.AddOperation(ctx, op); err != nil {
		log.WithError(err).Warnf("failed to record trade operation %s", op.Id)
	}

	if err := s.run(ctx, op, orderId); err != nil {
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

func (s *Service) run(ctx context.Context, op *domain.Operation, orderId string) error {
	if err := op.Prepare(); err != nil {
		return err
	}
	s.saveOperation(ctx, op)

	buyer := s.wallet.Address()
	manifest, err := s.orderBook.PrepareTrade(ctx, orderId, buyer)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err := manifest.Validate(); err != nil {
		return s.fail(ctx, op, err)
	}

	paymentAsset, ok := s.currencyAssets[manifest.Info.Currency]
	if !ok {
		return s.fail(ctx, op, fmt.Errorf(
			"%w: %s", domain.ErrUnknownCurrency, manifest.Info.Currency,
		))
	}

	// cheap local balance check ahead of the expensive signing round-trip
	balance, err := s.wallet.Balance(ctx, paymentAsset)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if balance.LessThan(manifest.Info.TotalPrice) {
		return s.fail(ctx, op, domain.ErrInsufficientFunds)
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

	txId, err := s.orderBook.SubmitTrade(ctx, ports.SubmitTrade{
		OrderId:            orderId,
		SignedTransactions: group,
		BuyerAddress:       buyer,
		GroupId:            manifest.GroupId,
		BuyerIndices:       manifest.BuyerIndices,
		SellerIndices:      manifest.SellerIndices,
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	return s.waitConfirmation(ctx, op, txId)
}

func (s *Service) waitConfirmation(
	ctx context.Context, op *domain.Operation, txId string,
) error {
	status, err := s.orderBook.GetTxStatus(ctx, txId)
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

		status, err := s.orderBook.GetTxStatus(ctx, txId)
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
	log.Debugf("trade %s confirmed with tx %s", op.Id, txId)
	return nil
}

func (s *Service) fail(ctx context.Context, op *domain.Operation, opErr error) error {
	if err := op.Fail(opErr.Error()); err != nil {
		log.WithError(err).Warnf("failed to mark trade %s as failed", op.Id)
	}
	s.saveOperation(ctx, op)
	log.WithError(opErr).Debugf("trade %s failed", op.Id)
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
		log.WithError(err).Warnf("failed to update trade operation %s", op.Id)
	}
}
