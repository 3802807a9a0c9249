package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OperationStatus represents the lifecycle status of a single in-flight
// trade or swap.
type OperationStatus int

const (
	StatusIdle OperationStatus = iota
	StatusPreparing
	StatusSigning
	StatusSubmitting
	StatusConfirming
	StatusConfirmed
	StatusFailed
)

func (s OperationStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPreparing:
		return "preparing"
	case StatusSigning:
		return "signing"
	case StatusSubmitting:
		return "submitting"
	case StatusConfirming:
		return "confirming"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationKind discriminates trade purchases from AMM swaps.
type OperationKind string

const (
	OperationTrade OperationKind = "trade"
	OperationSwap  OperationKind = "swap"
)

// Operation is the data structure driving a single trade or swap through
// prepare -> sign -> submit -> confirm. Transitions are strictly sequential:
// no status is ever skipped, except that confirming may be bypassed when the
// submit response already implies finality.
type Operation struct {
	Id            string
	Kind          OperationKind
	Subject       string
	Status        OperationStatus
	TxId          string
	FailureReason string
	CreatedAt     int64
	UpdatedAt     int64
}

// NewTradeOperation returns an idle trade operation for the given order.
func NewTradeOperation(orderId string) *Operation {
	return newOperation(OperationTrade, orderId)
}

// NewSwapOperation returns an idle swap operation for the given asset pair.
func NewSwapOperation(assetIn, assetOut uint64) *Operation {
	return newOperation(OperationSwap, fmt.Sprintf("%d/%d", assetIn, assetOut))
}

func newOperation(kind OperationKind, subject string) *Operation {
	now := time.Now().Unix()
	return &Operation{
		Id:        uuid.New().String(),
		Kind:      kind,
		Subject:   subject,
		Status:    StatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Prepare brings an idle operation to the Preparing status.
func (o *Operation) Prepare() error {
	return o.transition(StatusPreparing, StatusIdle)
}

// Sign brings the operation from Preparing to Signing.
func (o *Operation) Sign() error {
	return o.transition(StatusSigning, StatusPreparing)
}

// Submit brings the operation from Signing to Submitting.
func (o *Operation) Submit() error {
	return o.transition(StatusSubmitting, StatusSigning)
}

// AwaitConfirmation brings the operation from Submitting to Confirming and
// records the transaction id being polled.
func (o *Operation) AwaitConfirmation(txId string) error {
	if err := o.transition(StatusConfirming, StatusSubmitting); err != nil {
		return err
	}
	o.TxId = txId
	return nil
}

// Confirm brings the operation to the terminal Confirmed status, either from
// Confirming or straight from Submitting when the submit response already
// implies on-chain finality.
func (o *Operation) Confirm(txId string) error {
	if err := o.transition(StatusConfirmed, StatusSubmitting, StatusConfirming); err != nil {
		return err
	}
	o.TxId = txId
	return nil
}

// Fail brings a non-terminal, non-idle operation to the terminal Failed
// status, recording the reason.
func (o *Operation) Fail(reason string) error {
	if err := o.transition(
		StatusFailed,
		StatusPreparing, StatusSigning, StatusSubmitting, StatusConfirming,
	); err != nil {
		return err
	}
	o.FailureReason = reason
	return nil
}

// Cancel returns the operation to Idle. It is only allowed while Preparing,
// before any signature has been collected: a partially-signed atomic group
// cannot be half submitted, so cancellation is not offered past that point.
func (o *Operation) Cancel() error {
	return o.transition(StatusIdle, StatusPreparing)
}

// Reset brings a terminal operation back to Idle so the surface can start a
// new one.
func (o *Operation) Reset() error {
	if err := o.transition(StatusIdle, StatusConfirmed, StatusFailed); err != nil {
		return err
	}
	o.TxId = ""
	o.FailureReason = ""
	return nil
}

// IsTerminal returns whether the operation reached Confirmed or Failed.
func (o *Operation) IsTerminal() bool {
	return o.Status == StatusConfirmed || o.Status == StatusFailed
}

// IsInFlight returns whether the operation is past Idle and not terminal.
// While an operation is in flight the triggering action must stay disabled.
func (o *Operation) IsInFlight() bool {
	return o.Status != StatusIdle && !o.IsTerminal()
}

func (o *Operation) transition(to OperationStatus, from ...OperationStatus) error {
	for _, s := range from {
		if o.Status == s {
			o.Status = to
			o.UpdatedAt = time.Now().Unix()
			return nil
		}
	}
	return fmt.Errorf(
		"%w: %s -> %s", ErrIllegalStatusTransition, o.Status, to,
	)
}
