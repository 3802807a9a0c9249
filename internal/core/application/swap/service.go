package swap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/pkg/formula"
)

var one = decimal.NewFromInt(1)

// Service drives AMM swap quoting and execution for a single UI surface. It
// keeps the latest quote of the session and guarantees that a response to a
// superseded quote request never overwrites a newer one.
type Service struct {
	amm    ports.Amm
	wallet ports.Wallet
	repo   domain.OperationRepository

	confirmInterval time.Duration
	confirmAttempts int

	mtx        sync.Mutex
	generation uint64
	quote      *domain.SwapQuote
	op         *domain.Operation
}

func NewService(
	amm ports.Amm, wallet ports.Wallet, repo domain.OperationRepository,
	confirmInterval time.Duration, confirmAttempts int,
) (*Service, error) {
	if amm == nil {
		return nil, fmt.Errorf("missing amm service")
	}
	if wallet == nil {
		return nil, fmt.Errorf("missing wallet service")
	}
	if repo == nil {
		return nil, fmt.Errorf("missing operation repository")
	}
	if confirmInterval <= 0 || confirmAttempts <= 0 {
		return nil, fmt.Errorf("confirmation polling settings must be positive")
	}

	return &Service{
		amm:             amm,
		wallet:          wallet,
		repo:            repo,
		confirmInterval: confirmInterval,
		confirmAttempts: confirmAttempts,
	}, nil
}

// Quote recomputes the swap quote for the given inputs and stores it as the
// session's current one, unless a newer request supersedes this one while
// its pool lookup is in flight. Superseded results are dropped silently and
// (nil, nil) is returned: last input wins.
func (s *Service) Quote(
	ctx context.Context, assetIn, assetOut uint64,
	amountIn, slippage decimal.Decimal,
) (*domain.SwapQuote, error) {
	if assetIn == assetOut {
		return nil, domain.ErrSameAssetPair
	}
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	s.generation++
	gen := s.generation

	// a non-positive amount clears the quote synchronously, no pool lookup
	if amountIn.LessThanOrEqual(decimal.Zero) {
		cleared := domain.EmptyQuote(assetIn, assetOut)
		s.quote = &cleared
		s.mtx.Unlock()
		return &cleared, nil
	}
	s.mtx.Unlock()

	quote, err := s.computeQuote(ctx, assetIn, assetOut, amountIn, slippage)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if gen != s.generation {
		return nil, nil
	}
	s.quote = quote
	return quote, nil
}

// CurrentQuote returns the latest non-superseded quote of the session, or
// nil if none has been computed yet.
func (s *Service) CurrentQuote() *domain.SwapQuote {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.quote
}

func (s *Service) computeQuote(
	ctx context.Context, assetIn, assetOut uint64,
	amountIn, slippage decimal.Decimal,
) (*domain.SwapQuote, error) {
	pool, err := s.amm.GetPool(ctx, assetIn, assetOut)
	switch {
	case err == nil:
		return directQuote(pool, assetIn, assetOut, amountIn, slippage)
	case errors.Is(err, domain.ErrPoolNotFound):
		// no direct pool: route through ALGO unless one of the legs
		// already is ALGO, in which case there is no route at all
		if assetIn == domain.AlgoAssetId || assetOut == domain.AlgoAssetId {
			return noPoolQuote(assetIn, assetOut, amountIn), nil
		}
		return s.routedQuote(ctx, assetIn, assetOut, amountIn, slippage)
	default:
		return nil, err
	}
}

func (s *Service) routedQuote(
	ctx context.Context, assetIn, assetOut uint64,
	amountIn, slippage decimal.Decimal,
) (*domain.SwapQuote, error) {
	var inPool, outPool *domain.Pool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool, err := s.amm.GetPool(gctx, assetIn, domain.AlgoAssetId)
		inPool = pool
		return err
	})
	g.Go(func() error {
		pool, err := s.amm.GetPool(gctx, domain.AlgoAssetId, assetOut)
		outPool = pool
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrPoolNotFound) {
			return noPoolQuote(assetIn, assetOut, amountIn), nil
		}
		return nil, err
	}

	inRes, midRes, ok := inPool.ReservesFor(assetIn)
	if !ok {
		return nil, fmt.Errorf("pool does not contain asset %d", assetIn)
	}
	midRes2, outRes, ok := outPool.ReservesFor(domain.AlgoAssetId)
	if !ok {
		return nil, fmt.Errorf("pool does not contain asset %d", domain.AlgoAssetId)
	}

	hopIn := formula.Opts{ReserveIn: inRes, ReserveOut: midRes, FeeBps: inPool.FeeBps}
	hopOut := formula.Opts{ReserveIn: midRes2, ReserveOut: outRes, FeeBps: outPool.FeeBps}

	midAmount, err := formula.OutGivenIn(hopIn, amountIn)
	if err != nil {
		return nil, err
	}
	amountOut, err := formula.OutGivenIn(hopOut, midAmount)
	if err != nil {
		return nil, err
	}

	spotIn, err := formula.SpotPrice(hopIn)
	if err != nil {
		return nil, err
	}
	spotOut, err := formula.SpotPrice(hopOut)
	if err != nil {
		return nil, err
	}

	// executed price relative to the composed marginal price of both hops
	executed := amountOut.Div(amountIn)
	impact := one.Sub(executed.Div(spotIn.Mul(spotOut))).Mul(decimal.NewFromInt(100))

	// the second hop fee is charged in ALGO, convert it back to the input
	// asset at the first hop's marginal price
	fee := formula.FeeAmount(amountIn, inPool.FeeBps).Add(
		formula.FeeAmount(midAmount, outPool.FeeBps).Div(spotIn),
	)

	return &domain.SwapQuote{
		In:           domain.AssetAmount{AssetId: assetIn, Amount: amountIn},
		Out:          domain.AssetAmount{AssetId: assetOut, Amount: amountOut},
		MinAmountOut: amountOut.Mul(one.Sub(slippage)),
		PriceImpact:  impact,
		Fee:          fee,
		PoolExists:   true,
	}, nil
}

func directQuote(
	pool *domain.Pool, assetIn, assetOut uint64,
	amountIn, slippage decimal.Decimal,
) (*domain.SwapQuote, error) {
	resIn, resOut, ok := pool.ReservesFor(assetIn)
	if !ok {
		return nil, fmt.Errorf("pool does not contain asset %d", assetIn)
	}

	opts := formula.Opts{ReserveIn: resIn, ReserveOut: resOut, FeeBps: pool.FeeBps}
	amountOut, err := formula.OutGivenIn(opts, amountIn)
	if err != nil {
		return nil, err
	}
	impact, err := formula.PriceImpact(opts, amountIn, amountOut)
	if err != nil {
		return nil, err
	}

	return &domain.SwapQuote{
		In:           domain.AssetAmount{AssetId: assetIn, Amount: amountIn},
		Out:          domain.AssetAmount{AssetId: assetOut, Amount: amountOut},
		MinAmountOut: amountOut.Mul(one.Sub(slippage)),
		PriceImpact:  impact,
		Fee:          formula.FeeAmount(amountIn, pool.FeeBps),
		PoolExists:   true,
	}, nil
}

func noPoolQuote(assetIn, assetOut uint64, amountIn decimal.Decimal) *domain.SwapQuote {
	quote := domain.EmptyQuote(assetIn, assetOut)
	quote.In.Amount = amountIn
	return &quote
}

func validateSlippage(slippage decimal.Decimal) error {
	if slippage.LessThan(decimal.Zero) || slippage.GreaterThanOrEqual(one) {
		return domain.ErrInvalidSlippage
	}
	return nil
}
