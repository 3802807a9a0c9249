package trade

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

// Service drives order negotiation against the external order book: listing
// creation with local signing, listing lookup and cancellation, plus the
// purchase flow in execute.go. The order book remains the authority on
// listing state; this service never mutates statuses directly.
type Service struct {
	orderBook ports.OrderBook
	wallet    ports.Wallet
	repo      domain.OperationRepository

	marketplaceId  string
	orderTTL       time.Duration
	currencyAssets map[string]uint64

	confirmInterval time.Duration
	confirmAttempts int

	mtx sync.Mutex
	op  *domain.Operation
}

func NewService(
	orderBook ports.OrderBook, wallet ports.Wallet,
	repo domain.OperationRepository,
	marketplaceId string, orderTTL time.Duration,
	currencyAssets map[string]uint64,
	confirmInterval time.Duration, confirmAttempts int,
) (*Service, error) {
	if orderBook == nil {
		return nil, fmt.Errorf("missing order-book service")
	}
	if wallet == nil {
		return nil, fmt.Errorf("missing wallet service")
	}
	if repo == nil {
		return nil, fmt.Errorf("missing operation repository")
	}
	if len(marketplaceId) <= 0 {
		return nil, fmt.Errorf("missing marketplace id")
	}
	if orderTTL < time.Second {
		return nil, domain.ErrInvalidTTL
	}
	if len(currencyAssets) <= 0 {
		return nil, fmt.Errorf("missing currency asset map")
	}
	if confirmInterval <= 0 || confirmAttempts <= 0 {
		return nil, fmt.Errorf("confirmation polling settings must be positive")
	}

	return &Service{
		orderBook:       orderBook,
		wallet:          wallet,
		repo:            repo,
		marketplaceId:   marketplaceId,
		orderTTL:        orderTTL,
		currencyAssets:  currencyAssets,
		confirmInterval: confirmInterval,
		confirmAttempts: confirmAttempts,
	}, nil
}

// CreateListing builds a sell order for the given NFT, has the wallet sign
// its canonical serialization and submits it to the order book. The order is
// signed locally, never server-side.
func (s *Service) CreateListing(
	ctx context.Context, nftId string, assetId uint64,
	price decimal.Decimal, currency string,
) (*domain.SellOrder, error) {
	order, err := domain.NewSellOrder(
		s.marketplaceId, nftId, assetId,
		s.wallet.Address(), price, currency, s.orderTTL,
	)
	if err != nil {
		return nil, err
	}

	sig, err := s.wallet.SignMessage(ctx, ordercodec.Serialize(order.Canonical()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSigningRejected, err)
	}
	order.Signature = sig

	// the signature must verify against the seller address before the
	// order leaves the client
	if err := order.VerifySignature(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSigningRejected, err)
	}

	if err := s.orderBook.SubmitOrder(ctx, order); err != nil {
		return nil, err
	}

	log.Debugf("created listing %s for nft %s", order.Id, nftId)
	return order, nil
}

// ListActive returns the active listings for an NFT sorted by ascending
// price, so the first entry is always the best current ask. An empty list is
// a valid result.
func (s *Service) ListActive(
	ctx context.Context, nftId string,
) ([]domain.TradingOrder, error) {
	info, err := s.orderBook.GetNftTrading(ctx, nftId)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.TradingOrder, 0, len(info.ActiveListings))
	for _, l := range info.ActiveListings {
		if l.Status == domain.OrderStatusActive {
			listings = append(listings, l)
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Price.LessThan(listings[j].Price)
	})
	return listings, nil
}

// GetNftTrading returns the full per-NFT trading view: listings, history and
// statistics.
func (s *Service) GetNftTrading(
	ctx context.Context, nftId string,
) (*ports.NftTradingInfo, error) {
	return s.orderBook.GetNftTrading(ctx, nftId)
}

// CancelListing asks the order book to cancel a listing on behalf of the
// local wallet. When the listing can be looked up, requests for listings not
// owned by the wallet are refused before hitting the network; the order book
// remains the authority on the ownership check either way.
func (s *Service) CancelListing(ctx context.Context, nftId, orderId string) error {
	requester := s.wallet.Address()

	if len(nftId) > 0 {
		if info, err := s.orderBook.GetNftTrading(ctx, nftId); err == nil {
			for _, l := range info.ActiveListings {
				if l.Id == orderId && l.Seller != requester {
					return domain.ErrNotOrderOwner
				}
			}
		}
	}

	if err := s.orderBook.CancelOrder(ctx, orderId, requester); err != nil {
		return err
	}
	log.Debugf("cancelled listing %s", orderId)
	return nil
}
