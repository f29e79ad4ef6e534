package marketplace

import (
	"math/big"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/event"
	"github.com/creatorhub/marketplace-engine/internal/funds"
	"github.com/creatorhub/marketplace-engine/internal/registry"
	"go.uber.org/zap"
)

// Engine executes purchases against the ledger. A Buy either moves the
// asset, the funds and the listing state together, or leaves all of them
// untouched.
type Engine interface {
	Buy(listingId uint64, buyer string, amountPaid *big.Int) (Sale, error)
}

// Sale reports a settled purchase. The three amounts always sum to the
// amount paid.
type Sale struct {
	Listing         entity.Listing
	Buyer           string
	NewOwner        string
	SellerAmount    *big.Int
	RoyaltyAmount   *big.Int
	PlatformAmount  *big.Int
	RoyaltyReceiver string
	Treasury        string
}

type engine struct {
	ledger   Ledger
	registry registry.AssetRegistry
	platform PlatformService
	bank     funds.Sink
}

func NewEngine(ledger Ledger, assetRegistry registry.AssetRegistry, platform PlatformService, bank funds.Sink) Engine {
	return engine{ledger, assetRegistry, platform, bank}
}

func (e engine) Buy(listingId uint64, buyer string, amountPaid *big.Int) (Sale, error) {
	listing, err := e.ledger.GetListing(listingId)
	if err != nil {
		return Sale{}, err
	}
	if !listing.Active {
		return Sale{}, ErrNotActive
	}

	price, ok := new(big.Int).SetString(listing.Price, 10)
	if !ok || amountPaid == nil || amountPaid.Cmp(price) != 0 {
		return Sale{}, ErrBadPrice
	}

	royalty, err := e.registry.RoyaltyOf(listing.AssetContract, listing.TokenId)
	if err != nil {
		zap.L().With(
			zap.Uint64("listingId", listingId),
			zap.String("contract", listing.AssetContract),
			zap.Uint64("tokenId", listing.TokenId),
			zap.Error(err),
		).Error("Settlement: Failed to get royalty")
		return Sale{}, err
	}

	platform := e.platform.Get()

	platformAmount, royaltyAmount, sellerAmount, err := splitProceeds(amountPaid, platform.FeeBps, royalty)
	if err != nil {
		zap.L().With(
			zap.Uint64("listingId", listingId),
			zap.Uint("feeBps", platform.FeeBps),
			zap.Uint("royaltyBps", royalty.Bps),
			zap.Error(err),
		).Warn("Settlement: Purchase rejected")
		return Sale{}, err
	}

	// The asset transfer is the commit point. It runs inside the ledger's
	// transaction boundary: if the registry refuses, the listing never
	// leaves the active state and no funds have moved.
	listing, err = e.ledger.Finalize(listingId, func(l entity.Listing) error {
		if err := e.registry.Transfer(l.AssetContract, l.TokenId, l.Seller, buyer); err != nil {
			zap.L().With(
				zap.Uint64("listingId", listingId),
				zap.String("contract", l.AssetContract),
				zap.Uint64("tokenId", l.TokenId),
				zap.String("from", l.Seller),
				zap.String("to", buyer),
				zap.Error(err),
			).Error("Settlement: Asset transfer refused")
			return ErrTransferFailed
		}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}

	sale := Sale{
		Listing:         listing,
		Buyer:           buyer,
		NewOwner:        buyer,
		SellerAmount:    sellerAmount,
		RoyaltyAmount:   royaltyAmount,
		PlatformAmount:  platformAmount,
		RoyaltyReceiver: royalty.Receiver,
		Treasury:        platform.Treasury,
	}

	if err := e.disburse(sale); err != nil {
		return Sale{}, err
	}

	zap.L().With(
		zap.Uint64("listingId", listingId),
		zap.String("contract", listing.AssetContract),
		zap.Uint64("tokenId", listing.TokenId),
		zap.String("from", listing.Seller),
		zap.String("to", buyer),
		zap.String("cost", amountPaid.String()),
		zap.String("fee", platformAmount.String()),
		zap.String("royalty", royaltyAmount.String()),
	).Info("Settlement: Sale settled")

	event.EmitEvent(event.SaleSettledEvent, sale)

	return sale, nil
}

// disburse pays the treasury, the royalty receiver and the seller from the
// buyer's funds. A royalty receiver equal to the seller is paid in a single
// merged transfer.
func (e engine) disburse(sale Sale) error {
	if sale.PlatformAmount.Sign() == 1 {
		if err := e.bank.Transfer(sale.Buyer, sale.Treasury, sale.PlatformAmount); err != nil {
			return e.payoutError(sale, "treasury", err)
		}
	}

	sellerAmount := sale.SellerAmount
	if sale.RoyaltyAmount.Sign() == 1 {
		if sale.RoyaltyReceiver == sale.Listing.Seller {
			sellerAmount = new(big.Int).Add(sellerAmount, sale.RoyaltyAmount)
		} else if err := e.bank.Transfer(sale.Buyer, sale.RoyaltyReceiver, sale.RoyaltyAmount); err != nil {
			return e.payoutError(sale, "royalty", err)
		}
	}

	if err := e.bank.Transfer(sale.Buyer, sale.Listing.Seller, sellerAmount); err != nil {
		return e.payoutError(sale, "seller", err)
	}

	return nil
}

func (e engine) payoutError(sale Sale, leg string, err error) error {
	// The listing is already finalized at this point; a failed payout is an
	// operational incident, not a rollback.
	zap.L().With(
		zap.Uint64("listingId", sale.Listing.Id),
		zap.String("leg", leg),
		zap.Error(err),
	).Error("Settlement: Payout failed after commit")

	return err
}

// splitProceeds computes the three-way split in integer basis points. The
// platform and royalty cuts truncate toward zero; the remainder accrues to
// the seller so the three amounts always sum to the amount paid. The two
// rates come from independent sources and may combine to more than the
// denominator, in which case the split fails rather than debit the seller.
func splitProceeds(amountPaid *big.Int, platformFeeBps uint, royalty registry.Royalty) (platformAmount, royaltyAmount, sellerAmount *big.Int, err error) {
	denominator := big.NewInt(int64(entity.FeeDenominator))

	platformAmount = new(big.Int).Mul(amountPaid, big.NewInt(int64(platformFeeBps)))
	platformAmount.Div(platformAmount, denominator)

	royaltyAmount = big.NewInt(0)
	if royalty.Payable() {
		royaltyAmount = new(big.Int).Mul(amountPaid, big.NewInt(int64(royalty.Bps)))
		royaltyAmount.Div(royaltyAmount, denominator)
	}

	sellerAmount = new(big.Int).Sub(amountPaid, platformAmount)
	sellerAmount.Sub(sellerAmount, royaltyAmount)

	if sellerAmount.Sign() == -1 {
		return nil, nil, nil, ErrFeesExceedPrice
	}

	return platformAmount, royaltyAmount, sellerAmount, nil
}
