package marketplace

import (
	"math/big"
	"sync"
	"time"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/event"
	"github.com/creatorhub/marketplace-engine/internal/registry"
	"go.uber.org/zap"
)

// Ledger owns every Listing record. All mutations are serialized behind a
// single lock; finalized listings are retained for audit and never
// reactivated.
type Ledger interface {
	CreateListing(assetContract string, tokenId uint64, seller string, price *big.Int) (uint64, error)
	CancelListing(listingId uint64, caller string) error
	GetListing(listingId uint64) (entity.Listing, error)
	ActiveListings() []entity.Listing

	// Finalize marks a listing inactive. The commit callback runs with the
	// listing still active and the ledger locked; the mutation is only
	// committed if the callback returns nil. This is the transaction boundary
	// for Buy: the asset transfer happens inside the callback so a refused
	// transfer leaves the listing active.
	Finalize(listingId uint64, commit func(listing entity.Listing) error) (entity.Listing, error)
}

type ledger struct {
	mu       sync.Mutex
	registry registry.AssetRegistry
	operator string
	nextId   uint64
	listings map[uint64]entity.Listing
	active   map[string]uint64
}

func NewLedger(assetRegistry registry.AssetRegistry, operator string) Ledger {
	return &ledger{
		registry: assetRegistry,
		operator: operator,
		listings: map[uint64]entity.Listing{},
		active:   map[string]uint64{},
	}
}

func (l *ledger) CreateListing(assetContract string, tokenId uint64, seller string, price *big.Int) (uint64, error) {
	if price == nil || price.Sign() != 1 {
		return 0, ErrPriceZero
	}

	owner, err := l.registry.OwnerOf(assetContract, tokenId)
	if err != nil {
		zap.L().With(zap.String("contract", assetContract), zap.Uint64("tokenId", tokenId), zap.Error(err)).Error("Ledger: Failed to get asset owner")
		return 0, err
	}
	if owner != seller {
		return 0, ErrNotOwner
	}

	approved, err := l.registry.IsApproved(l.operator, assetContract, tokenId)
	if err != nil {
		zap.L().With(zap.String("contract", assetContract), zap.Uint64("tokenId", tokenId), zap.Error(err)).Error("Ledger: Failed to get asset approval")
		return 0, err
	}
	if !approved {
		return 0, ErrNotApproved
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	assetKey := entity.CreateAssetKey(assetContract, tokenId)
	if _, exists := l.active[assetKey]; exists {
		return 0, ErrAlreadyListed
	}

	l.nextId++
	listing := entity.Listing{
		Id:            l.nextId,
		AssetContract: assetContract,
		TokenId:       tokenId,
		Seller:        seller,
		Price:         price.String(),
		Active:        true,
		CreatedAt:     uint64(time.Now().Unix()),
	}

	l.listings[listing.Id] = listing
	l.active[assetKey] = listing.Id

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("contract", assetContract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", seller),
		zap.String("price", listing.Price),
	).Info("Ledger: Listing created")

	event.EmitEvent(event.ListingCreatedEvent, listing)

	return listing.Id, nil
}

func (l *ledger) CancelListing(listingId uint64, caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	listing, exists := l.listings[listingId]
	if !exists || !listing.Active {
		return ErrNotActive
	}
	if listing.Seller != caller {
		return ErrNotSeller
	}

	listing.Active = false
	l.listings[listingId] = listing
	delete(l.active, listing.AssetKey())

	zap.L().With(
		zap.Uint64("listingId", listingId),
		zap.String("contract", listing.AssetContract),
		zap.Uint64("tokenId", listing.TokenId),
	).Info("Ledger: Listing cancelled")

	event.EmitEvent(event.ListingCancelledEvent, listing)

	return nil
}

func (l *ledger) GetListing(listingId uint64) (entity.Listing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	listing, exists := l.listings[listingId]
	if !exists {
		return entity.Listing{}, ErrListingNotFound
	}

	return listing, nil
}

func (l *ledger) ActiveListings() []entity.Listing {
	l.mu.Lock()
	defer l.mu.Unlock()

	listings := make([]entity.Listing, 0, len(l.active))
	for _, id := range l.active {
		listings = append(listings, l.listings[id])
	}

	return listings
}

func (l *ledger) Finalize(listingId uint64, commit func(listing entity.Listing) error) (entity.Listing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	listing, exists := l.listings[listingId]
	if !exists {
		return entity.Listing{}, ErrListingNotFound
	}
	if !listing.Active {
		return entity.Listing{}, ErrNotActive
	}

	if err := commit(listing); err != nil {
		return entity.Listing{}, err
	}

	listing.Active = false
	l.listings[listingId] = listing
	delete(l.active, listing.AssetKey())

	return listing, nil
}
