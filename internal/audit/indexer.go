package audit

import (
	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/factory"
	"github.com/creatorhub/marketplace-engine/internal/messenger"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Indexer writes the queryable audit trail: one action document per listing
// event and an up-to-date listing document per listing id. It is fed from
// the settlement queues, never from the ledger directly.
type Indexer interface {
	IndexListing(listing messenger.Listing)
	IndexDelisting(listing messenger.Listing)
	IndexSale(sale messenger.Sale)
}

type indexer struct {
	elastic elastic_search.Index
	seen    *cache.Cache
}

func NewIndexer(elastic elastic_search.Index, seen *cache.Cache) Indexer {
	return indexer{elastic, seen}
}

// seenBefore guards against queue redelivery. Action slugs are
// deterministic, so a redelivered message maps to a slug already cached.
func (i indexer) seenBefore(action entity.ListingAction) bool {
	if _, exists := i.seen.Get(action.Slug()); exists {
		return true
	}
	i.seen.Set(action.Slug(), true, cache.DefaultExpiration)

	return false
}

func (i indexer) IndexListing(listing messenger.Listing) {
	action := factory.CreateListedAction(listing.ListingId, listing.AssetContract, listing.TokenId, listing.Seller, listing.Price)
	if i.seenBefore(action) {
		return
	}

	zap.L().With(
		zap.Uint64("listingId", listing.ListingId),
		zap.String("contract", listing.AssetContract),
		zap.Uint64("tokenId", listing.TokenId),
		zap.String("price", listing.Price),
	).Info("Audit: Listing")

	i.elastic.AddIndexRequest(elastic_search.ListingActionIndex.Get(), action, elastic_search.ListingCreate)
	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		Id:            listing.ListingId,
		AssetContract: listing.AssetContract,
		TokenId:       listing.TokenId,
		Seller:        listing.Seller,
		Price:         listing.Price,
		Active:        true,
		CreatedAt:     listing.CreatedAt,
	}, elastic_search.ListingCreate)
}

func (i indexer) IndexDelisting(listing messenger.Listing) {
	action := factory.CreateDelistedAction(listing.ListingId, listing.AssetContract, listing.TokenId, listing.Seller)
	if i.seenBefore(action) {
		return
	}

	zap.L().With(
		zap.Uint64("listingId", listing.ListingId),
		zap.String("contract", listing.AssetContract),
		zap.Uint64("tokenId", listing.TokenId),
	).Info("Audit: Delisting")

	i.elastic.AddIndexRequest(elastic_search.ListingActionIndex.Get(), action, elastic_search.ListingDelist)
	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		Id:            listing.ListingId,
		AssetContract: listing.AssetContract,
		TokenId:       listing.TokenId,
		Seller:        listing.Seller,
		Price:         listing.Price,
		Active:        false,
		CreatedAt:     listing.CreatedAt,
	}, elastic_search.ListingDelist)
}

func (i indexer) IndexSale(sale messenger.Sale) {
	action := factory.CreateSaleAction(sale.ListingId, sale.AssetContract, sale.TokenId, sale.Buyer, sale.Seller, sale.Cost, sale.Fee, sale.Royalty)
	if i.seenBefore(action) {
		return
	}

	zap.L().With(
		zap.Uint64("listingId", sale.ListingId),
		zap.String("contract", sale.AssetContract),
		zap.Uint64("tokenId", sale.TokenId),
		zap.String("from", sale.Seller),
		zap.String("to", sale.Buyer),
		zap.String("cost", sale.Cost),
		zap.String("fee", sale.Fee),
		zap.String("royalty", sale.Royalty),
	).Info("Audit: Sale")

	i.elastic.AddIndexRequest(elastic_search.ListingActionIndex.Get(), action, elastic_search.ListingSale)
	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		Id:            sale.ListingId,
		AssetContract: sale.AssetContract,
		TokenId:       sale.TokenId,
		Seller:        sale.Seller,
		Price:         sale.Cost,
		Active:        false,
		CreatedAt:     sale.CreatedAt,
	}, elastic_search.ListingSale)
}
