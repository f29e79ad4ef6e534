package audit

import (
	"testing"
	"time"

	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/messenger"
	"github.com/olivere/elastic/v7"
	"github.com/patrickmn/go-cache"
)

type fakeIndex struct {
	requests []elastic_search.Request
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }
func (f *fakeIndex) InstallMappings()           {}

func (f *fakeIndex) AddIndexRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.requests = append(f.requests, elastic_search.Request{Index: index, Entity: e, Action: action})
}

func (f *fakeIndex) GetRequests() []elastic_search.Request { return f.requests }
func (f *fakeIndex) ClearRequests()                        { f.requests = nil }
func (f *fakeIndex) BatchPersist() bool                    { return false }
func (f *fakeIndex) Persist() int                          { return len(f.requests) }

func newTestIndexer() (Indexer, *fakeIndex) {
	idx := &fakeIndex{}
	return NewIndexer(idx, cache.New(5*time.Minute, 10*time.Minute)), idx
}

func (f *fakeIndex) listingDoc(t *testing.T) entity.Listing {
	t.Helper()

	for _, req := range f.requests {
		if listing, ok := req.Entity.(entity.Listing); ok {
			return listing
		}
	}
	t.Fatal("no listing document indexed")

	return entity.Listing{}
}

func TestIndexListingCarriesCreatedAt(t *testing.T) {
	indexer, idx := newTestIndexer()

	indexer.IndexListing(messenger.Listing{
		ListingId:     1,
		AssetContract: "0xnft",
		TokenId:       7,
		Seller:        "0xseller",
		Price:         "1000",
		CreatedAt:     1756700000,
	})

	if len(idx.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(idx.requests))
	}

	listing := idx.listingDoc(t)
	if listing.CreatedAt != 1756700000 {
		t.Errorf("listing createdAt = %d, want 1756700000", listing.CreatedAt)
	}
	if !listing.Active {
		t.Error("listing document should be active")
	}
}

func TestIndexSaleMarksListingInactive(t *testing.T) {
	indexer, idx := newTestIndexer()

	indexer.IndexSale(messenger.Sale{
		ListingId:     3,
		AssetContract: "0xnft",
		TokenId:       7,
		Buyer:         "0xbuyer",
		Seller:        "0xseller",
		Cost:          "1000",
		Fee:           "25",
		Royalty:       "0",
		CreatedAt:     1756700000,
	})

	listing := idx.listingDoc(t)
	if listing.Active {
		t.Error("sold listing document should be inactive")
	}
	if listing.CreatedAt != 1756700000 {
		t.Errorf("listing createdAt = %d, want 1756700000", listing.CreatedAt)
	}
}

func TestIndexListingSkipsRedelivery(t *testing.T) {
	indexer, idx := newTestIndexer()

	payload := messenger.Listing{ListingId: 1, AssetContract: "0xnft", TokenId: 7, Seller: "0xseller", Price: "1000"}
	indexer.IndexListing(payload)
	indexer.IndexListing(payload)

	if len(idx.requests) != 2 {
		t.Errorf("requests = %d, want 2 (redelivered message must not be indexed twice)", len(idx.requests))
	}
}
