package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(listingId uint64) (entity.Listing, error)
	GetActiveListings(size int) ([]entity.Listing, error)
}

type listingRepository struct {
	elastic elastic_search.Index
}

func NewListingRepository(elastic elastic_search.Index) ListingRepository {
	return listingRepository{elastic}
}

func (r listingRepository) GetListing(listingId uint64) (entity.Listing, error) {
	query := elastic.NewTermQuery("id", listingId)

	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(query).
		Size(1).
		Do(defaultCtx())

	return r.findOne(result, err)
}

func (r listingRepository) GetActiveListings(size int) ([]entity.Listing, error) {
	query := elastic.NewTermQuery("active", true)

	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(query).
		Sort("createdAt", false).
		Size(size).
		Do(defaultCtx())

	if err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0)
	for _, hit := range result.Hits.Hits {
		var listing entity.Listing
		if err := json.Unmarshal(hit.Source, &listing); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (r listingRepository) findOne(results *elastic.SearchResult, err error) (entity.Listing, error) {
	if err != nil {
		return entity.Listing{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.Listing{}, ErrListingNotFound
	}

	var listing entity.Listing
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &listing)

	return listing, err
}

func defaultCtx() context.Context {
	return context.Background()
}
