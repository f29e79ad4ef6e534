package repository

import (
	"encoding/json"
	"errors"

	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrActionNotFound = errors.New("listing action not found")
)

type ListingActionRepository interface {
	GetActions(contract string, tokenId uint64) ([]entity.ListingAction, error)
	GetSales(size int) ([]entity.ListingAction, error)
}

type listingActionRepository struct {
	elastic elastic_search.Index
}

func NewListingActionRepository(elastic elastic_search.Index) ListingActionRepository {
	return listingActionRepository{elastic}
}

func (r listingActionRepository) GetActions(contract string, tokenId uint64) ([]entity.ListingAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("assetContract.keyword", contract),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingActionIndex.Get()).
		Query(query).
		Sort("createdAt", false).
		Size(100).
		Do(defaultCtx())

	return r.findMany(result, err)
}

func (r listingActionRepository) GetSales(size int) ([]entity.ListingAction, error) {
	query := elastic.NewTermQuery("action.keyword", string(entity.SaleAction))

	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingActionIndex.Get()).
		Query(query).
		Sort("createdAt", false).
		Size(size).
		Do(defaultCtx())

	return r.findMany(result, err)
}

func (r listingActionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.ListingAction, error) {
	if err != nil {
		return nil, err
	}

	actions := make([]entity.ListingAction, 0)
	for _, hit := range results.Hits.Hits {
		var action entity.ListingAction
		if err := json.Unmarshal(hit.Source, &action); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}
