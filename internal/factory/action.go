package factory

import (
	"time"

	"github.com/creatorhub/marketplace-engine/internal/entity"
)

func CreateListedAction(listingId uint64, contract string, tokenId uint64, seller, cost string) entity.ListingAction {
	return entity.ListingAction{
		ListingId:     listingId,
		AssetContract: contract,
		TokenId:       tokenId,
		Action:        entity.ListedAction,
		From:          seller,
		Cost:          cost,
		CreatedAt:     uint64(time.Now().Unix()),
	}
}

func CreateDelistedAction(listingId uint64, contract string, tokenId uint64, seller string) entity.ListingAction {
	return entity.ListingAction{
		ListingId:     listingId,
		AssetContract: contract,
		TokenId:       tokenId,
		Action:        entity.DelistedAction,
		From:          seller,
		CreatedAt:     uint64(time.Now().Unix()),
	}
}

func CreateSaleAction(listingId uint64, contract string, tokenId uint64, buyer, seller, cost, fee, royalty string) entity.ListingAction {
	return entity.ListingAction{
		ListingId:     listingId,
		AssetContract: contract,
		TokenId:       tokenId,
		Action:        entity.SaleAction,
		From:          seller,
		To:            buyer,
		Cost:          cost,
		Fee:           fee,
		Royalty:       royalty,
		CreatedAt:     uint64(time.Now().Unix()),
	}
}
