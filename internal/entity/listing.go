package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Listing is a single sale offer held by the ledger. Records are retained
// after finalization; Active only ever transitions true to false.
type Listing struct {
	Id            uint64 `json:"id"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Seller        string `json:"seller"`
	Price         string `json:"price"`
	Active        bool   `json:"active"`
	CreatedAt     uint64 `json:"createdAt"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Id)
}

func CreateListingSlug(listingId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", listingId))
}

func (l Listing) AssetKey() string {
	return CreateAssetKey(l.AssetContract, l.TokenId)
}

func CreateAssetKey(contract string, tokenId uint64) string {
	return fmt.Sprintf("%s-%d", contract, tokenId)
}
