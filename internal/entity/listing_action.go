package entity

import (
	"crypto/md5"
	"fmt"
)

// ListingAction is the audit record for everything that happens to a listing.
// One document per action, addressed by a deterministic slug.
type ListingAction struct {
	ListingId     uint64     `json:"listingId"`
	AssetContract string     `json:"assetContract"`
	TokenId       uint64     `json:"tokenId"`
	Action        ActionType `json:"action"`
	From          string     `json:"from"`
	To            string     `json:"to"`
	Cost          string     `json:"cost"`
	Fee           string     `json:"fee"`
	Royalty       string     `json:"royalty"`
	CreatedAt     uint64     `json:"createdAt"`
}

type ActionType string

const (
	ListedAction   ActionType = "listed"
	DelistedAction ActionType = "delisted"
	SaleAction     ActionType = "sale"
)

func (a ListingAction) Slug() string {
	return CreateListingActionSlug(a.ListingId, a.AssetContract, a.TokenId, string(a.Action))
}

func CreateListingActionSlug(listingId uint64, contract string, tokenId uint64, action string) string {
	data := []byte(fmt.Sprintf("listingaction-%d-%s-%d-%s", listingId, contract, tokenId, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
