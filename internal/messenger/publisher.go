package messenger

import (
	"encoding/json"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/marketplace"
	"go.uber.org/zap"
)

// Listing is the queue payload for listing lifecycle notifications.
type Listing struct {
	ListingId     uint64 `json:"listingId"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Seller        string `json:"seller"`
	Price         string `json:"price"`
	CreatedAt     uint64 `json:"createdAt"`
}

// Sale is the queue payload for settlement notifications.
type Sale struct {
	ListingId       uint64 `json:"listingId"`
	AssetContract   string `json:"assetContract"`
	TokenId         uint64 `json:"tokenId"`
	Buyer           string `json:"buyer"`
	Seller          string `json:"seller"`
	Cost            string `json:"cost"`
	Fee             string `json:"fee"`
	Royalty         string `json:"royalty"`
	RoyaltyReceiver string `json:"royaltyReceiver"`
	CreatedAt       uint64 `json:"createdAt"`
}

// Publisher fans marketplace events out to the queues.
type Publisher struct {
	messageService MessageService
}

func NewPublisher(messageService MessageService) Publisher {
	return Publisher{messageService}
}

func (p Publisher) TriggerListingNotification(msg interface{}) {
	listing, ok := msg.(entity.Listing)
	if !ok {
		zap.L().Error("Publisher: Invalid listing payload")
		return
	}

	p.publish(ListingCreated, Listing{
		ListingId:     listing.Id,
		AssetContract: listing.AssetContract,
		TokenId:       listing.TokenId,
		Seller:        listing.Seller,
		Price:         listing.Price,
		CreatedAt:     listing.CreatedAt,
	})
}

func (p Publisher) TriggerDelistNotification(msg interface{}) {
	listing, ok := msg.(entity.Listing)
	if !ok {
		zap.L().Error("Publisher: Invalid listing payload")
		return
	}

	p.publish(ListingDelisted, Listing{
		ListingId:     listing.Id,
		AssetContract: listing.AssetContract,
		TokenId:       listing.TokenId,
		Seller:        listing.Seller,
		Price:         listing.Price,
		CreatedAt:     listing.CreatedAt,
	})
}

func (p Publisher) TriggerSaleNotification(msg interface{}) {
	sale, ok := msg.(marketplace.Sale)
	if !ok {
		zap.L().Error("Publisher: Invalid sale payload")
		return
	}

	p.publish(SaleSettled, Sale{
		ListingId:       sale.Listing.Id,
		AssetContract:   sale.Listing.AssetContract,
		TokenId:         sale.Listing.TokenId,
		Buyer:           sale.Buyer,
		Seller:          sale.Listing.Seller,
		Cost:            sale.Listing.Price,
		Fee:             sale.PlatformAmount.String(),
		Royalty:         sale.RoyaltyAmount.String(),
		RoyaltyReceiver: sale.RoyaltyReceiver,
		CreatedAt:       sale.Listing.CreatedAt,
	})
}

func (p Publisher) publish(item Item, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Publisher: Failed to encode payload")
		return
	}

	if err := p.messageService.SendMessage(item, body); err != nil {
		zap.L().With(zap.Error(err), zap.String("item", string(item))).Error("Publisher: Failed to publish")
	}
}
