package elastic_search

import (
	"fmt"

	"github.com/creatorhub/marketplace-engine/internal/config"
)

type Indices string

var (
	ListingIndex       Indices = "listing"
	ListingActionIndex Indices = "listingaction"
	ErrorIndex         Indices = "error"
)

// Prefixes the network and index name and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
