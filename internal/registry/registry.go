package registry

import "errors"

var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrTransferDenied = errors.New("asset transfer denied")
)

// AssetRegistry is the external capability that owns asset identity,
// ownership, approval and royalty configuration. The engine never talks to a
// chain directly; any backend implementing this interface can sit behind it.
type AssetRegistry interface {
	OwnerOf(contract string, tokenId uint64) (string, error)
	IsApproved(operator string, contract string, tokenId uint64) (bool, error)
	RoyaltyOf(contract string, tokenId uint64) (Royalty, error)
	Transfer(contract string, tokenId uint64, from, to string) error
}

// Royalty is the per-asset royalty configuration. An empty receiver or a zero
// rate means no royalty is due on sale.
type Royalty struct {
	Receiver string `json:"receiver"`
	Bps      uint   `json:"bps"`
}

func (r Royalty) Payable() bool {
	return r.Receiver != "" && r.Bps > 0
}
