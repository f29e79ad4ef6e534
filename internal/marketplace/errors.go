package marketplace

import "errors"

var (
	ErrPriceZero       = errors.New("listing price must be greater than zero")
	ErrNotOwner        = errors.New("seller is not the asset owner")
	ErrNotApproved     = errors.New("marketplace is not approved to transfer the asset")
	ErrAlreadyListed   = errors.New("asset already has an active listing")
	ErrNotSeller       = errors.New("caller is not the listing seller")
	ErrListingNotFound = errors.New("listing not found")
	ErrNotActive       = errors.New("listing is not active")
	ErrBadPrice        = errors.New("payment does not match the listing price")
	ErrInvalidFee      = errors.New("platform fee cannot exceed 10000 bps")
	ErrFeesExceedPrice = errors.New("combined fees exceed the sale amount")
	ErrTransferFailed  = errors.New("asset transfer failed")
)
