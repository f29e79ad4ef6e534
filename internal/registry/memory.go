package registry

import (
	"fmt"
	"sync"
)

// MemoryRegistry is an in-process AssetRegistry used by tests and local
// development. Transfers can be forced to fail to exercise settlement
// rollback.
type MemoryRegistry struct {
	mu        sync.Mutex
	owners    map[string]string
	approvals map[string]map[string]bool
	royalties map[string]Royalty

	failTransfers bool
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		owners:    map[string]string{},
		approvals: map[string]map[string]bool{},
		royalties: map[string]Royalty{},
	}
}

func assetKey(contract string, tokenId uint64) string {
	return fmt.Sprintf("%s-%d", contract, tokenId)
}

func (r *MemoryRegistry) Mint(contract string, tokenId uint64, owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.owners[assetKey(contract, tokenId)] = owner
}

func (r *MemoryRegistry) Approve(contract string, tokenId uint64, operator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assetKey(contract, tokenId)
	if r.approvals[key] == nil {
		r.approvals[key] = map[string]bool{}
	}
	r.approvals[key][operator] = true
}

func (r *MemoryRegistry) SetRoyalty(contract string, tokenId uint64, receiver string, bps uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.royalties[assetKey(contract, tokenId)] = Royalty{Receiver: receiver, Bps: bps}
}

// FailTransfers makes every subsequent Transfer return ErrTransferDenied.
func (r *MemoryRegistry) FailTransfers(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failTransfers = fail
}

func (r *MemoryRegistry) OwnerOf(contract string, tokenId uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[assetKey(contract, tokenId)]
	if !exists {
		return "", ErrAssetNotFound
	}

	return owner, nil
}

func (r *MemoryRegistry) IsApproved(operator string, contract string, tokenId uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[assetKey(contract, tokenId)]; !exists {
		return false, ErrAssetNotFound
	}

	return r.approvals[assetKey(contract, tokenId)][operator], nil
}

func (r *MemoryRegistry) RoyaltyOf(contract string, tokenId uint64) (Royalty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[assetKey(contract, tokenId)]; !exists {
		return Royalty{}, ErrAssetNotFound
	}

	return r.royalties[assetKey(contract, tokenId)], nil
}

func (r *MemoryRegistry) Transfer(contract string, tokenId uint64, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failTransfers {
		return ErrTransferDenied
	}

	key := assetKey(contract, tokenId)
	owner, exists := r.owners[key]
	if !exists {
		return ErrAssetNotFound
	}
	if owner != from {
		return ErrTransferDenied
	}

	r.owners[key] = to
	delete(r.approvals, key)

	return nil
}
