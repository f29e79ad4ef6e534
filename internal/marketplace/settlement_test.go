package marketplace

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/creatorhub/marketplace-engine/internal/funds"
	"github.com/creatorhub/marketplace-engine/internal/registry"
)

const (
	marketAddr   = "0x1000000000000000000000000000000000000001"
	treasuryAddr = "0x2000000000000000000000000000000000000002"
	sellerAddr   = "0x3000000000000000000000000000000000000003"
	buyerAddr    = "0x4000000000000000000000000000000000000004"
	creatorAddr  = "0x5000000000000000000000000000000000000005"
	nftContract  = "0x6000000000000000000000000000000000000006"
)

type testMarket struct {
	registry *registry.MemoryRegistry
	bank     *funds.MemoryBank
	platform PlatformService
	ledger   Ledger
	engine   Engine
}

func newTestMarket() testMarket {
	assetRegistry := registry.NewMemoryRegistry()
	bank := funds.NewMemoryBank()
	platform := NewPlatformService(treasuryAddr, 250)
	ledger := NewLedger(assetRegistry, marketAddr)

	return testMarket{
		registry: assetRegistry,
		bank:     bank,
		platform: platform,
		ledger:   ledger,
		engine:   NewEngine(ledger, assetRegistry, platform, bank),
	}
}

func (m testMarket) mintAndList(t *testing.T, tokenId uint64, price *big.Int) uint64 {
	t.Helper()

	m.registry.Mint(nftContract, tokenId, sellerAddr)
	m.registry.Approve(nftContract, tokenId, marketAddr)

	listingId, err := m.ledger.CreateListing(nftContract, tokenId, sellerAddr, price)
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}

	return listingId
}

func oneEth() *big.Int {
	return big.NewInt(1000000000000000000)
}

func TestBuySplitsFundsWithoutRoyalty(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	market.bank.Deposit(buyerAddr, oneEth())

	sale, err := market.engine.Buy(listingId, buyerAddr, oneEth())
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if sale.NewOwner != buyerAddr {
		t.Errorf("new owner = %s, want %s", sale.NewOwner, buyerAddr)
	}

	owner, _ := market.registry.OwnerOf(nftContract, 1)
	if owner != buyerAddr {
		t.Errorf("registry owner = %s, want %s", owner, buyerAddr)
	}

	// 2.5% platform fee on 1 ETH
	wantSeller := big.NewInt(975000000000000000)
	wantTreasury := big.NewInt(25000000000000000)

	if market.bank.Balance(sellerAddr).Cmp(wantSeller) != 0 {
		t.Errorf("seller balance = %s, want %s", market.bank.Balance(sellerAddr), wantSeller)
	}
	if market.bank.Balance(treasuryAddr).Cmp(wantTreasury) != 0 {
		t.Errorf("treasury balance = %s, want %s", market.bank.Balance(treasuryAddr), wantTreasury)
	}
	if market.bank.Balance(buyerAddr).Sign() != 0 {
		t.Errorf("buyer balance = %s, want 0", market.bank.Balance(buyerAddr))
	}
	if sale.RoyaltyAmount.Sign() != 0 {
		t.Errorf("royalty amount = %s, want 0", sale.RoyaltyAmount)
	}
}

func TestBuyMergesRoyaltyPaidToSeller(t *testing.T) {
	market := newTestMarket()
	market.registry.Mint(nftContract, 1, sellerAddr)
	market.registry.Approve(nftContract, 1, marketAddr)
	market.registry.SetRoyalty(nftContract, 1, sellerAddr, 500)

	listingId, err := market.ledger.CreateListing(nftContract, 1, sellerAddr, oneEth())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	market.bank.Deposit(buyerAddr, oneEth())

	sale, err := market.engine.Buy(listingId, buyerAddr, oneEth())
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	// Seller share 92.5% plus 5% royalty merged into one payout
	if sale.SellerAmount.Cmp(big.NewInt(925000000000000000)) != 0 {
		t.Errorf("seller amount = %s, want 925000000000000000", sale.SellerAmount)
	}
	if sale.RoyaltyAmount.Cmp(big.NewInt(50000000000000000)) != 0 {
		t.Errorf("royalty amount = %s, want 50000000000000000", sale.RoyaltyAmount)
	}

	wantSeller := big.NewInt(975000000000000000)
	if market.bank.Balance(sellerAddr).Cmp(wantSeller) != 0 {
		t.Errorf("seller balance = %s, want %s", market.bank.Balance(sellerAddr), wantSeller)
	}
	if market.bank.Balance(treasuryAddr).Cmp(big.NewInt(25000000000000000)) != 0 {
		t.Errorf("treasury balance = %s, want 25000000000000000", market.bank.Balance(treasuryAddr))
	}
}

func TestBuyPaysThirdPartyRoyaltyReceiver(t *testing.T) {
	market := newTestMarket()
	market.registry.Mint(nftContract, 1, sellerAddr)
	market.registry.Approve(nftContract, 1, marketAddr)
	market.registry.SetRoyalty(nftContract, 1, creatorAddr, 1000)

	listingId, err := market.ledger.CreateListing(nftContract, 1, sellerAddr, oneEth())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	market.bank.Deposit(buyerAddr, oneEth())

	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if market.bank.Balance(creatorAddr).Cmp(big.NewInt(100000000000000000)) != 0 {
		t.Errorf("creator balance = %s, want 100000000000000000", market.bank.Balance(creatorAddr))
	}
	if market.bank.Balance(sellerAddr).Cmp(big.NewInt(875000000000000000)) != 0 {
		t.Errorf("seller balance = %s, want 875000000000000000", market.bank.Balance(sellerAddr))
	}
	if market.bank.Balance(treasuryAddr).Cmp(big.NewInt(25000000000000000)) != 0 {
		t.Errorf("treasury balance = %s, want 25000000000000000", market.bank.Balance(treasuryAddr))
	}
}

func TestBuySkipsRoyaltyWithoutReceiver(t *testing.T) {
	market := newTestMarket()
	market.registry.Mint(nftContract, 1, sellerAddr)
	market.registry.Approve(nftContract, 1, marketAddr)
	market.registry.SetRoyalty(nftContract, 1, "", 500)

	listingId, err := market.ledger.CreateListing(nftContract, 1, sellerAddr, oneEth())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	market.bank.Deposit(buyerAddr, oneEth())

	sale, err := market.engine.Buy(listingId, buyerAddr, oneEth())
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if sale.RoyaltyAmount.Sign() != 0 {
		t.Errorf("royalty amount = %s, want 0", sale.RoyaltyAmount)
	}
	if market.bank.Balance(sellerAddr).Cmp(big.NewInt(975000000000000000)) != 0 {
		t.Errorf("seller balance = %s, want 975000000000000000", market.bank.Balance(sellerAddr))
	}
}

func TestBuyBadPriceLeavesStateUntouched(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	market.bank.Deposit(buyerAddr, oneEth())

	for _, amount := range []*big.Int{
		big.NewInt(500000000000000000),
		new(big.Int).Add(oneEth(), big.NewInt(1)),
		nil,
	} {
		if _, err := market.engine.Buy(listingId, buyerAddr, amount); !errors.Is(err, ErrBadPrice) {
			t.Errorf("Buy(%v) error = %v, want ErrBadPrice", amount, err)
		}
	}

	owner, _ := market.registry.OwnerOf(nftContract, 1)
	if owner != sellerAddr {
		t.Errorf("owner = %s, want %s", owner, sellerAddr)
	}
	if market.bank.Balance(buyerAddr).Cmp(oneEth()) != 0 {
		t.Errorf("buyer balance = %s, want %s", market.bank.Balance(buyerAddr), oneEth())
	}

	listing, err := market.ledger.GetListing(listingId)
	if err != nil || !listing.Active {
		t.Errorf("listing should still be active, got %+v err %v", listing, err)
	}
}

func TestBuyTwiceFailsSecondPurchase(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	market.bank.Deposit(buyerAddr, new(big.Int).Mul(oneEth(), big.NewInt(2)))

	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); err != nil {
		t.Fatalf("first Buy failed: %v", err)
	}

	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); !errors.Is(err, ErrNotActive) {
		t.Errorf("second Buy error = %v, want ErrNotActive", err)
	}
}

func TestBuyUnknownListing(t *testing.T) {
	market := newTestMarket()

	if _, err := market.engine.Buy(42, buyerAddr, oneEth()); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("Buy error = %v, want ErrListingNotFound", err)
	}
}

func TestBuyTransferRefusedKeepsListingActive(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	market.bank.Deposit(buyerAddr, oneEth())

	market.registry.FailTransfers(true)

	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("Buy error = %v, want ErrTransferFailed", err)
	}

	listing, err := market.ledger.GetListing(listingId)
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if !listing.Active {
		t.Error("listing should remain active after refused transfer")
	}

	owner, _ := market.registry.OwnerOf(nftContract, 1)
	if owner != sellerAddr {
		t.Errorf("owner = %s, want %s", owner, sellerAddr)
	}
	if market.bank.Balance(buyerAddr).Cmp(oneEth()) != 0 {
		t.Errorf("buyer balance = %s, want %s", market.bank.Balance(buyerAddr), oneEth())
	}

	// The caller can retry once the registry cooperates again
	market.registry.FailTransfers(false)
	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); err != nil {
		t.Fatalf("retry Buy failed: %v", err)
	}
}

func TestBuyUsesFeeAtSaleTime(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	market.bank.Deposit(buyerAddr, oneEth())

	if err := market.platform.Set(treasuryAddr, 1000); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	sale, err := market.engine.Buy(listingId, buyerAddr, oneEth())
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if sale.PlatformAmount.Cmp(big.NewInt(100000000000000000)) != 0 {
		t.Errorf("platform amount = %s, want 100000000000000000", sale.PlatformAmount)
	}
}

func TestBuyFailsWhenCombinedFeesExceedPrice(t *testing.T) {
	market := newTestMarket()
	market.registry.Mint(nftContract, 1, sellerAddr)
	market.registry.Approve(nftContract, 1, marketAddr)
	market.registry.SetRoyalty(nftContract, 1, creatorAddr, 500)

	listingId, err := market.ledger.CreateListing(nftContract, 1, sellerAddr, oneEth())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	market.bank.Deposit(buyerAddr, oneEth())

	// A full platform fee is legal on its own; with the royalty on top the
	// seller share would go negative
	if err := market.platform.Set(treasuryAddr, 10000); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := market.engine.Buy(listingId, buyerAddr, oneEth()); !errors.Is(err, ErrFeesExceedPrice) {
		t.Fatalf("Buy error = %v, want ErrFeesExceedPrice", err)
	}

	listing, err := market.ledger.GetListing(listingId)
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if !listing.Active {
		t.Error("listing should remain active after rejected purchase")
	}

	owner, _ := market.registry.OwnerOf(nftContract, 1)
	if owner != sellerAddr {
		t.Errorf("owner = %s, want %s", owner, sellerAddr)
	}
	if market.bank.Balance(buyerAddr).Cmp(oneEth()) != 0 {
		t.Errorf("buyer balance = %s, want %s", market.bank.Balance(buyerAddr), oneEth())
	}
	if market.bank.Balance(sellerAddr).Sign() != 0 {
		t.Errorf("seller balance = %s, want 0", market.bank.Balance(sellerAddr))
	}
	if market.bank.Balance(treasuryAddr).Sign() != 0 {
		t.Errorf("treasury balance = %s, want 0", market.bank.Balance(treasuryAddr))
	}
}

func TestBuyPayoutFailureDoesNotReopenListing(t *testing.T) {
	market := newTestMarket()
	listingId := market.mintAndList(t, 1, oneEth())
	// buyer has no funds; the payout fails after the asset transfer committed

	_, err := market.engine.Buy(listingId, buyerAddr, oneEth())
	if !errors.Is(err, funds.ErrInsufficientFunds) {
		t.Fatalf("Buy error = %v, want ErrInsufficientFunds", err)
	}

	listing, err := market.ledger.GetListing(listingId)
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if listing.Active {
		t.Error("a finalized listing must never be reactivated")
	}
}

func TestSplitProceedsAlwaysSumsExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		amount := new(big.Int).SetUint64(rng.Uint64() % 10000000000000000000)
		platformBps := uint(rng.Intn(10001))
		royaltyBps := uint(rng.Intn(10001))

		platformAmount, royaltyAmount, sellerAmount, err := splitProceeds(amount, platformBps, registry.Royalty{Receiver: creatorAddr, Bps: royaltyBps})
		if err != nil {
			if !errors.Is(err, ErrFeesExceedPrice) {
				t.Fatalf("split of %s with fee=%d royalty=%d error = %v", amount, platformBps, royaltyBps, err)
			}
			if platformBps+royaltyBps <= 10000 {
				t.Fatalf("split rejected for in-range rates fee=%d royalty=%d", platformBps, royaltyBps)
			}
			continue
		}

		sum := new(big.Int).Add(platformAmount, royaltyAmount)
		sum.Add(sum, sellerAmount)

		if sum.Cmp(amount) != 0 {
			t.Fatalf("split of %s with fee=%d royalty=%d sums to %s", amount, platformBps, royaltyBps, sum)
		}
		if sellerAmount.Sign() == -1 {
			t.Fatalf("seller amount negative for amount=%s fee=%d royalty=%d", amount, platformBps, royaltyBps)
		}
	}
}

func TestSplitProceedsTruncatesRemainderToSeller(t *testing.T) {
	// 333 does not divide evenly: 333 * 250 / 10000 = 8 (truncated)
	platformAmount, royaltyAmount, sellerAmount, err := splitProceeds(big.NewInt(333), 250, registry.Royalty{})
	if err != nil {
		t.Fatalf("splitProceeds failed: %v", err)
	}

	if platformAmount.Cmp(big.NewInt(8)) != 0 {
		t.Errorf("platform amount = %s, want 8", platformAmount)
	}
	if royaltyAmount.Sign() != 0 {
		t.Errorf("royalty amount = %s, want 0", royaltyAmount)
	}
	if sellerAmount.Cmp(big.NewInt(325)) != 0 {
		t.Errorf("seller amount = %s, want 325", sellerAmount)
	}
}

func TestSplitProceedsRejectsCombinedRatesOverDenominator(t *testing.T) {
	if _, _, _, err := splitProceeds(oneEth(), 10000, registry.Royalty{Receiver: creatorAddr, Bps: 500}); !errors.Is(err, ErrFeesExceedPrice) {
		t.Errorf("splitProceeds error = %v, want ErrFeesExceedPrice", err)
	}

	// On tiny amounts both cuts can truncate to zero, which is fine
	if _, _, _, err := splitProceeds(big.NewInt(1), 6000, registry.Royalty{Receiver: creatorAddr, Bps: 5000}); err != nil {
		t.Errorf("splitProceeds on truncating amount error = %v, want nil", err)
	}
}
