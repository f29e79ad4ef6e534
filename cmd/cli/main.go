package main

import (
	"fmt"
	"os"

	"github.com/creatorhub/marketplace-engine/generated/dic"
	"github.com/creatorhub/marketplace-engine/internal/api"
	"github.com/creatorhub/marketplace-engine/internal/config"
	"github.com/creatorhub/marketplace-engine/internal/dev"
	"github.com/creatorhub/marketplace-engine/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container  *dic.Container
	apiClient  api.Client
	actionRepo repository.ListingActionRepository
)

func main() {
	config.Init("cli")

	container, _ = dic.NewContainer()
	apiClient = api.NewClient(getString("MARKETD_URL", "http://localhost:8080"))
	actionRepo = container.GetListingActionRepo()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "platform",
				Usage:  "show the current treasury address and platform fee",
				Action: showPlatform,
			},
			{
				Name:   "set-platform",
				Usage:  "update the treasury address and platform fee (bps)",
				Action: setPlatform,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "treasury", Required: true, Usage: "treasury payout address"},
					&cli.UintFlag{Name: "fee", Required: true, Usage: "platform fee in basis points"},
				},
			},
			{
				Name:   "listings",
				Usage:  "show all active listings",
				Action: showListings,
			},
			{
				Name:   "cancel",
				Usage:  "cancel a listing on behalf of its seller",
				Action: cancelListing,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "id", Required: true, Usage: "listing id"},
					&cli.StringFlag{Name: "seller", Required: true, Usage: "seller address"},
				},
			},
			{
				Name:   "history",
				Usage:  "show the audit trail for an asset",
				Action: showHistory,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true, Usage: "asset contract address"},
					&cli.Uint64Flag{Name: "token", Required: true, Usage: "token id"},
				},
			},
			{
				Name:   "sales",
				Usage:  "show recent sales",
				Action: showSales,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 25, Usage: "number of sales to show"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("CLI Failure")
	}
}

func showPlatform(c *cli.Context) error {
	platform, err := apiClient.GetPlatform()
	if err != nil {
		return err
	}

	fmt.Printf("treasury: %s\nfeeBps:   %d\n", platform.Treasury, platform.FeeBps)

	return nil
}

func setPlatform(c *cli.Context) error {
	return apiClient.SetPlatform(c.String("treasury"), c.Uint("fee"))
}

func showListings(c *cli.Context) error {
	listings, err := apiClient.GetActiveListings()
	if err != nil {
		return err
	}

	if config.Get().Debug {
		dev.Dump(listings)
		return nil
	}

	for _, listing := range listings {
		fmt.Printf("%d: %s/%d seller=%s price=%s\n", listing.Id, listing.AssetContract, listing.TokenId, listing.Seller, listing.Price)
	}

	return nil
}

func cancelListing(c *cli.Context) error {
	return apiClient.CancelListing(c.Uint64("id"), c.String("seller"))
}

func showHistory(c *cli.Context) error {
	actions, err := actionRepo.GetActions(c.String("contract"), c.Uint64("token"))
	if err != nil {
		return err
	}

	for _, action := range actions {
		fmt.Printf("%d: %s listing=%d from=%s to=%s cost=%s fee=%s royalty=%s\n",
			action.CreatedAt, action.Action, action.ListingId, action.From, action.To, action.Cost, action.Fee, action.Royalty)
	}

	return nil
}

func showSales(c *cli.Context) error {
	sales, err := actionRepo.GetSales(c.Int("size"))
	if err != nil {
		return err
	}

	for _, sale := range sales {
		fmt.Printf("%d: %s/%d listing=%d buyer=%s cost=%s\n",
			sale.CreatedAt, sale.AssetContract, sale.TokenId, sale.ListingId, sale.To, sale.Cost)
	}

	return nil
}

func getString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}
