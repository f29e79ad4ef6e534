package di

import (
	"time"

	"github.com/creatorhub/marketplace-engine/internal/api"
	"github.com/creatorhub/marketplace-engine/internal/audit"
	"github.com/creatorhub/marketplace-engine/internal/config"
	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/funds"
	"github.com/creatorhub/marketplace-engine/internal/marketplace"
	"github.com/creatorhub/marketplace-engine/internal/messenger"
	"github.com/creatorhub/marketplace-engine/internal/registry"
	"github.com/creatorhub/marketplace-engine/internal/repository"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/dingo/v4"
	"go.uber.org/zap"
)

var Definitions = []dingo.Def{
	{
		Name: "elastic",
		Build: func() (elastic_search.Index, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "cache",
		Build: func() (*cache.Cache, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "registry",
		Build: func() (registry.AssetRegistry, error) {
			cfg := config.Get().Registry
			return registry.NewService(cfg.Url, cfg.Timeout, cfg.Debug)
		},
	},
	{
		Name: "bank",
		Build: func() (funds.Sink, error) {
			return funds.NewService(config.Get().Payments.Url), nil
		},
	},
	{
		Name: "platform",
		Build: func() (marketplace.PlatformService, error) {
			return marketplace.NewPlatformService(config.Get().Treasury, config.Get().PlatformFeeBps), nil
		},
	},
	{
		Name: "ledger",
		Build: func(assetRegistry registry.AssetRegistry) (marketplace.Ledger, error) {
			return marketplace.NewLedger(assetRegistry, config.Get().MarketplaceAddr), nil
		},
	},
	{
		Name: "engine",
		Build: func(
			ledger marketplace.Ledger,
			assetRegistry registry.AssetRegistry,
			platform marketplace.PlatformService,
			bank funds.Sink,
		) (marketplace.Engine, error) {
			return marketplace.NewEngine(ledger, assetRegistry, platform, bank), nil
		},
	},
	{
		Name: "api.server",
		Build: func(
			ledger marketplace.Ledger,
			engine marketplace.Engine,
			platform marketplace.PlatformService,
		) (api.Server, error) {
			return api.NewServer(ledger, engine, platform), nil
		},
	},
	{
		Name: "messenger",
		Build: func() (messenger.MessageService, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "publisher",
		Build: func(messageService messenger.MessageService) (messenger.Publisher, error) {
			return messenger.NewPublisher(messageService), nil
		},
	},
	{
		Name: "audit.indexer",
		Build: func(elastic elastic_search.Index, seen *cache.Cache) (audit.Indexer, error) {
			return audit.NewIndexer(elastic, seen), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(elastic elastic_search.Index) (repository.ListingRepository, error) {
			return repository.NewListingRepository(elastic), nil
		},
	},
	{
		Name: "listing.action.repo",
		Build: func(elastic elastic_search.Index) (repository.ListingActionRepository, error) {
			return repository.NewListingActionRepository(elastic), nil
		},
	},
}
