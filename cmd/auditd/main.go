package main

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/creatorhub/marketplace-engine/generated/dic"
	"github.com/creatorhub/marketplace-engine/internal/audit"
	"github.com/creatorhub/marketplace-engine/internal/config"
	"github.com/creatorhub/marketplace-engine/internal/dev"
	"github.com/creatorhub/marketplace-engine/internal/elastic_search"
	"github.com/creatorhub/marketplace-engine/internal/messenger"
	"go.uber.org/zap"
)

var (
	messageService messenger.MessageService
	auditIndexer   audit.Indexer
	elastic        elastic_search.Index
)

func main() {
	config.Init("auditd")

	container, _ := dic.NewContainer()
	messageService = container.GetMessenger()
	auditIndexer = container.GetAuditIndexer()
	elastic = container.GetElastic()

	elastic.InstallMappings()

	go pollListings()
	go pollDelistings()
	go pollSales()

	select {}
}

func pollListings() {
	zap.L().Info("Subscribing to listing notifications")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.ListingCreated, messages)

	for message := range messages {
		var data messenger.Listing
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			recordFailure(messenger.ListingCreated, message, err)
			continue
		}

		auditIndexer.IndexListing(data)

		if err := messageService.DeleteMessage(messenger.ListingCreated, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
		elastic.Persist()
	}
}

func pollDelistings() {
	zap.L().Info("Subscribing to delisting notifications")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.ListingDelisted, messages)

	for message := range messages {
		var data messenger.Listing
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			recordFailure(messenger.ListingDelisted, message, err)
			continue
		}

		auditIndexer.IndexDelisting(data)

		if err := messageService.DeleteMessage(messenger.ListingDelisted, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
		elastic.Persist()
	}
}

func pollSales() {
	zap.L().Info("Subscribing to sale notifications")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.SaleSettled, messages)

	for message := range messages {
		var data messenger.Sale
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			recordFailure(messenger.SaleSettled, message, err)
			continue
		}

		auditIndexer.IndexSale(data)

		if err := messageService.DeleteMessage(messenger.SaleSettled, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
		elastic.Persist()
	}
}

// recordFailure keeps an undecodable message as an error document so the
// payload is not lost when the message is removed from the queue.
func recordFailure(item messenger.Item, message *sqs.Message, err error) {
	zap.L().With(zap.Error(err), zap.String("item", string(item))).Error("Failed to read message")

	elastic.AddIndexRequest(
		elastic_search.ErrorIndex.Get(),
		dev.NewError("auditd", string(item), err, map[string]interface{}{"body": *message.Body}),
		elastic_search.ErrorCreate,
	)
	elastic.Persist()

	if err := messageService.DeleteMessage(item, message); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to delete message")
	}
}
