package main

import (
	"fmt"
	"net/http"

	"github.com/creatorhub/marketplace-engine/generated/dic"
	"github.com/creatorhub/marketplace-engine/internal/config"
	"github.com/creatorhub/marketplace-engine/internal/event"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *dic.Container

func main() {
	config.Init("marketd")
	container, _ = dic.NewContainer()

	go health()

	publisher := container.GetPublisher()
	event.AddEventListener(event.ListingCreatedEvent, publisher.TriggerListingNotification)
	event.AddEventListener(event.ListingCancelledEvent, publisher.TriggerDelistNotification)
	event.AddEventListener(event.SaleSettledEvent, publisher.TriggerSaleNotification)

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Started")

	server := container.GetApiServer()
	if err := http.ListenAndServe(":"+config.Get().ApiPort, server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health check")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
