package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/creatorhub/marketplace-engine/internal/marketplace"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	ledger   marketplace.Ledger
	engine   marketplace.Engine
	platform marketplace.PlatformService
}

func NewServer(ledger marketplace.Ledger, engine marketplace.Engine, platform marketplace.PlatformService) Server {
	return Server{ledger, engine, platform}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/listings", s.handleCreateListing).Methods("POST")
	r.HandleFunc("/listings", s.handleActiveListings).Methods("GET")
	r.HandleFunc("/listings/{listingId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{listingId}/buy", s.handleBuy).Methods("POST")
	r.HandleFunc("/listings/{listingId}/cancel", s.handleCancel).Methods("POST")
	r.HandleFunc("/platform", s.handleGetPlatform).Methods("GET")
	r.HandleFunc("/platform", s.handleSetPlatform).Methods("PUT")

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "Marketplace Settlement Engine")
}

type createListingRequest struct {
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
	Seller        string `json:"seller"`
	Price         string `json:"price"`
}

func (s Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var request createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	price, ok := new(big.Int).SetString(request.Price, 10)
	if !ok {
		writeError(w, marketplace.ErrPriceZero)
		return
	}

	listingId, err := s.ledger.CreateListing(request.AssetContract, request.TokenId, request.Seller, price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"listingId": listingId})
}

func (s Server) handleActiveListings(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.ledger.ActiveListings())
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	listing, err := s.ledger.GetListing(listingId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, listing)
}

type buyRequest struct {
	Buyer      string `json:"buyer"`
	AmountPaid string `json:"amountPaid"`
}

type saleResponse struct {
	ListingId      uint64 `json:"listingId"`
	SellerAmount   string `json:"sellerAmount"`
	RoyaltyAmount  string `json:"royaltyAmount"`
	PlatformAmount string `json:"platformAmount"`
	NewOwner       string `json:"newOwner"`
}

func (s Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	var request buyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	amountPaid, ok := new(big.Int).SetString(request.AmountPaid, 10)
	if !ok {
		writeError(w, marketplace.ErrBadPrice)
		return
	}

	sale, err := s.engine.Buy(listingId, request.Buyer, amountPaid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, saleResponse{
		ListingId:      sale.Listing.Id,
		SellerAmount:   sale.SellerAmount.String(),
		RoyaltyAmount:  sale.RoyaltyAmount.String(),
		PlatformAmount: sale.PlatformAmount.String(),
		NewOwner:       sale.NewOwner,
	})
}

type cancelRequest struct {
	Caller string `json:"caller"`
}

func (s Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	var request cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.ledger.CancelListing(listingId, request.Caller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleGetPlatform(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.platform.Get())
}

type setPlatformRequest struct {
	Treasury string `json:"treasury"`
	FeeBps   uint   `json:"feeBps"`
}

func (s Server) handleSetPlatform(w http.ResponseWriter, r *http.Request) {
	var request setPlatformRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.platform.Set(request.Treasury, request.FeeBps); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, entity.Platform{Treasury: request.Treasury, FeeBps: request.FeeBps})
}

func getListingId(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["listingId"], 10, 64)
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, marketplace.ErrListingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, marketplace.ErrNotActive):
		status = http.StatusGone
	case errors.Is(err, marketplace.ErrAlreadyListed):
		status = http.StatusConflict
	case errors.Is(err, marketplace.ErrNotSeller):
		status = http.StatusForbidden
	case errors.Is(err, marketplace.ErrTransferFailed):
		status = http.StatusBadGateway
	case errors.Is(err, marketplace.ErrPriceZero),
		errors.Is(err, marketplace.ErrBadPrice),
		errors.Is(err, marketplace.ErrInvalidFee),
		errors.Is(err, marketplace.ErrFeesExceedPrice),
		errors.Is(err, marketplace.ErrNotOwner),
		errors.Is(err, marketplace.ErrNotApproved):
		status = http.StatusBadRequest
	}

	http.Error(w, err.Error(), status)
}
