package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"github.com/hashicorp/go-retryablehttp"
)

// Client talks to a running marketd over its JSON API. Used by the admin
// CLI; the ledger state lives in the daemon process.
type Client struct {
	baseUrl    string
	httpClient *retryablehttp.Client
}

func NewClient(baseUrl string) Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 3

	return Client{baseUrl: baseUrl, httpClient: httpClient}
}

func (c Client) GetPlatform() (entity.Platform, error) {
	var platform entity.Platform
	err := c.do("GET", "/platform", nil, &platform)

	return platform, err
}

func (c Client) SetPlatform(treasury string, feeBps uint) error {
	return c.do("PUT", "/platform", setPlatformRequest{Treasury: treasury, FeeBps: feeBps}, nil)
}

func (c Client) GetActiveListings() ([]entity.Listing, error) {
	listings := make([]entity.Listing, 0)
	err := c.do("GET", "/listings", nil, &listings)

	return listings, err
}

func (c Client) GetListing(listingId uint64) (entity.Listing, error) {
	var listing entity.Listing
	err := c.do("GET", fmt.Sprintf("/listings/%d", listingId), nil, &listing)

	return listing, err
}

func (c Client) CancelListing(listingId uint64, caller string) error {
	return c.do("POST", fmt.Sprintf("/listings/%d/cancel", listingId), cancelRequest{Caller: caller}, nil)
}

func (c Client) do(method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	req, err := retryablehttp.NewRequest(method, c.baseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s failed (%d): %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if result == nil {
		return nil
	}

	return json.Unmarshal(data, result)
}
