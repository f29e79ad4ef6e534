package funds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

type service struct {
	url    string
	client *retryablehttp.Client
}

// NewService creates a Sink backed by the payment gateway's transfer
// endpoint.
func NewService(url string) Sink {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3

	return service{url: url, client: client}
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (s service) Transfer(from, to string, amount *big.Int) error {
	body, err := json.Marshal(transferRequest{From: from, To: to, Amount: amount.String()})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequest("POST", fmt.Sprintf("%s/transfers", s.url), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("to", to)).Error("Funds: Transfer request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().With(zap.Int("status", resp.StatusCode), zap.String("to", to)).Error("Funds: Transfer rejected")
		return fmt.Errorf("transfer rejected with status %d", resp.StatusCode)
	}

	return nil
}
