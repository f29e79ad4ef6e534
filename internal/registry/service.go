package registry

import (
	"encoding/json"

	"go.uber.org/zap"
)

type service struct {
	client *rpcClient
}

// NewService creates an AssetRegistry backed by the registry gateway's
// JSON-RPC endpoint.
func NewService(url string, timeout int, debug bool) (AssetRegistry, error) {
	client, err := newRpcClient(url, timeout, debug)
	if err != nil {
		return nil, err
	}

	return service{client}, nil
}

type transferParams struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (s service) OwnerOf(contract string, tokenId uint64) (string, error) {
	response, err := s.call("OwnerOf", map[string]interface{}{"contract": contract, "tokenId": tokenId})
	if err != nil {
		return "", err
	}

	var owner string
	err = json.Unmarshal(response, &owner)

	return owner, err
}

func (s service) IsApproved(operator string, contract string, tokenId uint64) (bool, error) {
	response, err := s.call("IsApproved", map[string]interface{}{"operator": operator, "contract": contract, "tokenId": tokenId})
	if err != nil {
		return false, err
	}

	var approved bool
	err = json.Unmarshal(response, &approved)

	return approved, err
}

func (s service) RoyaltyOf(contract string, tokenId uint64) (Royalty, error) {
	response, err := s.call("RoyaltyOf", map[string]interface{}{"contract": contract, "tokenId": tokenId})
	if err != nil {
		return Royalty{}, err
	}

	var royalty Royalty
	err = json.Unmarshal(response, &royalty)

	return royalty, err
}

func (s service) Transfer(contract string, tokenId uint64, from, to string) error {
	_, err := s.call("Transfer", transferParams{contract, tokenId, from, to})
	if err != nil {
		zap.L().With(
			zap.String("contract", contract),
			zap.Uint64("tokenId", tokenId),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		).Warn("Registry: Transfer refused")
		return ErrTransferDenied
	}

	return nil
}

func (s service) call(method string, params interface{}) (json.RawMessage, error) {
	response, err := s.client.call(method, params)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, response.Error
	}

	return response.Result, nil
}
