package entity

const FeeDenominator uint = 10000

// Platform holds the process-wide treasury address and fee rate. The fee is
// expressed in basis points and read at sale time, not at listing time.
type Platform struct {
	Treasury string `json:"treasury"`
	FeeBps   uint   `json:"feeBps"`
}

func (p Platform) Slug() string {
	return "platform"
}
