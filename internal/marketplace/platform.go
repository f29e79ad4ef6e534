package marketplace

import (
	"sync"

	"github.com/creatorhub/marketplace-engine/internal/entity"
	"go.uber.org/zap"
)

// PlatformService holds the treasury address and fee rate shared by every
// sale. Updates are last-write-wins; the engine reads the configuration at
// sale time, never at listing time.
type PlatformService interface {
	Set(treasury string, feeBps uint) error
	Get() entity.Platform
}

type platformService struct {
	mu       sync.RWMutex
	platform entity.Platform
}

func NewPlatformService(treasury string, feeBps uint) PlatformService {
	return &platformService{platform: entity.Platform{Treasury: treasury, FeeBps: feeBps}}
}

func (s *platformService) Set(treasury string, feeBps uint) error {
	if feeBps > entity.FeeDenominator {
		return ErrInvalidFee
	}

	s.mu.Lock()
	s.platform = entity.Platform{Treasury: treasury, FeeBps: feeBps}
	s.mu.Unlock()

	zap.L().With(zap.String("treasury", treasury), zap.Uint("feeBps", feeBps)).Info("Platform: Configuration updated")

	return nil
}

func (s *platformService) Get() entity.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.platform
}
