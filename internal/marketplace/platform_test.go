package marketplace

import (
	"errors"
	"testing"
)

func TestPlatformSetAndGet(t *testing.T) {
	platform := NewPlatformService(treasuryAddr, 250)

	current := platform.Get()
	if current.Treasury != treasuryAddr || current.FeeBps != 250 {
		t.Errorf("unexpected platform %+v", current)
	}

	if err := platform.Set(creatorAddr, 500); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	current = platform.Get()
	if current.Treasury != creatorAddr || current.FeeBps != 500 {
		t.Errorf("unexpected platform after update %+v", current)
	}
}

func TestPlatformRejectsFeeAboveDenominator(t *testing.T) {
	platform := NewPlatformService(treasuryAddr, 250)

	if err := platform.Set(treasuryAddr, 10001); !errors.Is(err, ErrInvalidFee) {
		t.Errorf("Set error = %v, want ErrInvalidFee", err)
	}

	if current := platform.Get(); current.FeeBps != 250 {
		t.Errorf("fee = %d, rejected update must not apply", current.FeeBps)
	}
}

func TestPlatformAllowsFullFee(t *testing.T) {
	platform := NewPlatformService(treasuryAddr, 250)

	if err := platform.Set(treasuryAddr, 10000); err != nil {
		t.Errorf("Set(10000) failed: %v", err)
	}
}
