package mandelbrot

import (
	"errors"
	"testing"
)

func TestNewSettings_Defaults(t *testing.T) {
	s, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings() error = %v", err)
	}
	if s.Limit != IterationLimit {
		t.Errorf("Limit = %d, want %d", s.Limit, IterationLimit)
	}
	if s.Workers != 0 {
		t.Errorf("Workers = %d, want 0", s.Workers)
	}
}

func TestNewSettings_Options(t *testing.T) {
	s, err := NewSettings(WithIterationLimit(64), WithWorkers(3))
	if err != nil {
		t.Fatalf("NewSettings() error = %v", err)
	}
	if s.Limit != 64 {
		t.Errorf("Limit = %d, want 64", s.Limit)
	}
	if s.Workers != 3 {
		t.Errorf("Workers = %d, want 3", s.Workers)
	}
}

func TestNewSettings_ZeroLimitMeansDefault(t *testing.T) {
	s, err := NewSettings(WithIterationLimit(0))
	if err != nil {
		t.Fatalf("NewSettings() error = %v", err)
	}
	if s.Limit != IterationLimit {
		t.Errorf("Limit = %d, want %d", s.Limit, IterationLimit)
	}
}

func TestNewSettings_RejectsOversizedLimit(t *testing.T) {
	for _, limit := range []uint32{257, 1000, 1 << 20} {
		_, err := NewSettings(WithIterationLimit(limit))
		if !errors.Is(err, ErrLimitTooLarge) {
			t.Errorf("NewSettings(limit=%d) error = %v, want ErrLimitTooLarge", limit, err)
		}
	}
}

func TestNewSettings_MaxLimitAccepted(t *testing.T) {
	s, err := NewSettings(WithIterationLimit(IterationLimit))
	if err != nil {
		t.Fatalf("NewSettings(limit=%d) error = %v", IterationLimit, err)
	}
	if s.Limit != IterationLimit {
		t.Errorf("Limit = %d, want %d", s.Limit, IterationLimit)
	}
}
