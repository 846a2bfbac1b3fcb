package test_utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/magicalhair/citas/internal/storage"
	"github.com/magicalhair/citas/internal/utils"
)

// Now is the instant tests treat as "now": a weekday morning in the salon's season.
var Now = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

func NewClock() *utils.MockClock {
	return &utils.MockClock{FixedNow: Now}
}

// Day returns today+offset formatted as YYYY-MM-DD.
func Day(offset int) string {
	return Now.AddDate(0, 0, offset).Format("2006-01-02")
}

// SequenceIDs hands out cita-1, cita-2, ... so tests can assert on identifiers.
type SequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *SequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("cita-%d", s.n)
}

// FailingKeyValue wraps a backend and fails the selected operations.
type FailingKeyValue struct {
	storage.KeyValue
	GetErr    error
	SetErr    error
	DeleteErr error
	Sets      int
}

func (f *FailingKeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.KeyValue.Get(ctx, key)
}

func (f *FailingKeyValue) Set(ctx context.Context, key string, value []byte) error {
	f.Sets++
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.KeyValue.Set(ctx, key, value)
}

func (f *FailingKeyValue) Delete(ctx context.Context, key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	return f.KeyValue.Delete(ctx, key)
}
