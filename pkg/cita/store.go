package cita

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/magicalhair/citas/internal/storage"
	"github.com/magicalhair/citas/internal/utils"
	log "github.com/sirupsen/logrus"
)

const DefaultKey = "citas"

const clearPrompt = "¿Está seguro de que desea borrar TODAS las citas? Esta acción no se puede deshacer."

var ErrConfirmationRequired = errors.New("a confirmer is required to clear appointments")

// Store owns the appointment collection serialized as one JSON array under a single key.
// Every mutation rewrites the whole collection.
type Store struct {
	mu  sync.Mutex
	kv  storage.KeyValue
	key string
}

func NewStore(kv storage.KeyValue, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// read distinguishes backend failures (returned) from absent or corrupt data (empty collection).
func (s *Store) read(ctx context.Context) ([]Cita, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []Cita{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []Cita{}, nil
	}

	var citas []Cita
	if err := json.Unmarshal(data, &citas); err != nil {
		log.Warnf("stored appointments under %q are corrupt, treating as empty: %v", s.key, err)
		return []Cita{}, nil
	}
	if citas == nil {
		citas = []Cita{}
	}
	return citas, nil
}

// Load returns every stored appointment in insertion order. It never fails:
// absent, empty, corrupt or unreadable data yields an empty collection.
func (s *Store) Load(ctx context.Context) []Cita {
	s.mu.Lock()
	defer s.mu.Unlock()

	citas, err := s.read(ctx)
	if err != nil {
		log.Warnf("could not read appointments, treating as empty: %v", err)
		return []Cita{}
	}
	return citas
}

// Append adds c at the end of the collection without validating it.
// A backend read failure aborts before anything is written.
func (s *Store) Append(ctx context.Context, c Cita) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	citas, err := s.read(ctx)
	if err != nil {
		return fmt.Errorf("could not read appointments: %w", err)
	}
	citas = append(citas, c)

	data, err := json.Marshal(citas)
	if err != nil {
		return fmt.Errorf("could not encode appointments: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("could not write appointments: %w", err)
	}
	return nil
}

type ClearResult struct {
	Confirmed bool
	Removed   int
}

// Clear deletes the whole collection once confirmer agrees. There is no undo.
func (s *Store) Clear(ctx context.Context, confirmer Confirmer) (ClearResult, error) {
	if confirmer == nil {
		return ClearResult{}, ErrConfirmationRequired
	}
	ok, err := confirmer.Confirm(ctx, clearPrompt)
	if err != nil {
		return ClearResult{}, fmt.Errorf("could not confirm clear: %w", err)
	}
	if !ok {
		log.Info("clearing appointments declined")
		return ClearResult{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	if citas, err := s.read(ctx); err == nil {
		removed = len(citas)
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return ClearResult{}, fmt.Errorf("could not clear appointments: %w", err)
	}
	log.Infof("cleared %d appointments", removed)
	return ClearResult{Confirmed: true, Removed: removed}, nil
}

// FilterByDateRange returns the appointments whose Fecha falls within [start, end],
// comparing calendar days. Appointments with an unparsable Fecha are skipped.
func (s *Store) FilterByDateRange(ctx context.Context, start, end time.Time) []Cita {
	result := make([]Cita, 0)
	for _, c := range s.Load(ctx) {
		fecha, err := ParseFecha(c.Fecha)
		if err != nil {
			log.Debugf("skipping appointment %s with unparsable date: %v", c.ID, err)
			continue
		}
		if utils.SameOrBefore(start, fecha) && utils.SameOrBefore(fecha, end) {
			result = append(result, c)
		}
	}
	return result
}

func (s *Store) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}
