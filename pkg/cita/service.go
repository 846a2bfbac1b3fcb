package cita

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magicalhair/citas/internal/event_bus"
	"github.com/magicalhair/citas/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Service struct {
	store     *Store
	validator *Validator
	ids       IDGenerator
	bus       *event_bus.EventBus
	metrics   *metrics.BookingMetrics
}

// NewService wires the booking flow. bus and m may be nil.
func NewService(store *Store, validator *Validator, ids IDGenerator, bus *event_bus.EventBus, m *metrics.BookingMetrics) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Service{
		store:     store,
		validator: validator,
		ids:       ids,
		bus:       bus,
		metrics:   m,
	}
}

func upper(s string) string {
	return cases.Upper(language.Spanish).String(s)
}

// Submit validates the form input and stores the resulting appointment.
// On validation failure the store is neither read nor written.
func (s *Service) Submit(ctx context.Context, solicitud Solicitud) (Cita, error) {
	valid, err := s.validator.Validate(solicitud)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.ObserveSubmission(verr.Field)
			log.Debugf("appointment rejected on %s: %s", verr.Field, verr.Message)
		}
		return Cita{}, err
	}

	c := Cita{
		ID:       s.ids.NewID(),
		Sede:     valid.Sede,
		Fecha:    valid.Fecha,
		Hora:     valid.Hora,
		Cliente:  upper(valid.Nombre),
		Telefono: valid.Telefono,
		Servicio: valid.Servicio,
		Notas:    upper(valid.Notas),
		Estado:   EstadoPendiente,
	}

	if err := s.store.Append(ctx, c); err != nil {
		s.metrics.ObserveSubmission("error")
		log.Errorf("failed to store appointment: %v", err)
		return Cita{}, fmt.Errorf("failed to store appointment: %w", err)
	}
	s.metrics.ObserveSubmission("accepted")
	log.Infof("appointment %s registered for %s %s at %s", c.ID, c.Fecha, c.Hora, c.Sede)

	s.publish(ctx, event_bus.CitaRegistradaType, event_bus.CitaRegistrada{
		ID:       c.ID,
		Sede:     c.Sede,
		Fecha:    c.Fecha,
		Hora:     c.Hora,
		Cliente:  c.Cliente,
		Servicio: c.Servicio,
	})
	return c, nil
}

func (s *Service) List(ctx context.Context) []Cita {
	return s.store.Load(ctx)
}

func (s *Service) Count(ctx context.Context) int {
	return s.store.Count(ctx)
}

func (s *Service) Filter(ctx context.Context, start, end time.Time) []Cita {
	return s.store.FilterByDateRange(ctx, start, end)
}

func (s *Service) Clear(ctx context.Context, confirmer Confirmer) (ClearResult, error) {
	result, err := s.store.Clear(ctx, confirmer)
	if err != nil {
		return result, err
	}
	s.metrics.ObserveClear(result.Confirmed)
	if result.Confirmed {
		s.publish(ctx, event_bus.CitasBorradasType, event_bus.CitasBorradas{Removed: result.Removed})
	}
	return result, nil
}

// publish never fails the caller: the appointment is already stored.
func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("could not publish %s: %v", eventType, err)
	}
}
