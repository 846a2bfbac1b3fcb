package app

import (
	"context"
	"fmt"

	"github.com/magicalhair/citas/internal/config"
	"github.com/magicalhair/citas/internal/database"
	"github.com/magicalhair/citas/internal/event_bus"
	"github.com/magicalhair/citas/internal/metrics"
	"github.com/magicalhair/citas/internal/storage"
	"github.com/magicalhair/citas/internal/utils"
	"github.com/magicalhair/citas/pkg/cita"
	"github.com/magicalhair/citas/pkg/export"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	Storage  storage.KeyValue
	EventBus *event_bus.EventBus
	Registry *prometheus.Registry
	Metrics  *metrics.BookingMetrics

	CitaStore     *cita.Store
	CitaValidator *cita.Validator
	CitaService   *cita.Service
	CitaHandler   *cita.Handler

	TsvRenderer   *export.TsvRendererImpl
	Exporter      *export.Exporter
	ExportHandler *export.Handler

	closers []func()
}

// Close releases backend connections.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	clock, err := utils.NewSystemClock(cfg.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid booking timezone %q: %w", cfg.Booking.Timezone, err)
	}
	deps.Clock = clock

	kv, closer, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps.Storage = kv
	if closer != nil {
		deps.closers = append(deps.closers, closer)
	}

	deps.EventBus = event_bus.NewEventBus()
	subscribeAuditLog(deps.EventBus)
	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.NewBookingMetrics(deps.Registry)

	deps.CitaStore = cita.NewStore(deps.Storage, cfg.Storage.Key)
	deps.CitaValidator = cita.NewValidator(cita.RulesFromConfig(cfg.Booking), deps.Clock)
	deps.CitaService = cita.NewService(deps.CitaStore, deps.CitaValidator, cita.UUIDGenerator{}, deps.EventBus, deps.Metrics)
	deps.CitaHandler = cita.NewHandler(deps.CitaService)

	deps.TsvRenderer = export.NewTsvRenderer(cfg.Export.Quote)
	deps.Exporter = export.NewExporter(deps.CitaService, deps.TsvRenderer, deps.Clock,
		cfg.Export.Dir, cfg.Export.Prefix, deps.EventBus, deps.Metrics)
	deps.ExportHandler = export.NewHandler(deps.Exporter)

	return deps, nil
}

// OpenStorage connects the key-value backend named by storage.driver.
// The returned closer may be nil.
func OpenStorage(ctx context.Context, cfg config.Application) (storage.KeyValue, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("Using in-memory storage, appointments are lost on exit")
		return storage.NewMemoryStore(), nil, nil
	case "", "file":
		kv, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Storing appointments in %s", cfg.Storage.Dir)
		return kv, nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Infof("Storing appointments in redis at %s", cfg.Redis.Addr)
		return storage.NewRedisStore(client), func() { client.Close() }, nil
	case "postgres":
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, nil, err
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Storing appointments in postgres at %s:%d", cfg.Database.Host, cfg.Database.Port)
		return storage.NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func subscribeAuditLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.CitaRegistradaType, func(ctx context.Context, e event_bus.CitaRegistrada) error {
		log.WithFields(log.Fields{
			"id":       e.ID,
			"sede":     e.Sede,
			"fecha":    e.Fecha,
			"hora":     e.Hora,
			"servicio": e.Servicio,
		}).Info("Nueva cita registrada")
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CitasBorradasType, func(ctx context.Context, e event_bus.CitasBorradas) error {
		log.WithField("removed", e.Removed).Warn("Todas las citas fueron borradas")
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CitasExportadasType, func(ctx context.Context, e event_bus.CitasExportadas) error {
		log.WithFields(log.Fields{"file": e.FileName, "rows": e.Rows}).Info("Citas exportadas")
		return nil
	})
}
