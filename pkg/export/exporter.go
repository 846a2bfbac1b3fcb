package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magicalhair/citas/internal/event_bus"
	"github.com/magicalhair/citas/internal/metrics"
	"github.com/magicalhair/citas/internal/utils"
	"github.com/magicalhair/citas/pkg/cita"
	log "github.com/sirupsen/logrus"
)

const DefaultPrefix = "citas_magical_hair"

// NoCitasMessage is shown instead of producing an empty file.
const NoCitasMessage = "No hay citas para exportar."

var ErrNoCitas = errors.New("no appointments to export")

// Source yields the full stored collection; *cita.Service satisfies it.
type Source interface {
	List(ctx context.Context) []cita.Cita
}

// FileName builds <prefix>_<YYYY-MM-DD>.txt for the export moment.
func FileName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s.txt", prefix, now.Format(cita.DateLayout))
}

type Document struct {
	FileName string
	Content  string
	Rows     int
}

type Result struct {
	Path string
	Rows int
}

type Exporter struct {
	source   Source
	renderer Renderer
	clock    utils.Clock
	dir      string
	prefix   string
	bus      *event_bus.EventBus
	metrics  *metrics.BookingMetrics
}

// NewExporter builds an exporter writing into dir. bus and m may be nil.
func NewExporter(source Source, renderer Renderer, clock utils.Clock, dir, prefix string,
	bus *event_bus.EventBus, m *metrics.BookingMetrics) *Exporter {
	return &Exporter{
		source:   source,
		renderer: renderer,
		clock:    clock,
		dir:      dir,
		prefix:   prefix,
		bus:      bus,
		metrics:  m,
	}
}

// Render produces the export document without touching the filesystem.
// Nothing is announced until the document is delivered.
func (e *Exporter) Render(ctx context.Context) (Document, error) {
	citas := e.source.List(ctx)
	if len(citas) == 0 {
		e.metrics.ObserveExport("empty")
		return Document{}, ErrNoCitas
	}

	content, err := e.renderer.Render(citas)
	if err != nil {
		e.metrics.ObserveExport("error")
		return Document{}, fmt.Errorf("failed to render appointments: %w", err)
	}

	doc := Document{
		FileName: FileName(e.prefix, e.clock.Now()),
		Content:  content,
		Rows:     len(citas),
	}
	return doc, nil
}

// delivered records a document that reached its destination, a file or an HTTP response.
func (e *Exporter) delivered(ctx context.Context, doc Document, outcome string) {
	e.metrics.ObserveExport(outcome)
	if e.bus == nil {
		return
	}
	err := e.bus.Publish(event_bus.NewEvent(ctx, event_bus.CitasExportadasType,
		event_bus.CitasExportadas{FileName: doc.FileName, Rows: doc.Rows}))
	if err != nil {
		log.Warnf("could not publish %s: %v", event_bus.CitasExportadasType, err)
	}
}

// ExportAll writes every stored appointment to a new file in the export directory.
// An empty collection yields ErrNoCitas and no file.
func (e *Exporter) ExportAll(ctx context.Context) (Result, error) {
	doc, err := e.Render(ctx)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		e.metrics.ObserveExport("error")
		return Result{}, fmt.Errorf("could not create export directory %s: %w", e.dir, err)
	}
	path := filepath.Join(e.dir, doc.FileName)
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		e.metrics.ObserveExport("error")
		return Result{}, fmt.Errorf("could not write export file %s: %w", path, err)
	}
	e.delivered(ctx, doc, "written")
	log.Infof("exported %d appointments to %s", doc.Rows, path)
	return Result{Path: path, Rows: doc.Rows}, nil
}
