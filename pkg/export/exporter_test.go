package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magicalhair/citas/internal/event_bus"
	"github.com/magicalhair/citas/internal/utils"
	"github.com/magicalhair/citas/pkg/cita"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource []cita.Cita

func (s sliceSource) List(ctx context.Context) []cita.Cita {
	return s
}

var exportMoment = time.Date(2025, 3, 7, 18, 20, 0, 0, time.UTC)

func newTestExporter(t *testing.T, source Source, bus *event_bus.EventBus) (*Exporter, string) {
	dir := filepath.Join(t.TempDir(), "exports")
	clock := &utils.MockClock{FixedNow: exportMoment}
	return NewExporter(source, NewTsvRenderer(false), clock, dir, "", bus, nil), dir
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "citas_magical_hair_2025-03-07.txt", FileName("", exportMoment))
	assert.Equal(t, "backup_2025-03-07.txt", FileName("backup", exportMoment))
}

func TestExporter_ExportAll(t *testing.T) {
	t.Run("should write the file named after the export date", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		var exported []event_bus.CitasExportadas
		event_bus.SubscribeTyped(bus, event_bus.CitasExportadasType,
			func(ctx context.Context, e event_bus.CitasExportadas) error {
				exported = append(exported, e)
				return nil
			})
		exporter, dir := newTestExporter(t, sliceSource{ana, luisa}, bus)

		result, err := exporter.ExportAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "citas_magical_hair_2025-03-07.txt"), result.Path)
		assert.Equal(t, 2, result.Rows)
		content, err := os.ReadFile(result.Path)
		require.NoError(t, err)
		want, err := NewTsvRenderer(false).Render([]cita.Cita{ana, luisa})
		require.NoError(t, err)
		assert.Equal(t, want, string(content))
		assert.Equal(t, []event_bus.CitasExportadas{{FileName: "citas_magical_hair_2025-03-07.txt", Rows: 2}}, exported)
	})

	t.Run("should not announce an export that could not be written", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		published := 0
		event_bus.SubscribeTyped(bus, event_bus.CitasExportadasType,
			func(ctx context.Context, e event_bus.CitasExportadas) error {
				published++
				return nil
			})
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		clock := &utils.MockClock{FixedNow: exportMoment}
		exporter := NewExporter(sliceSource{ana}, NewTsvRenderer(false), clock, blocker, "", bus, nil)

		_, err := exporter.ExportAll(context.Background())

		assert.Error(t, err)
		assert.Equal(t, 0, published)
	})

	t.Run("should refuse to export an empty collection", func(t *testing.T) {
		exporter, dir := newTestExporter(t, sliceSource{}, nil)

		_, err := exporter.ExportAll(context.Background())

		assert.ErrorIs(t, err, ErrNoCitas)
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), "no file or directory should be produced")
	})
}

func TestHandler_Download(t *testing.T) {
	t.Run("should serve an attachment", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		published := 0
		event_bus.SubscribeTyped(bus, event_bus.CitasExportadasType,
			func(ctx context.Context, e event_bus.CitasExportadas) error {
				published++
				return nil
			})
		exporter, dir := newTestExporter(t, sliceSource{ana}, bus)
		w := httptest.NewRecorder()

		NewHandler(exporter).Download(w, httptest.NewRequest(http.MethodGet, "/api/citas/export", nil))

		assert.Equal(t, 1, published)
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), "downloads do not write to the export directory")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="citas_magical_hair_2025-03-07.txt"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "ANA GOMEZ")
	})

	t.Run("should answer not found when there is nothing to export", func(t *testing.T) {
		exporter, _ := newTestExporter(t, sliceSource{}, nil)
		w := httptest.NewRecorder()

		NewHandler(exporter).Download(w, httptest.NewRequest(http.MethodGet, "/api/citas/export", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), NoCitasMessage)
	})
}
