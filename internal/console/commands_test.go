package console

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(out *bytes.Buffer, input string) *cli.App {
	return &cli.App{
		Name:     "citas",
		Flags:    []cli.Flag{&cli.StringFlag{Name: "config"}},
		Commands: Commands(),
		Reader:   strings.NewReader(input),
		Writer:   out,
	}
}

func TestCommands(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("CITAS_STORAGE_DRIVER", "file")
	t.Setenv("CITAS_STORAGE_DIR", dataDir)
	configPath := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("count on an empty store", func(t *testing.T) {
		out := &bytes.Buffer{}

		err := newTestApp(out, "").Run([]string{"citas", "--config", configPath, "count"})

		require.NoError(t, err)
		assert.Equal(t, "Total de citas: 0\n", out.String())
	})

	t.Run("export with nothing stored", func(t *testing.T) {
		out := &bytes.Buffer{}

		err := newTestApp(out, "").Run([]string{"citas", "--config", configPath, "export", "--dir", t.TempDir()})

		assert.Error(t, err)
		assert.Contains(t, out.String(), "No hay citas para exportar.")
	})

	t.Run("clear declined", func(t *testing.T) {
		out := &bytes.Buffer{}

		err := newTestApp(out, "n\n").Run([]string{"citas", "--config", configPath, "clear"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Operación cancelada")
	})

	t.Run("filter requires both bounds", func(t *testing.T) {
		out := &bytes.Buffer{}

		err := newTestApp(out, "").Run([]string{"citas", "--config", configPath, "filter", "--from", "2025-01-01"})

		assert.Error(t, err)
	})
}
