// Package console implements the administrative operations available from a terminal:
// export, count, clear, filter and list.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/magicalhair/citas/pkg/cita"
	"github.com/magicalhair/citas/pkg/export"
)

type Console struct {
	service  *cita.Service
	exporter *export.Exporter
	renderer export.Renderer
	in       *bufio.Reader
	out      io.Writer
}

func New(service *cita.Service, exporter *export.Exporter, renderer export.Renderer, in io.Reader, out io.Writer) *Console {
	return &Console{
		service:  service,
		exporter: exporter,
		renderer: renderer,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Confirm asks on the terminal; only an explicit yes (s, si, sí, y, yes) confirms.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s (s/n): ", prompt); err != nil {
		return false, err
	}
	answer, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *Console) Export(ctx context.Context) error {
	result, err := c.exporter.ExportAll(ctx)
	if errors.Is(err, export.ErrNoCitas) {
		fmt.Fprintln(c.out, export.NoCitasMessage)
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "Se exportaron %d citas a %s\n", result.Rows, result.Path)
	return err
}

func (c *Console) Count(ctx context.Context) error {
	_, err := fmt.Fprintf(c.out, "Total de citas: %d\n", c.service.Count(ctx))
	return err
}

// Clear wipes every appointment after confirmation; assumeYes skips the prompt.
func (c *Console) Clear(ctx context.Context, assumeYes bool) error {
	var confirmer cita.Confirmer = c
	if assumeYes {
		confirmer = cita.Always(true)
	}
	result, err := c.service.Clear(ctx, confirmer)
	if err != nil {
		return err
	}
	if !result.Confirmed {
		_, err = fmt.Fprintln(c.out, "Operación cancelada, no se borró ninguna cita.")
		return err
	}
	_, err = fmt.Fprintf(c.out, "Se borraron %d citas.\n", result.Removed)
	return err
}

// Filter prints the appointments between from and to (inclusive) as tab-separated text.
func (c *Console) Filter(ctx context.Context, from, to string) error {
	start, err := cita.ParseFecha(from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	end, err := cita.ParseFecha(to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	return c.print(c.service.Filter(ctx, start, end))
}

func (c *Console) List(ctx context.Context) error {
	return c.print(c.service.List(ctx))
}

func (c *Console) print(citas []cita.Cita) error {
	content, err := c.renderer.Render(citas)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(c.out, content); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "(%d citas)\n", len(citas))
	return err
}
