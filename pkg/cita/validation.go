package cita

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/magicalhair/citas/internal/config"
	"github.com/magicalhair/citas/internal/utils"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidSede          = errors.New("unknown sede")
	ErrInvalidDate          = errors.New("invalid date")
	ErrDateInPast           = errors.New("date is in the past")
	ErrDateTooFar           = errors.New("date is beyond the booking horizon")
	ErrInvalidTime          = errors.New("invalid time")
	ErrOutsideBusinessHours = errors.New("time is outside business hours")
)

// ValidationError carries the message shown to the person filling the form.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

var (
	mobilePattern  = regexp.MustCompile(`^3\d{9}$`)
	phoneSeparator = strings.NewReplacer("(", "", ")", "", "-", "")
)

// NormalizePhone removes whitespace, parentheses and hyphens.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phoneSeparator.Replace(phone)), "")
}

// ValidatePhone reports whether phone is a local mobile number: 3 followed by nine digits.
func ValidatePhone(phone string) bool {
	return mobilePattern.MatchString(NormalizePhone(phone))
}

type Rules struct {
	OpeningHour  int
	ClosingHour  int // exclusive
	MaxDaysAhead int // 0 disables the upper bound
	Sedes        []string
}

func RulesFromConfig(cfg config.Booking) Rules {
	return Rules{
		OpeningHour:  cfg.OpeningHour,
		ClosingHour:  cfg.ClosingHour,
		MaxDaysAhead: cfg.MaxDaysAhead,
		Sedes:        cfg.Sedes,
	}
}

type Validator struct {
	rules Rules
	clock utils.Clock
}

func NewValidator(rules Rules, clock utils.Clock) *Validator {
	return &Validator{rules: rules, clock: clock}
}

// Validate checks s and returns it normalized: fields trimmed, phone reduced to digits,
// date and time in their canonical layouts. The first failing rule wins.
func (v *Validator) Validate(s Solicitud) (Solicitud, error) {
	s = Solicitud{
		Nombre:   strings.TrimSpace(s.Nombre),
		Telefono: NormalizePhone(s.Telefono),
		Sede:     strings.TrimSpace(s.Sede),
		Servicio: strings.TrimSpace(s.Servicio),
		Fecha:    strings.TrimSpace(s.Fecha),
		Hora:     strings.TrimSpace(s.Hora),
		Notas:    strings.TrimSpace(s.Notas),
	}

	required := []struct{ field, label, value string }{
		{"nombre", "nombre", s.Nombre},
		{"telefono", "teléfono", s.Telefono},
		{"sede", "sede", s.Sede},
		{"servicio", "servicio", s.Servicio},
		{"fecha", "fecha", s.Fecha},
		{"hora", "hora", s.Hora},
	}
	for _, r := range required {
		if r.value == "" {
			return Solicitud{}, invalid(r.field, ErrMissingField, "Por favor complete el campo %s.", r.label)
		}
	}

	if !mobilePattern.MatchString(s.Telefono) {
		return Solicitud{}, invalid("telefono", ErrInvalidPhone,
			"Por favor ingrese un número de celular válido (10 dígitos, debe comenzar con 3).")
	}

	if len(v.rules.Sedes) > 0 && !slices.Contains(v.rules.Sedes, s.Sede) {
		return Solicitud{}, invalid("sede", ErrInvalidSede, "Por favor seleccione una sede válida.")
	}

	today := utils.Today(v.clock)
	fecha, err := time.ParseInLocation(DateLayout, s.Fecha, today.Location())
	if err != nil {
		return Solicitud{}, invalid("fecha", ErrInvalidDate, "La fecha no es válida, use el formato AAAA-MM-DD.")
	}
	if fecha.Before(today) {
		return Solicitud{}, invalid("fecha", ErrDateInPast, "No puede seleccionar una fecha pasada.")
	}
	if v.rules.MaxDaysAhead > 0 && fecha.After(today.AddDate(0, 0, v.rules.MaxDaysAhead)) {
		return Solicitud{}, invalid("fecha", ErrDateTooFar,
			"Solo puede agendar citas con un máximo de %d días de anticipación.", v.rules.MaxDaysAhead)
	}

	hora, err := time.Parse(TimeLayout, s.Hora)
	if err != nil {
		return Solicitud{}, invalid("hora", ErrInvalidTime, "La hora no es válida, use el formato HH:MM.")
	}
	if hora.Hour() < v.rules.OpeningHour || hora.Hour() >= v.rules.ClosingHour {
		return Solicitud{}, invalid("hora", ErrOutsideBusinessHours,
			"Nuestro horario de atención es de %02d:00 a %02d:00.", v.rules.OpeningHour, v.rules.ClosingHour)
	}

	s.Fecha = fecha.Format(DateLayout)
	s.Hora = hora.Format(TimeLayout)
	return s, nil
}

var fechaLayouts = []string{DateLayout, "2006-1-2", "02/01/2006", "2/1/2006", time.RFC3339}

// ParseFecha parses a stored or queried calendar date. Besides YYYY-MM-DD it accepts
// unpadded ISO dates, day-first DD/MM/YYYY and RFC3339 timestamps.
func ParseFecha(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
