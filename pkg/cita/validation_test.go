package cita

import (
	"testing"

	"github.com/magicalhair/citas/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultRules = Rules{OpeningHour: 8, ClosingHour: 20, MaxDaysAhead: 60}

func validSolicitud() Solicitud {
	return Solicitud{
		Nombre:   "Ana Gomez",
		Telefono: "3001234567",
		Sede:     "A",
		Servicio: "Corte",
		Fecha:    test_utils.Day(1),
		Hora:     "10:00",
		Notas:    "",
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"3001234567", true},
		{"300 123 4567", true},
		{"(300) 123-4567", true},
		{" 3-0-0-1-2-3-4-5-6-7 ", true},
		{"300\t1234567", true},
		{"1234567890", false},
		{"300123456", false},
		{"30012345678", false},
		{"300123456a", false},
		{"+573001234567", false},
		{"300.123.4567", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "3001234567", NormalizePhone(" (300) 123 - 4567 "))
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator(defaultRules, test_utils.NewClock())

	t.Run("should accept and normalize a valid request", func(t *testing.T) {
		s := validSolicitud()
		s.Telefono = "(300) 123-4567"
		s.Nombre = "  Ana Gomez "
		s.Hora = "9:05"

		got, err := validator.Validate(s)

		require.NoError(t, err)
		assert.Equal(t, "3001234567", got.Telefono)
		assert.Equal(t, "Ana Gomez", got.Nombre)
		assert.Equal(t, "09:05", got.Hora)
		assert.Equal(t, test_utils.Day(1), got.Fecha)
	})

	testCases := []struct {
		name    string
		modify  func(s *Solicitud)
		wantErr error
		field   string
	}{
		{"missing name", func(s *Solicitud) { s.Nombre = "  " }, ErrMissingField, "nombre"},
		{"missing service", func(s *Solicitud) { s.Servicio = "" }, ErrMissingField, "servicio"},
		{"non mobile phone", func(s *Solicitud) { s.Telefono = "1234567890" }, ErrInvalidPhone, "telefono"},
		{"short phone", func(s *Solicitud) { s.Telefono = "300123" }, ErrInvalidPhone, "telefono"},
		{"malformed date", func(s *Solicitud) { s.Fecha = "10/01/2025" }, ErrInvalidDate, "fecha"},
		{"yesterday", func(s *Solicitud) { s.Fecha = test_utils.Day(-1) }, ErrDateInPast, "fecha"},
		{"far past", func(s *Solicitud) { s.Fecha = "2020-01-01" }, ErrDateInPast, "fecha"},
		{"beyond horizon", func(s *Solicitud) { s.Fecha = test_utils.Day(61) }, ErrDateTooFar, "fecha"},
		{"malformed time", func(s *Solicitud) { s.Hora = "diez" }, ErrInvalidTime, "hora"},
		{"before opening", func(s *Solicitud) { s.Hora = "07:59" }, ErrOutsideBusinessHours, "hora"},
		{"at closing", func(s *Solicitud) { s.Hora = "20:00" }, ErrOutsideBusinessHours, "hora"},
		{"late night", func(s *Solicitud) { s.Hora = "23:30" }, ErrOutsideBusinessHours, "hora"},
	}
	for _, tc := range testCases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			s := validSolicitud()
			tc.modify(&s)

			_, err := validator.Validate(s)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}

	acceptedCases := []struct {
		name   string
		modify func(s *Solicitud)
	}{
		{"today", func(s *Solicitud) { s.Fecha = test_utils.Day(0) }},
		{"last day of horizon", func(s *Solicitud) { s.Fecha = test_utils.Day(60) }},
		{"opening time", func(s *Solicitud) { s.Hora = "08:00" }},
		{"last minute before closing", func(s *Solicitud) { s.Hora = "19:59" }},
		{"phone with separators", func(s *Solicitud) { s.Telefono = "300-123-4567" }},
	}
	for _, tc := range acceptedCases {
		t.Run("should accept "+tc.name, func(t *testing.T) {
			s := validSolicitud()
			tc.modify(&s)

			_, err := validator.Validate(s)

			assert.NoError(t, err)
		})
	}
}

func TestValidator_ReportsOpeningHoursInMessage(t *testing.T) {
	validator := NewValidator(defaultRules, test_utils.NewClock())
	s := validSolicitud()
	s.Hora = "07:00"

	_, err := validator.Validate(s)

	assert.EqualError(t, err, "Nuestro horario de atención es de 08:00 a 20:00.")
}

func TestValidator_Sedes(t *testing.T) {
	rules := defaultRules
	rules.Sedes = []string{"Norte", "Sur"}
	validator := NewValidator(rules, test_utils.NewClock())

	s := validSolicitud()
	s.Sede = "Norte"
	_, err := validator.Validate(s)
	assert.NoError(t, err)

	s.Sede = "Oeste"
	_, err = validator.Validate(s)
	assert.ErrorIs(t, err, ErrInvalidSede)
}

func TestValidator_NoHorizon(t *testing.T) {
	rules := defaultRules
	rules.MaxDaysAhead = 0
	validator := NewValidator(rules, test_utils.NewClock())
	s := validSolicitud()
	s.Fecha = test_utils.Day(365)

	_, err := validator.Validate(s)

	assert.NoError(t, err)
}

func TestParseFecha(t *testing.T) {
	for _, value := range []string{"2025-01-15", "2025-1-15", "15/01/2025", "2025-01-15T10:00:00Z"} {
		t.Run(value, func(t *testing.T) {
			got, err := ParseFecha(value)

			require.NoError(t, err)
			assert.Equal(t, "2025-01-15", got.Format(DateLayout))
		})
	}

	_, err := ParseFecha("mañana")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
