package cita

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/magicalhair/citas/internal/rest"
	log "github.com/sirupsen/logrus"
)

const successMessage = "¡Cita agendada con éxito! Te contactaremos pronto para confirmarla."

// maxFormBytes bounds a booking request body; the form has seven short fields.
const maxFormBytes = 64 << 10

type SubmitResponseDTO struct {
	Message string `json:"message"`
	Cita    Cita   `json:"cita"`
}

type CountDTO struct {
	Count int `json:"count"`
}

type ClearResponseDTO struct {
	Removed int `json:"removed"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// Submit accepts the booking form, url-encoded, multipart or as JSON.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log.Debug("Submitting appointment")
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	solicitud, err := decodeSolicitud(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "No se pudo leer el formulario.", err.Error())
		return
	}

	c, err := h.service.Submit(r.Context(), solicitud)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			rest.WriteError(w, http.StatusBadRequest, verr.Message, verr.Field)
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "No se pudo guardar la cita, intente de nuevo.", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SubmitResponseDTO{Message: successMessage, Cita: c}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decodeSolicitud(r *http.Request) (Solicitud, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var s Solicitud
		err := json.NewDecoder(r.Body).Decode(&s)
		return s, err
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return Solicitud{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return Solicitud{}, err
	}
	return Solicitud{
		Nombre:   r.PostForm.Get("nombre"),
		Telefono: r.PostForm.Get("telefono"),
		Sede:     r.PostForm.Get("sede"),
		Servicio: r.PostForm.Get("servicio"),
		Fecha:    r.PostForm.Get("fecha"),
		Hora:     r.PostForm.Get("hora"),
		Notas:    r.PostForm.Get("notas"),
	}, nil
}

// List returns all appointments, or only those between the optional from/to dates.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")

	var citas []Cita
	if fromString == "" && toString == "" {
		citas = h.service.List(r.Context())
	} else {
		from, err := ParseFecha(fromString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in YYYY-MM-DD format")
			return
		}
		to, err := ParseFecha(toString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in YYYY-MM-DD format")
			return
		}
		citas = h.service.Filter(r.Context(), from, to)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(citas); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(CountDTO{Count: h.service.Count(r.Context())}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Clear wipes the collection; the caller confirms with confirm=true.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	result, err := h.service.Clear(r.Context(), ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		return confirmed, nil
	}))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "No se pudieron borrar las citas.", err.Error())
		return
	}
	if !result.Confirmed {
		rest.WriteError(w, http.StatusPreconditionRequired, clearPrompt, "repeat the request with confirm=true")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ClearResponseDTO{Removed: result.Removed}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
