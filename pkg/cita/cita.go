package cita

// EstadoPendiente is the status every appointment is created with.
const EstadoPendiente = "Pendiente"

// Cita is a stored appointment. JSON keys are the persisted layout and must not change.
type Cita struct {
	ID       string `json:"ID"`
	Sede     string `json:"Sede"`
	Fecha    string `json:"Fecha"` // YYYY-MM-DD
	Hora     string `json:"Hora"`  // HH:MM, 24h
	Cliente  string `json:"Cliente"`
	Telefono string `json:"Telefono"`
	Servicio string `json:"Servicio"`
	Notas    string `json:"Notas"`
	Estado   string `json:"Estado"`
}

// Solicitud is the raw booking form input.
type Solicitud struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Sede     string `json:"sede"`
	Servicio string `json:"servicio"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`
	Notas    string `json:"notas"`
}
