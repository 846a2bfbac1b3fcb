package event_bus

const (
	CitaRegistradaType  EventType = "cita.registrada"
	CitasBorradasType   EventType = "citas.borradas"
	CitasExportadasType EventType = "citas.exportadas"
)

// CitaRegistrada is published after an appointment has been stored.
type CitaRegistrada struct {
	ID       string
	Sede     string
	Fecha    string
	Hora     string
	Cliente  string
	Servicio string
}

// CitasBorradas is published after a confirmed wipe of the collection.
type CitasBorradas struct {
	Removed int
}

type CitasExportadas struct {
	FileName string
	Rows     int
}
