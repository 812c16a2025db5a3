package tools

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Tool names, as the orchestrator sees them.
const (
	CheckAvailability = "consultar_disponibilidad"
	CreateReservation = "crear_reserva"
	ListRoomTypes     = "listar_tipos_habitaciones"
	ListReservations  = "listar_reservas"
)

func checkAvailabilityDefinition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        CheckAvailability,
		Description: "Consulta cuántas habitaciones de un tipo quedan libres en una fecha concreta.",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"tipo_habitacion": {
					Type:        jsonschema.String,
					Description: "Nombre del tipo de habitación, por ejemplo \"Doble Estándar\".",
				},
				"fecha": {
					Type:        jsonschema.String,
					Description: "Fecha de la noche en formato YYYY-MM-DD.",
				},
			},
			Required: []string{"tipo_habitacion", "fecha"},
		},
	}
}

func createReservationDefinition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        CreateReservation,
		Description: "Crea una reserva de una habitación para una noche si queda disponibilidad.",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"nombre": {
					Type:        jsonschema.String,
					Description: "Nombre completo del huésped.",
				},
				"tipo_habitacion": {
					Type:        jsonschema.String,
					Description: "Nombre del tipo de habitación.",
				},
				"fecha": {
					Type:        jsonschema.String,
					Description: "Fecha de la noche en formato YYYY-MM-DD.",
				},
				"email": {
					Type:        jsonschema.String,
					Description: "Correo electrónico de contacto (opcional).",
				},
				"telefono": {
					Type:        jsonschema.String,
					Description: "Teléfono de contacto (opcional).",
				},
				"personas": {
					Type:        jsonschema.Integer,
					Description: "Número de personas; 1 si no se indica.",
				},
			},
			Required: []string{"nombre", "tipo_habitacion", "fecha"},
		},
	}
}

func listRoomTypesDefinition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        ListRoomTypes,
		Description: "Lista los tipos de habitación del hotel con su descripción, precio y número total.",
		Parameters:  jsonschema.Definition{Type: jsonschema.Object, Properties: map[string]jsonschema.Definition{}},
	}
}

func listReservationsDefinition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        ListReservations,
		Description: "Lista todas las reservas registradas en el hotel.",
		Parameters:  jsonschema.Definition{Type: jsonschema.Object, Properties: map[string]jsonschema.Definition{}},
	}
}
