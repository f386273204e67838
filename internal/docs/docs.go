// Package docs registra el swagger del API para http-swagger.
// Se regenera desde las anotaciones godoc con `go generate ./internal/docs`;
// no editar a mano. router_test compara las rutas montadas contra este doc.
package docs

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output . --outputTypes go

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"status": {"type": "string", "example": "ok"}}}}}
            }
        },
        "/api/medicines": {
            "post": {
                "tags": ["medicines"],
                "summary": "Registrar medicina",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Medicina", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/medicines.createMedicineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/medicines.MedicineResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/api/medicines/daily": {
            "get": {
                "tags": ["medicines"],
                "summary": "Tomas del día",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medicines.MedicineResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/api/medicines/{id}/status": {
            "patch": {
                "tags": ["medicines"],
                "summary": "Marcar toma",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Medicine ID", "name": "id", "in": "path", "required": true},
                    {"description": "Status", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/medicines.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medicines.MedicineResponse"}},
                    "400": {"description": "invalid status", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/api/me/profile": {
            "get": {
                "tags": ["profiles"],
                "summary": "Ver perfil",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profiles.profileResponse"}},
                    "404": {"description": "profile not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "tags": ["profiles"],
                "summary": "Crear o reemplazar perfil",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Perfil", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/profiles.upsertProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profiles.profileResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}}
                }
            }
        },
        "/api/ai/generate": {
            "post": {
                "tags": ["ai"],
                "summary": "Generar schedule con IA",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schedule.generateResponse"}},
                    "404": {"description": "profile not found", "schema": {"type": "string"}},
                    "429": {"description": "rate limit exceeded", "schema": {"type": "string"}}
                }
            }
        },
        "/api/ai/apply": {
            "post": {
                "tags": ["ai"],
                "summary": "Aplicar schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Schedule a aplicar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schedule.applyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medicines.MedicineResponse"}}},
                    "400": {"description": "optimizedSchedule array is required", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "medicines.MedicineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string", "example": "08:00"},
                "duration": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "taken", "missed"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "medicines.createMedicineRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string", "example": "08:00"},
                "duration": {"type": "string"}
            }
        },
        "medicines.updateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "taken", "missed"]}
            }
        },
        "profiles.profileResponse": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "conditions": {"type": "array", "items": {"type": "string"}},
                "updatedAt": {"type": "string"}
            }
        },
        "profiles.upsertProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "conditions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "schedule.Entry": {
            "type": "object",
            "properties": {
                "time": {"type": "string", "example": "08:00"},
                "medicines": {"type": "array", "items": {"type": "string"}},
                "notes": {"type": "string"}
            }
        },
        "schedule.Result": {
            "type": "object",
            "properties": {
                "optimizedSchedule": {"type": "array", "items": {"$ref": "#/definitions/schedule.Entry"}},
                "precautions": {"type": "array", "items": {"type": "string"}},
                "doctorWarning": {"type": "string"},
                "raw": {}
            }
        },
        "schedule.generateResponse": {
            "type": "object",
            "properties": {
                "aiResult": {"$ref": "#/definitions/schedule.Result"}
            }
        },
        "schedule.applyRequest": {
            "type": "object",
            "properties": {
                "optimizedSchedule": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Medicine Reminder API",
	Description:      "Recordatorio de medicinas para adultos mayores con schedule diario asistido por IA.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
