// Package docs holds the Swagger document served on /swagger/*any.
// Keep it in step with the handler annotations (swag init -g cmd/main.go).
package docs

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
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List logs",
                "parameters": [
                    {"type": "string", "description": "RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", "name": "from", "in": "query"},
                    {"type": "string", "description": "RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD' (date-only is inclusive)", "name": "to", "in": "query"},
                    {"enum": ["RUN_STARTED", "STAGE_STARTED", "STAGE_COMPLETED", "STAGE_FAILED", "RUN_COMPLETED", "RUN_FAILED", "REJECTED", "BUSY"], "type": "string", "description": "Event type", "name": "type", "in": "query"},
                    {"type": "string", "description": "Run id", "name": "run_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/packaging/recommendation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["packaging"],
                "summary": "Recommended sealing time",
                "parameters": [
                    {"enum": ["PA_PE", "PET_PE", "PVDC", "AL_PE", "HIGH_BARRIER"], "type": "string", "description": "Film material", "name": "material", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Recommendation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/packaging/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates the configuration and starts a run in the background.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["packaging"],
                "summary": "Start packaging",
                "parameters": [
                    {"description": "Product and settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PackagingRequest"}}
                ],
                "responses": {
                    "202": {"description": "status, run", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "error, violations", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/packaging/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["packaging"],
                "summary": "Get machine state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MachineState"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/packaging/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Dry run of the safety rules; the machine is not touched.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["packaging"],
                "summary": "Validate configuration",
                "parameters": [
                    {"description": "Product and settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PackagingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ValidationReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/runs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first.",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of runs (default 50, max 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, runs", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/runs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get run",
                "parameters": [
                    {"type": "string", "description": "Run id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PackagingRun"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register operator",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "WebSocket upgrade. Sends {\"type\":\"state\"} every interval and {\"type\":\"event\"} for each controller event. Browsers pass the token as ?token=.",
                "tags": ["stream"],
                "summary": "Machine state and event stream",
                "parameters": [
                    {"type": "string", "description": "Operator token when no Authorization header is sent", "name": "token", "in": "query"},
                    {"type": "string", "description": "State interval, e.g. 2s (max 10s)", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "State interval in ms (max 10000)", "name": "interval_ms", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.PackagingRequest": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/handlers.ProductRequest"},
                "settings": {"$ref": "#/definitions/handlers.SettingsRequest"}
            }
        },
        "handlers.ProductRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Frozen fish fillet"},
                "weight_g": {"type": "number", "example": 500},
                "moisture_pct": {"type": "number", "maximum": 100, "minimum": 0, "example": 75},
                "requires_refrigeration": {"type": "boolean", "example": true},
                "packaging_date": {"type": "string", "example": "2025-06-01"},
                "expiry_date": {"type": "string", "example": "2025-08-30"}
            }
        },
        "handlers.SettingsRequest": {
            "type": "object",
            "required": ["material", "vacuum_level"],
            "properties": {
                "material": {"type": "string", "example": "HIGH_BARRIER"},
                "vacuum_level": {"type": "string", "example": "HIGH"},
                "sealing_temperature_c": {"type": "number", "example": 150},
                "sealing_time_ms": {"type": "integer", "minimum": 0, "example": 1200},
                "use_nitrogen_flushing": {"type": "boolean", "example": true}
            }
        },
        "handlers.authCredentials": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.MachineState": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "state": {"type": "string"},
                "run_id": {"type": "string"},
                "current_stage": {"type": "string"},
                "last_outcome": {"type": "string"},
                "last_error": {"type": "string"},
                "is_running": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "models.PackagingEvent": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "run_id": {"type": "string"},
                "occurred_at": {"type": "string"},
                "type": {"type": "string"},
                "stage": {"type": "string"},
                "description": {"type": "string"},
                "metadata": {}
            }
        },
        "models.PackagingRun": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "operator_id": {"type": "integer"},
                "product": {"type": "object", "additionalProperties": true},
                "settings": {"type": "object", "additionalProperties": true},
                "outcome": {"type": "string"},
                "failed_stage": {"type": "string"},
                "error": {"type": "string"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        },
        "service.Recommendation": {
            "type": "object",
            "properties": {
                "material": {"type": "string"},
                "thickness_mm": {"type": "number"},
                "sealing_time_ms": {"type": "integer"}
            }
        },
        "service.ValidationReport": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "violations": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vacuum Packaging Controller API",
	Description:      "Validates packaging configurations and drives the vacuum packaging machine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
