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
        "/api/v1/runs": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "List recorded runs",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum number of runs",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.RunsResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "503": {"description": "Run history disabled", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/v1/runs/last": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Last run summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RunSummary"}},
                    "404": {"description": "No run has finished yet", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sync": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Queue a sync run",
                "responses": {
                    "202": {"description": "Run queued", "schema": {"$ref": "#/definitions/server.TriggerResponse"}},
                    "409": {"description": "A run is already pending", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}},
                    "503": {"description": "Run history database unreachable", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.RecordFailure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "source": {"type": "string"},
                "source_id": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "domain.RunSummary": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "dry_run": {"type": "boolean"},
                "error": {"type": "string"},
                "failed": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/domain.RecordFailure"}},
                "finished_at": {"type": "string"},
                "processed": {"type": "integer"},
                "run_id": {"type": "string"},
                "skipped": {"type": "integer"},
                "sources": {"type": "array", "items": {"type": "string"}},
                "started_at": {"type": "string"},
                "updated": {"type": "integer"}
            }
        },
        "repository.RunLogEntry": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "dry_run": {"type": "boolean"},
                "error": {"type": "string"},
                "failed": {"type": "integer"},
                "finished_at": {"type": "string"},
                "processed": {"type": "integer"},
                "run_id": {"type": "string"},
                "skipped": {"type": "integer"},
                "sources": {"type": "array", "items": {"type": "string"}},
                "started_at": {"type": "string"},
                "updated": {"type": "integer"}
            }
        },
        "server.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "server.RunsResponse": {
            "type": "object",
            "properties": {
                "runs": {"type": "array", "items": {"$ref": "#/definitions/repository.RunLogEntry"}}
            }
        },
        "server.TriggerResponse": {
            "type": "object",
            "properties": {
                "running": {"type": "boolean"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
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
	Title:            "Assignment Sync API",
	Description:      "Trigger and inspect Canvas and Google Calendar to Notion sync runs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
