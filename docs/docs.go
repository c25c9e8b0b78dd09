// Package docs registers the OpenAPI document for the swagger UI route.
// Regenerate with: swag init -g cmd/main.go -o docs
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/telemetry": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipment"],
                "summary": "Current shipment snapshot",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipment"],
                "summary": "Submit a sensor reading",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/prediction": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipment"],
                "summary": "Spoilage prediction",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/chaos": {
            "post": {
                "produces": ["application/json"],
                "tags": ["chaos"],
                "summary": "Toggle chaos mode",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/chaos/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chaos"],
                "summary": "Chaos mode status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/reroute": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routing"],
                "summary": "Evaluate candidate routes",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/product": {
            "get": {
                "produces": ["application/json"],
                "tags": ["product"],
                "summary": "Active product profile",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["product"],
                "summary": "Switch the monitored product",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/rescue-points": {
            "get": {
                "produces": ["application/json"],
                "tags": ["product"],
                "summary": "Salvage profile for the active product",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List journal events",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/export/telemetry": {
            "get": {
                "produces": ["application/json", "text/csv"],
                "tags": ["export"],
                "summary": "Export telemetry history",
                "responses": {"200": {"description": "file download"}}
            }
        },
        "/api/v1/export/report": {
            "get": {
                "produces": ["application/json", "text/csv"],
                "tags": ["export"],
                "summary": "Export full shipment report",
                "responses": {"200": {"description": "file download"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cold Chain Monitoring API",
	Description:      "Spoilage prediction, route evaluation and emergency rescue triage for refrigerated cargo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
