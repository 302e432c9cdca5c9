// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

// Package docs registers the OpenAPI document served at /swagger/doc.json.
// It mirrors the swag annotations on the API handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Kubernetes liveness probe",
                "responses": {
                    "200": {"description": "Service is alive", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Kubernetes readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service is not ready", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "List report kinds",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.ReportDescriptor"}}}}
                            ]
                        }
                    }
                }
            }
        },
        "/reports/{kind}": {
            "get": {
                "description": "Fetches up to limit unique records (clamped to 10000), walking upstream pagination as needed.",
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Aggregate a report",
                "parameters": [
                    {"type": "string", "description": "Report kind", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Tenant ID (or X-Tenant-ID header)", "name": "tenant", "in": "query"},
                    {"type": "string", "description": "Range start, epoch seconds or RFC3339", "name": "start", "in": "query"},
                    {"type": "string", "description": "Range end, epoch seconds or RFC3339", "name": "end", "in": "query"},
                    {"type": "integer", "description": "Unique records wanted", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Resume cursor from a previous response", "name": "cursor", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/api.ReportResult"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "pagination": {"$ref": "#/definitions/api.PaginationMeta"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"}
            }
        },
        "api.PaginationMeta": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "limit": {"type": "integer"},
                "has_more": {"type": "boolean"},
                "next_cursor": {"type": "string", "x-nullable": true}
            }
        },
        "api.ReportResult": {
            "type": "object",
            "properties": {
                "report": {"type": "string"},
                "records": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "has_more": {"type": "boolean"},
                "next_cursor": {"type": "string", "x-nullable": true},
                "strategy": {"type": "string", "enum": ["single_page", "cursor", "time_slice"]},
                "pages": {"type": "integer"}
            }
        },
        "models.ReportDescriptor": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "description": {"type": "string"},
                "path": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Callboard API",
	Description:      "Aggregated, deduplicated call center reports from a paginated upstream reporting API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
