// Package docs registers the dashboard API description with swag.
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
        "/launches/sites": {
            "get": {
                "description": "Launch site selector options, \"All Sites\" first, plus the payload slider bounds",
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "List launch sites",
                "responses": {
                    "200": {"description": "Site options", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/launches/outcomes": {
            "get": {
                "description": "Success vs failed launch counts for one site or all sites",
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "Launch outcomes",
                "parameters": [
                    {"type": "string", "description": "Launch site, omit for every site", "name": "site", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Pie panel", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/launches/payload": {
            "get": {
                "description": "Launches of one site or all sites whose payload mass lies in [min, max]",
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "Payload outcomes",
                "parameters": [
                    {"type": "string", "description": "Launch site, omit for every site", "name": "site", "in": "query"},
                    {"type": "number", "description": "Lowest payload mass (kg), defaults to the data minimum", "name": "min", "in": "query"},
                    {"type": "number", "description": "Highest payload mass (kg), defaults to the data maximum", "name": "max", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Scatter panel", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Invalid payload range", "schema": {"type": "string"}}
                }
            }
        },
        "/sales/years": {
            "get": {
                "description": "Year selector options for yearly statistics",
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "List years",
                "responses": {
                    "200": {"description": "Year options", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/sales/report": {
            "get": {
                "description": "Yearly or recession period statistics. A yearly report without a year returns state awaiting_year and no panels.",
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Sales report",
                "parameters": [
                    {"type": "string", "description": "yearly or recession (dropdown labels accepted)", "name": "stat", "in": "query", "required": true},
                    {"type": "integer", "description": "Year, required for yearly reports, ignored for recession reports", "name": "year", "in": "query"},
                    {"type": "string", "description": "Reorder panel tables by group, record_count or a metric column", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc (default) or desc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Invalid statistics kind or year", "schema": {"type": "string"}}
                }
            }
        },
        "/sales/aggregate": {
            "get": {
                "description": "Filters sales by vehicle type and sales range, then groups by a column and reduces one or more numeric columns over the same rows",
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Sales aggregate",
                "parameters": [
                    {"type": "string", "description": "Group column, defaults to Year", "name": "group", "in": "query"},
                    {"type": "string", "description": "Comma separated numeric columns, defaults to Automobile_Sales", "name": "target", "in": "query"},
                    {"type": "string", "description": "mean (default), sum or count", "name": "op", "in": "query"},
                    {"type": "string", "description": "Vehicle type, omit for every type", "name": "vehicle", "in": "query"},
                    {"type": "number", "description": "Lowest Automobile_Sales value", "name": "min", "in": "query"},
                    {"type": "number", "description": "Highest Automobile_Sales value", "name": "max", "in": "query"},
                    {"type": "string", "description": "Reorder by group, record_count or a target column", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc (default) or desc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Derived table", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Invalid selection", "schema": {"type": "string"}}
                }
            }
        },
        "/cache/stats": {
            "get": {
                "description": "Entry count and hit/miss counters of the in-memory result cache",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Cache statistics",
                "responses": {
                    "200": {"description": "Cache statistics", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "handler.Envelope": {
            "type": "object",
            "properties": {
                "snapshot_id": {"type": "string"},
                "generated_at": {"type": "string"},
                "cached": {"type": "boolean"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dashboard Pipeline API",
	Description:      "Filtered and aggregated launch and automobile sales tables for dashboard charts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
