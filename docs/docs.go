// Package docs registers the OpenAPI description served at /swagger.
//
// The template is maintained by hand, not generated. Keep it in step with the
// handler annotations in internal/api/itinerary; docs_test.go fails when a
// route or a types field is missing here.
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
        "/itineraries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "List Itineraries",
                "responses": {
                    "200": {"description": "Itineraries", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.Itinerary"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Save Itinerary",
                "parameters": [{"name": "itinerary", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.Itinerary"}}],
                "responses": {
                    "201": {"description": "Saved itinerary", "schema": {"$ref": "#/definitions/types.Itinerary"}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Generate Itinerary",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.GenerateItineraryRequest"}}],
                "responses": {
                    "200": {"description": "Generated itinerary", "schema": {"$ref": "#/definitions/types.Itinerary"}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Get Itinerary",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Itinerary", "schema": {"$ref": "#/definitions/types.Itinerary"}},
                    "404": {"description": "Itinerary Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Replace Itinerary",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "itinerary", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.Itinerary"}}
                ],
                "responses": {
                    "200": {"description": "Updated itinerary", "schema": {"$ref": "#/definitions/types.Itinerary"}},
                    "404": {"description": "Itinerary Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Itineraries"],
                "summary": "Delete Itinerary",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Itinerary Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries/{id}/days/{day}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Get Itinerary Day",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "day", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Day plan", "schema": {"$ref": "#/definitions/types.DayPlan"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        }
    },
    "definitions": {
        "types.Activity": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "types.DayPlan": {
            "type": "object",
            "properties": {
                "day": {"type": "integer"},
                "date": {"type": "string"},
                "activities": {"type": "array", "items": {"$ref": "#/definitions/types.Activity"}},
                "accommodation": {"type": "string"},
                "transportation": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "types.Recommendations": {
            "type": "object",
            "properties": {
                "dining": {"type": "array", "items": {"type": "string"}},
                "attractions": {"type": "array", "items": {"type": "string"}},
                "shopping": {"type": "array", "items": {"type": "string"}},
                "transportation": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.Itinerary": {
            "type": "object",
            "required": ["tripName", "source", "destination"],
            "properties": {
                "id": {"type": "string"},
                "ownerId": {"type": "string"},
                "tripName": {"type": "string"},
                "source": {"type": "string"},
                "destination": {"type": "string"},
                "numberOfDays": {"type": "integer", "minimum": 1},
                "notes": {"type": "string"},
                "dayPlans": {"type": "array", "items": {"$ref": "#/definitions/types.DayPlan"}},
                "recommendations": {"$ref": "#/definitions/types.Recommendations"},
                "estimatedBudget": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "fallbackUsed": {"type": "boolean"}
            }
        },
        "types.GenerateItineraryRequest": {
            "type": "object",
            "required": ["source", "destination", "numberOfDays"],
            "properties": {
                "source": {"type": "string"},
                "destination": {"type": "string"},
                "numberOfDays": {"type": "integer", "minimum": 1, "maximum": 30},
                "notes": {"type": "string", "maxLength": 2000}
            }
        },
        "types.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "message": {"type": "string"},
                "error": {"type": "string", "example": "Itinerary not found"},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Itinerary Planner API",
	Description:      "Generates, stores and serves day-by-day travel itineraries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
