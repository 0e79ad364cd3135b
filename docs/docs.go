// Package docs registers the OpenAPI document served under /swagger. It is
// maintained by hand alongside the handler annotations.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the presented session token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get the authenticated user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}
                }
            }
        },
        "/categories/add": {
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "Category", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AddCategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories/remove": {
            "delete": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories/modify": {
            "put": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Update a category",
                "parameters": [
                    {"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ModifyCategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories/list": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "parameters": [
                    {"type": "integer", "description": "Offset", "name": "start", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events/submit": {
            "post": {
                "security": [{"JWTAuth": []}],
                "description": "Increments the latest event when it has the same category, otherwise starts a new event.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Record an occurrence of a category",
                "parameters": [
                    {"description": "Event", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SubmitEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events/insert": {
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Record an event at a given time",
                "parameters": [
                    {"description": "Event", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.InsertEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events/remove": {
            "delete": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete events by id set or update-time range",
                "parameters": [
                    {"type": "string", "description": "Inclusive lower bound (RFC 3339 or Unix ms)", "name": "begin", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (RFC 3339 or Unix ms)", "name": "end", "in": "query"},
                    {"type": "string", "description": "JSON array of event ids", "name": "events", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/events/query": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Inclusive lower bound (RFC 3339 or Unix ms)", "name": "begin", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (RFC 3339 or Unix ms)", "name": "end", "in": "query"},
                    {"type": "string", "description": "JSON array of category ids", "name": "categories", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "start", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Event"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "string"}}
        },
        "handler.RegisterRequest": {
            "type": "object",
            "properties": {"displayName": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "timeZone": {"type": "string"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/model.UserInfo"}}
        },
        "handler.AddCategoryRequest": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "context": {"type": "string"}, "name": {"type": "string"}, "start": {"type": "boolean"}}
        },
        "handler.ModifyCategoryRequest": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "context": {"type": "string"}, "id": {"type": "string"}, "name": {"type": "string"}, "start": {"type": "boolean"}}
        },
        "handler.SubmitEventRequest": {
            "type": "object",
            "properties": {"category": {"type": "string"}}
        },
        "handler.InsertEventRequest": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "time": {"type": "string"}}
        },
        "model.UserInfo": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "displayName": {"type": "string"}, "email": {"type": "string"}}
        },
        "model.User": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "createdAt": {"type": "string"}, "displayName": {"type": "string"}, "email": {"type": "string"}, "timeZone": {"type": "string"}, "updatedAt": {"type": "string"}, "verified": {"type": "boolean"}}
        },
        "model.Category": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "code": {"type": "string"}, "context": {"type": "string"}, "createdAt": {"type": "string"}, "name": {"type": "string"}, "start": {"type": "boolean"}, "updatedAt": {"type": "string"}}
        },
        "model.Event": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "category": {"type": "string"}, "count": {"type": "integer"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "JWTAuth": {
            "description": "Type \"JWT\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Time Tracking API",
	Description:      "Personal time tracking: categories and consolidated events, with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
