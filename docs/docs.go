// Package docs holds the Swagger specification served at /swagger/index.html.
// Regenerate with: swag init -g cmd/gateway/main.go
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate against the finance backend and establish a session",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string"},
                                "password": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Session established"},
                    "401": {"description": "Invalid credentials"},
                    "502": {"description": "Backend unreachable"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Clear the session credentials",
                "responses": {
                    "200": {"description": "Session cleared"}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Return the authenticated user's profile",
                "responses": {
                    "200": {"description": "Current user"},
                    "401": {"description": "No active session"}
                }
            }
        },
        "/api/subscriptions/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Return the caller's subscription record",
                "responses": {
                    "200": {"description": "Subscription record"},
                    "404": {"description": "No subscription on file"}
                }
            }
        },
        "/api/expenses/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Aggregate the caller's expenses across reporting dimensions",
                "responses": {
                    "200": {"description": "Expense summary"}
                }
            }
        },
        "/api/todos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "List the caller's todo items in display order",
                "responses": {
                    "200": {"description": "Todo list"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Process alive"}
                }
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
	Title:            "CFO Web Finance Gateway",
	Description:      "Session, access-control, and data gateway for the CFO web dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
