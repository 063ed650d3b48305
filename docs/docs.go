// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/spendio/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness and database check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login user", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["auth"], "summary": "Refresh access token", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/me": {
            "get": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/change-password": {
            "put": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/expenses": {
            "get": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "List expenses", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Create expense", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/expenses/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Get expense", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Update expense", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Delete expense", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/categories": {
            "get": {"security": [{"Bearer": []}], "tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["categories"], "summary": "Create category", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/categories/{id}": {
            "put": {"security": [{"Bearer": []}], "tags": ["categories"], "summary": "Update category", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["categories"], "summary": "Delete category", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/budgets": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "List budgets", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Create budget", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/budgets/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Get budget", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Update budget", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Delete budget", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/budgets/{id}/toggle": {
            "patch": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Toggle budget", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/goals": {
            "get": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "List goals", "parameters": [{"type": "boolean", "name": "achieved", "in": "query"}, {"type": "boolean", "description": "Alias of achieved", "name": "achieved_only", "in": "query"}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Create goal", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/goals/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Get goal", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Update goal", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Delete goal", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/goals/{id}/add-money": {
            "patch": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Deposit into goal", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/goals/{id}/withdraw": {
            "patch": {"security": [{"Bearer": []}], "tags": ["goals"], "summary": "Withdraw from goal", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analytics/dashboard": {
            "get": {"security": [{"Bearer": []}], "tags": ["analytics"], "summary": "Dashboard totals", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/expenses-by-category": {
            "get": {"security": [{"Bearer": []}], "tags": ["analytics"], "summary": "Spending by category", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/monthly-expenses": {
            "get": {"security": [{"Bearer": []}], "tags": ["analytics"], "summary": "Monthly spending trend", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/budget-status": {
            "get": {"security": [{"Bearer": []}], "tags": ["analytics"], "summary": "Budget risk", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/goals-progress": {
            "get": {"security": [{"Bearer": []}], "tags": ["analytics"], "summary": "Goal progress", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Schemes:          []string{},
	Title:            "Spendio API",
	Description:      "Personal finance tracking: expenses, categories, budgets, savings goals and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
