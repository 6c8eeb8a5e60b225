// Package docs holds the swagger document served at /swagger/doc.json.
// The template is maintained by hand: it lists every route and the bearer scheme, without
// request or response schemas. Keep it in step with the handler annotations.
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
        "/user/login": {"post": {"tags": ["users"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Wrong password"}, "404": {"description": "Unknown e-mail"}}}},
        "/user": {
            "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Sign up", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/user/{id}": {
            "get": {"tags": ["users"], "summary": "Get a user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "responses": {"200": {"description": "OK"}}}
        },
        "/product": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product", "responses": {"201": {"description": "Created"}}}
        },
        "/product/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product", "responses": {"200": {"description": "OK"}, "409": {"description": "Referenced by orders"}}}
        },
        "/cart": {"get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "List carts", "responses": {"200": {"description": "OK"}}}},
        "/cart/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Get the caller's cart", "responses": {"200": {"description": "OK"}}}},
        "/cart/add": {"post": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Add a product to the caller's cart", "responses": {"200": {"description": "OK"}}}},
        "/cart/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Get a cart", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Replace the line items of a cart", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Delete a cart", "responses": {"200": {"description": "OK"}}}
        },
        "/order": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Place an order", "responses": {"201": {"description": "Created"}}}
        },
        "/order/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get an order", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update an order", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Delete an order", "responses": {"200": {"description": "OK"}}}
        },
        "/payment": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "List payments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Record a payment", "responses": {"201": {"description": "Created"}}}
        },
        "/payment/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Get a payment", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Change the status of a payment", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Delete a payment", "responses": {"200": {"description": "OK"}}}
        },
        "/review": {"post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Review a product", "responses": {"201": {"description": "Created"}}}},
        "/review/{productId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "List the reviews of a product", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Review a product", "responses": {"201": {"description": "Created"}}}
        },
        "/review/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Delete a review", "responses": {"200": {"description": "OK"}}}}
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
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Users, catalog, carts, orders, payments and reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
