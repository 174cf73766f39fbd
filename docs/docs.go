// Package docs registers the swagger document of the main service.
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
        "/admin/users": {
            "post": {
                "tags": [
                    "admin-users"
                ],
                "summary": "Register a user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "admin-users"
                ],
                "summary": "List users",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "array",
                        "items": {
                            "type": "integer"
                        },
                        "collectionFormat": "csv",
                        "name": "ids",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/users/{userId}": {
            "delete": {
                "tags": [
                    "admin-users"
                ],
                "summary": "Delete a user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/categories": {
            "post": {
                "tags": [
                    "admin-categories"
                ],
                "summary": "Create a category",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/categories/{catId}": {
            "patch": {
                "tags": [
                    "admin-categories"
                ],
                "summary": "Rename a category",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "catId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "admin-categories"
                ],
                "summary": "Delete a category",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "catId",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/events": {
            "get": {
                "tags": [
                    "admin-events"
                ],
                "summary": "Search events (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "users",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "states",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "categories",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "rangeStart",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "rangeEnd",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/events/{eventId}": {
            "patch": {
                "tags": [
                    "admin-events"
                ],
                "summary": "Moderate or edit an event (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/compilations": {
            "post": {
                "tags": [
                    "admin-compilations"
                ],
                "summary": "Create a compilation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "compilation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/compilations/{compId}": {
            "patch": {
                "tags": [
                    "admin-compilations"
                ],
                "summary": "Edit a compilation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "compId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "compilation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "admin-compilations"
                ],
                "summary": "Delete a compilation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "compId",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/users/{userId}/events": {
            "post": {
                "tags": [
                    "private-events"
                ],
                "summary": "Create an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "tags": [
                    "private-events"
                ],
                "summary": "List the user's events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/users/{userId}/events/{eventId}": {
            "get": {
                "tags": [
                    "private-events"
                ],
                "summary": "Get one of the user's events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "private-events"
                ],
                "summary": "Edit one of the user's events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/users/{userId}/events/{eventId}/requests": {
            "get": {
                "tags": [
                    "private-requests"
                ],
                "summary": "List requests for one of the user's events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "private-requests"
                ],
                "summary": "Confirm or reject a batch of requests",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/users/{userId}/requests": {
            "post": {
                "tags": [
                    "private-requests"
                ],
                "summary": "Request to join an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "eventId",
                        "in": "query",
                        "required": true
                    }
                ]
            },
            "get": {
                "tags": [
                    "private-requests"
                ],
                "summary": "List the user's participation requests",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/users/{userId}/requests/{requestId}/cancel": {
            "patch": {
                "tags": [
                    "private-requests"
                ],
                "summary": "Cancel a participation request",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "requestId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/categories": {
            "get": {
                "tags": [
                    "public-categories"
                ],
                "summary": "List categories",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/categories/{catId}": {
            "get": {
                "tags": [
                    "public-categories"
                ],
                "summary": "Get a category",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "catId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/compilations": {
            "get": {
                "tags": [
                    "public-compilations"
                ],
                "summary": "List compilations",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "boolean",
                        "name": "pinned",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/compilations/{compId}": {
            "get": {
                "tags": [
                    "public-compilations"
                ],
                "summary": "Get a compilation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "compId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "public-events"
                ],
                "summary": "Search published events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "text",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "categories",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "boolean",
                        "name": "paid",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "rangeStart",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "rangeEnd",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "boolean",
                        "name": "onlyAvailable",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "sort",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "from",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "name": "size",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/events/{id}": {
            "get": {
                "tags": [
                    "public-events"
                ],
                "summary": "Get a published event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin token: \"Bearer <jwt>\"",
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
	Title:            "eventboard API",
	Description:      "Event publishing: moderation, participation requests and public search.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
