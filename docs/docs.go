package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "11JOB Gateway API Documentation",
        "title": "11JOB Gateway API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if the gateway is running",
                "responses": {
                    "200": {
                        "description": "Gateway is healthy"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log in",
                "description": "Authenticate against the 11JOB backend and store the issued tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "user@11job.site"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "password123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "description": "Fetch the full schedule collection from the backend",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Schedule collection"
                    },
                    "502": {
                        "description": "Backend unavailable"
                    }
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create a schedule",
                "description": "Multipart body: a dto JSON part plus optional file parts",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {
                        "description": "Schedule created"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/schedules/view": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Grouped schedule view",
                "description": "Upcoming dates ascending, then past dates ascending, grouped by date",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Grouped view"
                    }
                }
            }
        },
        "/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Search job postings",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Posting page"
                    }
                }
            }
        },
        "/portfolio": {
            "get": {
                "tags": ["Portfolio"],
                "summary": "Get the portfolio",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Portfolio document"
                    },
                    "404": {
                        "description": "No portfolio yet"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "11JOB Gateway API",
	Description:      "11JOB Gateway API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
