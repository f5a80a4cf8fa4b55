package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Rota API",
        "description": "Shift scheduling service for retail branches",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and session management"},
        {"name": "Users", "description": "User account management"},
        {"name": "Branches", "description": "Branch registry"},
        {"name": "Employees", "description": "Branch rosters"},
        {"name": "Availability", "description": "Weekly availability submission"},
        {"name": "Schedules", "description": "Schedule generation and week views"},
        {"name": "Templates", "description": "Reusable constraint templates"},
        {"name": "Shifts", "description": "Manual shift management"},
        {"name": "Trades", "description": "Shift trading"},
        {"name": "Exports", "description": "Asynchronous schedule exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login with email and password",
                "responses": {"200": {"description": "Token pair"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new pair",
                "responses": {"200": {"description": "Token pair"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current refresh token",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/branches": {
            "get": {
                "tags": ["Branches"],
                "summary": "List branches",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Branches"],
                "summary": "Create branch",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/branches/{id}": {
            "get": {
                "tags": ["Branches"],
                "summary": "Get branch",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Branches"],
                "summary": "Update branch",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "delete": {
                "tags": ["Branches"],
                "summary": "Deactivate branch",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Create employee",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get employee",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Employees"],
                "summary": "Update employee",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Deactivate employee",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/me": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get the caller's roster record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/me/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List the caller's shifts in a date range",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/employees/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List weekly availability windows",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Replace the full weekly availability",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/employees/{id}/availability/{slotId}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete one availability window",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/employees/{id}/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List an employee's shifts in a date range",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedules/generate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Generate a weekly schedule for a branch",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"$ref": "#/responses/Envelope"},
                    "409": {"description": "Week already scheduled"},
                    "412": {"description": "No roster or availability"}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules of a branch",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get a schedule with its shifts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a schedule",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/schedules/{id}/grid": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get the rendered weekly grid",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedules/{id}/settings": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get schedule settings",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Schedules"],
                "summary": "Update schedule settings",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedules/{id}/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List all shifts of a schedule",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedule-templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List constraint templates",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Create a constraint template",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedule-templates/{id}": {
            "delete": {
                "tags": ["Templates"],
                "summary": "Delete a constraint template",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/shifts": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Create a manual shift",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"$ref": "#/responses/Envelope"},
                    "409": {"description": "Overlapping shift"}
                }
            }
        },
        "/shifts/{id}": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Get shift",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "put": {
                "tags": ["Shifts"],
                "summary": "Update shift",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "delete": {
                "tags": ["Shifts"],
                "summary": "Delete shift",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/trades": {
            "get": {
                "tags": ["Trades"],
                "summary": "List trades",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Trades"],
                "summary": "Offer a shift for trade",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/trades/{id}": {
            "get": {
                "tags": ["Trades"],
                "summary": "Get trade",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/trades/{id}/accept": {
            "post": {
                "tags": ["Trades"],
                "summary": "Accept a pending trade",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/trades/{id}/resolve": {
            "post": {
                "tags": ["Trades"],
                "summary": "Approve or reject an accepted trade",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/trades/{id}/cancel": {
            "post": {
                "tags": ["Trades"],
                "summary": "Cancel an offered trade",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/schedules/{id}/exports": {
            "get": {
                "tags": ["Exports"],
                "summary": "List export jobs of a schedule",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a CSV or PDF export",
                "security": [{"BearerAuth": []}],
                "responses": {"202": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export status",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/downloads/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export with a signed token",
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "responses": {
        "Envelope": {
            "description": "Standard response envelope",
            "schema": {"$ref": "#/definitions/ResponseEnvelope"}
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
