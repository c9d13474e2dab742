package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Riskwatch API",
        "description": "Student risk monitoring dashboard backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Magic-link sign-in and demo bypass"},
        {"name": "Students", "description": "Risk roster"},
        {"name": "Dashboard", "description": "Stat-card summary"},
        {"name": "Overrides", "description": "Intervention override workflow"},
        {"name": "Exports", "description": "Roster downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/link": {
            "post": {
                "tags": ["Auth"],
                "summary": "Send a magic sign-in link",
                "responses": {
                    "202": {"description": "Link dispatched"}
                }
            }
        },
        "/auth/verify": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a magic-link token for a session",
                "responses": {
                    "200": {"description": "Session issued"}
                }
            }
        },
        "/auth/demo": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in to the demo roster",
                "responses": {
                    "200": {"description": "Session issued"}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List visible students",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        },
        "/api/v1/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Roster risk summary",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        }
    },
    "definitions": {
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
