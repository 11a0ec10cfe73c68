package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mineral Licensing API",
        "description": "Backend for the mining license portal: contact form, license applications and miner dashboards",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "System", "description": "Greeting and probes"},
        {"name": "Contact", "description": "Public contact form"},
        {"name": "License", "description": "License applications"},
        {"name": "Miner", "description": "Licensed miner dashboard"},
        {"name": "UnlicensedMiner", "description": "Applicant dashboard while under review"}
    ],
    "securityDefinitions": {
        "MinerCookie": {"type": "apiKey", "in": "header", "name": "Cookie", "description": "userId=<miner id>"},
        "MinerHeader": {"type": "apiKey", "in": "header", "name": "X-User-ID"}
    },
    "paths": {
        "/": {
            "get": {
                "tags": ["System"],
                "summary": "Greeting",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contact/submit": {
            "post": {
                "tags": ["Contact"],
                "summary": "Submit a contact message",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Database failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contact/get": {
            "get": {
                "tags": ["Contact"],
                "summary": "List contact messages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Database failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/license/submit": {
            "post": {
                "tags": ["License"],
                "summary": "Submit a mining license application",
                "description": "Accepts JSON or a multipart form. Attached documents must be pdf, png, jpg or jpeg.",
                "consumes": ["application/json", "multipart/form-data"],
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "parameters": [
                    {"name": "exploration_license_no", "in": "formData", "type": "string", "required": true},
                    {"name": "applicant_name", "in": "formData", "type": "string", "required": true},
                    {"name": "national_id", "in": "formData", "type": "string", "required": true},
                    {"name": "company_name", "in": "formData", "type": "string", "required": true},
                    {"name": "mineral_type", "in": "formData", "type": "string", "required": true},
                    {"name": "period_of_validity", "in": "formData", "type": "string", "required": true},
                    {"name": "estimated_investment", "in": "formData", "type": "string"},
                    {"name": "mining_plan", "in": "formData", "type": "file"},
                    {"name": "national_id_copy", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing fields or rejected file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "User ID not provided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Database operation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/license/get": {
            "get": {
                "tags": ["License"],
                "summary": "List the caller's applications",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "User ID not provided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/miner/license": {
            "get": {
                "tags": ["Miner"],
                "summary": "License status and expiry",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LicenseSummary"}},
                    "400": {"description": "Invalid or missing active date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "User or application not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/miner/royalty": {
            "get": {
                "tags": ["Miner"],
                "summary": "Royalty due",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RoyaltySummary"}},
                    "404": {"description": "No royalty data found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/miner/announcements": {
            "get": {
                "tags": ["Miner"],
                "summary": "Five newest announcements",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/unlicensedminer/status": {
            "get": {
                "tags": ["UnlicensedMiner"],
                "summary": "Application status",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Application not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/unlicensedminer/application": {
            "get": {
                "tags": ["UnlicensedMiner"],
                "summary": "Full application record",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Application not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/unlicensedminer/documents": {
            "get": {
                "tags": ["UnlicensedMiner"],
                "summary": "Uploaded documents",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/unlicensedminer/upload-document": {
            "post": {
                "tags": ["UnlicensedMiner"],
                "summary": "Upload a supporting document",
                "consumes": ["multipart/form-data"],
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "description", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Uploaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No file uploaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Upload failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/unlicensedminer/announcements": {
            "get": {
                "tags": ["UnlicensedMiner"],
                "summary": "All announcements",
                "security": [{"MinerCookie": []}, {"MinerHeader": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "ContactRequest": {
            "type": "object",
            "required": ["name", "email", "message"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "LicenseSummary": {
            "type": "object",
            "properties": {
                "license_status": {"type": "string"},
                "license_number": {"type": "string"},
                "active_date": {"type": "string", "example": "2024-01-01"},
                "period_of_validity": {"type": "string", "example": "2 years"},
                "expires": {"type": "string", "example": "2025-12-31"}
            }
        },
        "RoyaltySummary": {
            "type": "object",
            "properties": {
                "royalty_amount_due": {"type": "number"},
                "due_by": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"type": "object"},
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "object"},
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
