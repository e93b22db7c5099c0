// Package docs carries the Swagger specification served at /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created"},
                    "400": {"description": "Missing fields or unknown role"},
                    "409": {"description": "Username or email already in use"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with username and password",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token or MFA challenge"},
                    "401": {"description": "Invalid username or password"}
                }
            }
        },
        "/auth/verify-login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Complete an MFA login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.VerifyLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Bearer token"},
                    "401": {"description": "Invalid MFA code"},
                    "404": {"description": "Unknown user"}
                }
            }
        },
        "/auth/update-password": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.UpdatePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password updated"},
                    "401": {"description": "Wrong current password or missing token"}
                }
            }
        },
        "/mfa/generate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["MFA"],
                "summary": "Generate a TOTP secret",
                "responses": {
                    "200": {"description": "Pending secret, URI and QR code"},
                    "401": {"description": "Invalid or missing access token"}
                }
            }
        },
        "/mfa/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["MFA"],
                "summary": "Verify a TOTP code and enable MFA",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.MFAVerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "MFA enabled"},
                    "400": {"description": "No pending secret"},
                    "401": {"description": "Invalid MFA code"}
                }
            }
        },
        "/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "List active projects",
                "responses": {"200": {"description": "Active projects"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "Create a project",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.CreateProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created project"},
                    "403": {"description": "Caller is not an Admin"},
                    "409": {"description": "Project name already in use"}
                }
            }
        },
        "/projects/assigned": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "List the caller's assigned active projects",
                "responses": {
                    "200": {"description": "Assigned active projects"},
                    "403": {"description": "Caller is not a Developer"}
                }
            }
        },
        "/projects/{id}/complete": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "Mark a project completed",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Completed project"},
                    "403": {"description": "Caller is not an Admin"},
                    "404": {"description": "Project not found"}
                }
            }
        },
        "/projects/{projectId}/assign-developer": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "Assign a developer to a project",
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nexusapi.AssignDeveloperRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated project"},
                    "403": {"description": "Caller is not this project's lead"},
                    "404": {"description": "Project or developer not found"},
                    "409": {"description": "Developer already assigned"}
                }
            }
        },
        "/documents/{projectId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Documents"],
                "summary": "List a project's documents",
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Documents, newest first"},
                    "404": {"description": "Project not found"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Documents"],
                "summary": "Upload a document to a project",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "document", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Stored document"},
                    "403": {"description": "Caller may not upload to this project"},
                    "404": {"description": "Project not found"}
                }
            }
        },
        "/documents/download/{docId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Documents"],
                "summary": "Download a document",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "docId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File content"},
                    "404": {"description": "Document or stored file not found"}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {"200": {"description": "status, uptime, version"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks"},
                    "503": {"description": "service not ready"}
                }
            }
        }
    },
    "definitions": {
        "nexusapi.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "roleName": {"type": "string"}
            }
        },
        "nexusapi.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "nexusapi.VerifyLoginRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "nexusapi.UpdatePasswordRequest": {
            "type": "object",
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "nexusapi.MFAVerifyRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        },
        "nexusapi.CreateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "projectLeadEmail": {"type": "string"}
            }
        },
        "nexusapi.AssignDeveloperRequest": {
            "type": "object",
            "properties": {
                "developerEmail": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "PixelForge Nexus API",
	Description:      "Project-management backend: password plus optional TOTP login, role-gated project operations and per-project document storage.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
