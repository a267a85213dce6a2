// Package docs holds the OpenAPI document served under /api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/api/detect-ai": {
      "get": {
        "tags": ["detect"],
        "summary": "Report whether the remote classifier key is configured",
        "responses": {
          "200": {
            "description": "OK",
            "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DetectInfo" } } }
          }
        }
      },
      "post": {
        "tags": ["detect"],
        "summary": "Score a text for AI authorship",
        "security": [ { "bearer": [] } ],
        "requestBody": {
          "required": true,
          "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DetectRequest" } } }
        },
        "responses": {
          "200": {
            "description": "OK",
            "headers": {
              "X-Usage-Count": { "schema": { "type": "integer" } },
              "X-Usage-Limit": { "schema": { "type": "integer" } }
            },
            "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DetectResponse" } } }
          },
          "400": { "$ref": "#/components/responses/DetectError" },
          "401": { "$ref": "#/components/responses/DetectError" },
          "403": { "$ref": "#/components/responses/DetectError" },
          "405": { "$ref": "#/components/responses/DetectError" },
          "429": { "$ref": "#/components/responses/DetectError" },
          "500": { "$ref": "#/components/responses/DetectError" }
        }
      }
    },
    "/api/test-env": {
      "get": {
        "tags": ["detect"],
        "summary": "Classifier key presence and runtime environment",
        "responses": {
          "200": {
            "description": "OK",
            "content": { "application/json": { "schema": { "type": "object" } } }
          }
        }
      }
    },
    "/api/v1/account": {
      "get": {
        "tags": ["account"],
        "summary": "Current account, plan and today's usage",
        "security": [ { "bearer": [] } ],
        "responses": {
          "200": {
            "description": "OK",
            "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AccountEnvelope" } } }
          },
          "401": { "$ref": "#/components/responses/Envelope" }
        }
      }
    },
    "/api/v1/session/sign-out": {
      "post": {
        "tags": ["session"],
        "summary": "Revoke the presented session token",
        "security": [ { "bearer": [] } ],
        "responses": {
          "204": { "description": "No Content" },
          "401": { "$ref": "#/components/responses/Envelope" }
        }
      }
    },
    "/api/v1/meta/health": {
      "get": { "tags": ["meta"], "summary": "Liveness", "responses": { "200": { "$ref": "#/components/responses/Envelope" } } }
    },
    "/api/v1/meta/ready": {
      "get": {
        "tags": ["meta"],
        "summary": "Readiness of every configured backend",
        "responses": {
          "200": { "$ref": "#/components/responses/Envelope" },
          "503": { "$ref": "#/components/responses/Envelope" }
        }
      }
    },
    "/api/v1/meta/service": {
      "get": { "tags": ["meta"], "summary": "Service name and uptime", "responses": { "200": { "$ref": "#/components/responses/Envelope" } } }
    },
    "/api/v1/meta/version": {
      "get": { "tags": ["meta"], "summary": "Build information", "responses": { "200": { "$ref": "#/components/responses/Envelope" } } }
    },
    "/api/v1/meta/classifier": {
      "get": { "tags": ["meta"], "summary": "Configured classifier backend", "responses": { "200": { "$ref": "#/components/responses/Envelope" } } }
    }
  },
  "components": {
    "securitySchemes": {
      "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" }
    },
    "responses": {
      "Envelope": {
        "description": "Envelope",
        "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Envelope" } } }
      },
      "DetectError": {
        "description": "Error",
        "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DetectError" } } }
      }
    },
    "schemas": {
      "Envelope": {
        "type": "object",
        "properties": {
          "status_code": { "type": "integer" },
          "status": { "type": "string" },
          "code": { "type": "integer" },
          "error": { "type": "string" },
          "field": { "type": "string" },
          "request_id": { "type": "string" },
          "data": {}
        }
      },
      "DetectError": {
        "type": "object",
        "required": ["error"],
        "properties": {
          "error": { "type": "string" },
          "details": { "type": "string" }
        }
      },
      "DetectRequest": {
        "type": "object",
        "required": ["text"],
        "properties": { "text": { "type": "string", "minLength": 50 } }
      },
      "DetectInfo": {
        "type": "object",
        "properties": {
          "hasApiKey": { "type": "boolean" },
          "keyPreview": { "type": "string" },
          "environment": { "type": "string" }
        }
      },
      "DetectResponse": {
        "type": "object",
        "properties": {
          "aiProbability": { "type": "integer", "minimum": 0, "maximum": 100 },
          "confidence": { "type": "string", "enum": ["Low", "Medium", "High"] },
          "assessment": { "type": "string", "enum": ["likely-human", "uncertain", "likely-ai"] },
          "textLength": { "type": "integer" },
          "model": { "type": "string" }
        }
      },
      "AccountView": {
        "type": "object",
        "properties": {
          "id": { "type": "string" },
          "email": { "type": "string" },
          "plan": { "type": "string", "enum": ["free", "pro"] },
          "usageCount": { "type": "integer" },
          "dailyLimit": { "type": "integer" },
          "remaining": { "type": "integer", "description": "-1 when unlimited" },
          "lastResetDate": { "type": "string", "format": "date" },
          "createdAt": { "type": "string", "format": "date-time" }
        }
      },
      "AccountEnvelope": {
        "allOf": [
          { "$ref": "#/components/schemas/Envelope" },
          { "type": "object", "properties": { "data": { "$ref": "#/components/schemas/AccountView" } } }
        ]
      }
    }
  }
}`

// SwaggerInfo is the registered document
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "AI Detector API",
	Description:      "Scores text for likely AI authorship and meters usage per account per day.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
