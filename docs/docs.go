// Package docs holds the swagger document served at /swagger/*any.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "New account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "The username form field carries the account email.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Exchange credentials for a token pair",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.TokenPair"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": true}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Trade a refresh token for a new token pair",
                "parameters": [
                    {"description": "Refresh token", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.refreshRequest"}},
                    {"type": "string", "description": "Refresh token", "name": "refresh_token", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.TokenPair"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Tokens are stateless; the client discards them.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}}
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update email or username",
                "parameters": [
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.updateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/users/me/password": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Change password",
                "parameters": [
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.passwordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/detection/single": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Detection"],
                "summary": "Classify one text",
                "parameters": [
                    {"description": "Text to classify", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.detectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.DetectionResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/detection/batch": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Items that cannot be stored are counted as failed and listed in errors.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Detection"],
                "summary": "Classify up to 100 texts with one model call",
                "parameters": [
                    {"description": "Texts to classify", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.batchDetectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.batchDetectionResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/detection/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Detection"],
                "summary": "Get one detection",
                "parameters": [{"type": "string", "description": "Detection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.DetectionResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/detection/{id}/analysis": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Detection"],
                "summary": "Get the analysis of one detection",
                "parameters": [{"type": "string", "description": "Detection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.AnalysisResult"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/detection/{id}/propagation": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Detection"],
                "summary": "Get the propagation graph of one detection",
                "parameters": [{"type": "string", "description": "Detection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PropagationResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/history": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Paginated detection history",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size, 1..100", "name": "page_size", "in": "query"},
                    {"type": "boolean", "description": "Only rumors or only non-rumors", "name": "is_rumor", "in": "query"},
                    {"type": "string", "description": "low, medium, high or critical", "name": "risk_level", "in": "query"},
                    {"type": "string", "description": "Earliest created_at (RFC 3339 or YYYY-MM-DD)", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "Latest created_at (RFC 3339 or YYYY-MM-DD)", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.historyPage"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/history/stats": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Counts over the whole history",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HistoryStats"}}}
            }
        },
        "/history/batch": {
            "delete": {
                "security": [{"Bearer": []}],
                "description": "Ids that are missing or owned by someone else are skipped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Delete several detections",
                "parameters": [
                    {"description": "Detection IDs", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.batchDeleteRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/history/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Delete one detection",
                "parameters": [{"type": "string", "description": "Detection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/analysis/overview": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Totals, rumor rate and mean confidence",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.OverviewStats"}}}
            }
        },
        "/analysis/trend": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Daily rumor and verified counts",
                "parameters": [{"type": "integer", "default": 30, "description": "Window in days, 1..365", "name": "days", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrendResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/analysis/category": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Detections per analysis category",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CategoryResponse"}}}
            }
        },
        "/analysis/keywords": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Most frequent analysis keywords",
                "parameters": [{"type": "integer", "default": 50, "description": "Number of keywords, 10..200", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.KeywordsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/analysis/risk-distribution": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Detections per risk level",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RiskDistributionResponse"}}}
            }
        }
    },
    "definitions": {
        "auth.TokenPair": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "is_active": {"type": "boolean"},
                "is_superuser": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handlers.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 100, "minLength": 6},
                "username": {"type": "string", "maxLength": 100, "minLength": 3}
            }
        },
        "handlers.refreshRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handlers.updateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string", "maxLength": 100, "minLength": 3}
            }
        },
        "handlers.passwordRequest": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string", "maxLength": 100, "minLength": 6}
            }
        },
        "handlers.detectionRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string", "maxLength": 5000},
                "include_analysis": {"type": "boolean"},
                "include_propagation": {"type": "boolean"}
            }
        },
        "handlers.batchDetectionRequest": {
            "type": "object",
            "required": ["contents"],
            "properties": {
                "contents": {"type": "array", "maxItems": 100, "minItems": 1, "items": {"type": "string"}},
                "include_analysis": {"type": "boolean"}
            }
        },
        "handlers.batchItemError": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "handlers.batchDetectionResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "success": {"type": "integer"},
                "failed": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/services.DetectionResponse"}},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.batchItemError"}}
            }
        },
        "handlers.batchDeleteRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {"ids": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.historyPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/services.DetectionResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "services.AnalysisResult": {
            "type": "object",
            "properties": {
                "keywords": {"type": "array", "items": {"type": "string"}},
                "sentiment": {"type": "string"},
                "category": {"type": "string"},
                "sources": {"type": "array", "items": {"type": "string"}},
                "fact_check_points": {"type": "array", "items": {"type": "string"}},
                "risk_indicators": {"type": "array", "items": {"type": "string"}}
            }
        },
        "services.DetectionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "is_rumor": {"type": "boolean"},
                "confidence": {"type": "number"},
                "risk_level": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
                "explanation": {"type": "string"},
                "analysis": {"$ref": "#/definitions/services.AnalysisResult"},
                "created_at": {"type": "string"}
            }
        },
        "services.PropagationNode": {
            "type": "object",
            "properties": {
                "node_id": {"type": "string"},
                "parent_id": {"type": "string"},
                "content": {"type": "string"},
                "user_info": {"type": "object"},
                "engagement": {"type": "object"},
                "timestamp": {"type": "string"}
            }
        },
        "services.PropagationResponse": {
            "type": "object",
            "properties": {
                "detection_id": {"type": "string"},
                "nodes": {"type": "array", "items": {"$ref": "#/definitions/services.PropagationNode"}},
                "pattern": {"type": "string"},
                "spread_speed": {"type": "string"},
                "estimated_reach": {"type": "integer"},
                "influence_score": {"type": "number"}
            }
        },
        "services.RiskDistribution": {
            "type": "object",
            "properties": {
                "low": {"type": "integer"},
                "medium": {"type": "integer"},
                "high": {"type": "integer"},
                "critical": {"type": "integer"}
            }
        },
        "services.HistoryStats": {
            "type": "object",
            "properties": {
                "total_records": {"type": "integer"},
                "rumors_count": {"type": "integer"},
                "verified_count": {"type": "integer"},
                "by_risk_level": {"$ref": "#/definitions/services.RiskDistribution"}
            }
        },
        "services.OverviewStats": {
            "type": "object",
            "properties": {
                "total_detections": {"type": "integer"},
                "total_rumors": {"type": "integer"},
                "total_verified": {"type": "integer"},
                "rumor_rate": {"type": "number"},
                "avg_confidence": {"type": "number"}
            }
        },
        "services.TrendPoint": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "rumors": {"type": "integer"},
                "verified": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "services.TrendResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/services.TrendPoint"}},
                "period": {"type": "string"}
            }
        },
        "services.CategoryStat": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "count": {"type": "integer"},
                "percentage": {"type": "number"}
            }
        },
        "services.CategoryResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/services.CategoryStat"}},
                "total": {"type": "integer"}
            }
        },
        "services.KeywordStat": {
            "type": "object",
            "properties": {
                "keyword": {"type": "string"},
                "count": {"type": "integer"},
                "weight": {"type": "number"}
            }
        },
        "services.KeywordsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/services.KeywordStat"}},
                "total_keywords": {"type": "integer"}
            }
        },
        "services.RiskDistributionResponse": {
            "type": "object",
            "properties": {
                "distribution": {"$ref": "#/definitions/services.RiskDistribution"},
                "total": {"type": "integer"}
            }
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
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Rumor Detection API",
	Description:      "Rumor detection backend powered by DeepSeek.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
