// Package docs registers the Swagger document served at /swagger.
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
        "/assessments": {
            "post": {
                "description": "Scores one transcribed answer on six communication dimensions and stores the result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Assessments"],
                "summary": "Assess a transcript",
                "parameters": [
                    {
                        "description": "Assessment request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/assessment.AssessRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/assessment.AssessmentResponse"}},
                    "400": {"description": "Invalid request or transcript too short", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Evaluation or storage failure", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/assessments/batch": {
            "post": {
                "description": "Scores every response of an interview and returns an aggregate summary. Short transcripts are skipped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Assessments"],
                "summary": "Assess an interview",
                "parameters": [
                    {
                        "description": "Batch request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/assessment.BatchAssessRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/assessment.BatchAssessResponse"}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/assessments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Assessments"],
                "summary": "Get an assessment",
                "parameters": [
                    {"type": "string", "description": "Assessment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assessment.AssessmentResponse"}},
                    "404": {"description": "Assessment not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/users/{user_id}/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List a user's assessments",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum results (1-100, default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assessment.HistoryResponse"}}
                }
            }
        },
        "/users/{user_id}/averages": {
            "get": {
                "description": "Per-dimension means over completed assessments. has_data is false when none exist.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user's average scores",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assessment.AveragesResponse"}}
                }
            }
        },
        "/users/{user_id}/trends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user's score trend",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Window in days (1-365, default 30)", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assessment.TrendsResponse"}}
                }
            }
        },
        "/interviews/{interview_id}/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "List an interview's assessments",
                "parameters": [
                    {"type": "string", "description": "Interview ID", "name": "interview_id", "in": "path", "required": true},
                    {"type": "string", "description": "Restrict to one user", "name": "user_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/assessment.AssessmentResponse"}}}
                }
            }
        },
        "/questions/{question_id}/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List a question's recent assessments",
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "question_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum results (1-100, default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/assessment.AssessmentResponse"}}},
                    "400": {"description": "Invalid query", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "assessment.AudioFeaturesRequest": {
            "type": "object",
            "properties": {
                "speaking_rate": {"type": "number"},
                "pause_duration": {"type": "number"},
                "filler_word_count": {"type": "integer"},
                "total_duration": {"type": "number"},
                "word_count": {"type": "integer"}
            }
        },
        "assessment.AssessRequest": {
            "type": "object",
            "required": ["question_id", "transcript", "user_id"],
            "properties": {
                "user_id": {"type": "string"},
                "interview_id": {"type": "string"},
                "question_id": {"type": "string"},
                "question_text": {"type": "string"},
                "transcript": {"type": "string"},
                "audio_features": {"$ref": "#/definitions/assessment.AudioFeaturesRequest"},
                "assessment_type": {"type": "string", "enum": ["practice", "interview", "mock_interview"]}
            }
        },
        "assessment.BatchResponseItem": {
            "type": "object",
            "required": ["question_id"],
            "properties": {
                "question_id": {"type": "string"},
                "question_text": {"type": "string"},
                "transcript": {"type": "string"},
                "audio_features": {"$ref": "#/definitions/assessment.AudioFeaturesRequest"}
            }
        },
        "assessment.BatchAssessRequest": {
            "type": "object",
            "required": ["responses", "user_id"],
            "properties": {
                "user_id": {"type": "string"},
                "interview_id": {"type": "string"},
                "assessment_type": {"type": "string", "enum": ["practice", "interview", "mock_interview"]},
                "responses": {"type": "array", "maxItems": 50, "minItems": 1, "items": {"$ref": "#/definitions/assessment.BatchResponseItem"}}
            }
        },
        "assessment.SubscoresResponse": {
            "type": "object",
            "properties": {
                "fluency": {"type": "number"},
                "clarity_structure": {"type": "number"},
                "grammar_vocabulary": {"type": "number"},
                "pronunciation": {"type": "number"},
                "tone_confidence": {"type": "number"},
                "question_relevance": {"type": "number"}
            }
        },
        "assessment.AssessmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "interview_id": {"type": "string"},
                "question_id": {"type": "string"},
                "question_text": {"type": "string"},
                "assessment_type": {"type": "string"},
                "status": {"type": "string"},
                "overall_score": {"type": "number"},
                "score_level": {"type": "string"},
                "subscores": {"$ref": "#/definitions/assessment.SubscoresResponse"},
                "strengths": {"type": "array", "items": {"type": "string"}},
                "improvements": {"type": "array", "items": {"type": "string"}},
                "summary_comment": {"type": "string"},
                "evaluation_source": {"type": "string"},
                "provider": {"type": "string"},
                "processing_time_ms": {"type": "integer"},
                "error_message": {"type": "string"},
                "completed_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "assessment.BatchSummaryResponse": {
            "type": "object",
            "properties": {
                "average_score": {"type": "number"},
                "average_subscores": {"$ref": "#/definitions/assessment.SubscoresResponse"},
                "total_responses": {"type": "integer"},
                "top_strengths": {"type": "array", "items": {"type": "string"}},
                "top_improvements": {"type": "array", "items": {"type": "string"}},
                "overall_feedback": {"type": "string"}
            }
        },
        "assessment.BatchAssessResponse": {
            "type": "object",
            "properties": {
                "assessments": {"type": "array", "items": {"$ref": "#/definitions/assessment.AssessmentResponse"}},
                "skipped_question_ids": {"type": "array", "items": {"type": "string"}},
                "summary": {"$ref": "#/definitions/assessment.BatchSummaryResponse"}
            }
        },
        "assessment.HistoryResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "assessments": {"type": "array", "items": {"$ref": "#/definitions/assessment.AssessmentResponse"}},
                "count": {"type": "integer"}
            }
        },
        "assessment.AveragesResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "has_data": {"type": "boolean"},
                "total_assessments": {"type": "integer"},
                "average_overall": {"type": "number"},
                "averages": {"$ref": "#/definitions/assessment.SubscoresResponse"},
                "strongest": {"type": "string"},
                "weakest": {"type": "string"}
            }
        },
        "assessment.TrendPointResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "count": {"type": "integer"},
                "mean_overall": {"type": "number"}
            }
        },
        "assessment.TrendsResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "days": {"type": "integer"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/assessment.TrendPointResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Interview Coach Assessment API",
	Description:      "Scores transcribed interview answers on six communication dimensions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
