// Package docs holds the swagger definition of the l2gen API
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
        "/health": {
            "get": {
                "description": "Check if the API is running",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/core.HealthStatus"}
                    }
                }
            }
        },
        "/processors": {
            "get": {
                "description": "List all registered input processors",
                "produces": ["application/json"],
                "tags": ["processors"],
                "summary": "List input processors",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/core.ProcessorInfo"}
                        }
                    }
                }
            }
        },
        "/processors/{name}": {
            "get": {
                "description": "Describe one input processor",
                "produces": ["application/json"],
                "tags": ["processors"],
                "summary": "Describe an input processor",
                "parameters": [
                    {"type": "string", "description": "Processor name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/core.ProcessorInfo"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        },
        "/processors/{name}/inspect": {
            "post": {
                "description": "Configure a private processor instance and run it over an input file",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["processors"],
                "summary": "Inspect an input file",
                "parameters": [
                    {"type": "string", "description": "Processor name", "name": "name", "in": "path", "required": true},
                    {"description": "Input and processor parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.InspectRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.InspectResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "api.InspectRequest": {
            "type": "object",
            "properties": {
                "input_path": {"type": "string"},
                "input_processor_params": {"type": "object", "additionalProperties": true}
            }
        },
        "api.InspectResponse": {
            "type": "object",
            "properties": {
                "input_processor": {"type": "string"},
                "input_path": {"type": "string"},
                "reprojection_info": {"$ref": "#/definitions/model.ReprojectionInfo"},
                "time_range": {"$ref": "#/definitions/model.TimeRange"},
                "time_coverage_start": {"type": "string"},
                "time_coverage_end": {"type": "string"},
                "dims": {"type": "object", "additionalProperties": {"type": "integer"}},
                "coords": {"type": "array", "items": {"type": "string"}},
                "data_vars": {"type": "array", "items": {"type": "string"}}
            }
        },
        "core.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "processors": {"type": "integer"},
                "started_at": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "core.ProcessorInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "input_reader": {"type": "string"},
                "input_reader_params": {"type": "object", "additionalProperties": true}
            }
        },
        "model.ReprojectionInfo": {
            "type": "object",
            "properties": {
                "xy_var_names": {"type": "array", "items": {"type": "string"}},
                "xy_tp_var_names": {"type": "array", "items": {"type": "string"}},
                "xy_crs": {"type": "string"},
                "xy_gcp_step": {"type": "integer"}
            }
        },
        "model.TimeRange": {
            "type": "object",
            "properties": {
                "start": {"type": "number"},
                "end": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "l2gen API",
	Description:      "Inspect Level-2 input products with the l2gen input processors",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
