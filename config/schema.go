package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema is the structural meta-schema every config layer is checked
// against before merging. It catches wrong-typed sections early with a field
// path, which the struct unmarshaling would otherwise silently zero out.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "server": {
      "type": "object",
      "properties": {
        "host": {"type": "string"},
        "port": {"type": "integer", "minimum": 0, "maximum": 65535},
        "read_timeout": {"type": ["string", "integer"]},
        "write_timeout": {"type": ["string", "integer"]},
        "shutdown_timeout": {"type": ["string", "integer"]},
        "cors_origins": {"type": "array", "items": {"type": "string"}}
      },
      "additionalProperties": false
    },
    "auth": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "api_keys": {"type": "array", "items": {"type": "string"}}
      },
      "additionalProperties": false
    },
    "site": {
      "type": "object",
      "properties": {
        "publisher_name": {"type": "string"},
        "publisher_logo": {"type": "string"},
        "brand_name": {"type": "string"},
        "same_as": {"type": "array", "items": {"type": "string"}},
        "language": {"type": "string"}
      },
      "additionalProperties": false
    },
    "limits": {
      "type": "object",
      "properties": {
        "max_content_chars": {"type": "integer", "minimum": 0},
        "max_field_keys": {"type": "integer", "minimum": 0},
        "max_schema_keys": {"type": "integer", "minimum": 0},
        "max_body_bytes": {"type": "integer", "minimum": 0}
      },
      "additionalProperties": false
    },
    "rate_limit": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "requests_per_second": {"type": "number", "minimum": 0},
        "burst": {"type": "integer", "minimum": 0}
      },
      "additionalProperties": false
    },
    "metrics": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "port": {"type": "integer", "minimum": 0, "maximum": 65535},
        "path": {"type": "string"}
      },
      "additionalProperties": false
    },
    "wordpress": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "base_url": {"type": "string"},
        "username": {"type": "string"},
        "app_password": {"type": "string"},
        "timeout": {"type": ["string", "integer"]}
      },
      "additionalProperties": false
    },
    "logging": {
      "type": "object",
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "error"]},
        "format": {"type": "string", "enum": ["json", "text"]}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// validateStructure checks a raw config layer against the meta-schema.
func validateStructure(raw map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewGoLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("structural validation error: %w", err)
	}

	if !result.Valid() {
		errMsg := "config structure invalid:\n"
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf("  - %s: %s\n", desc.Field(), desc.Description())
		}
		return fmt.Errorf("%s", errMsg)
	}
	return nil
}
