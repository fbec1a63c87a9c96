package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema []byte

// schemaNode is the subset of JSON schema keywords checked on load
type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Defs       map[string]*schemaNode `json:"$defs"`
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties"`
	Items      *schemaNode            `json:"items"`
	Required   []string               `json:"required"`
	Minimum    *float64               `json:"minimum"`
	MinLength  *int                   `json:"minLength"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var root schemaNode
	if err := json.Unmarshal(embeddedSchema, &root); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(configData, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	return verifyNode(&root, root.Defs, doc, "config")
}

func verifyNode(node *schemaNode, defs map[string]*schemaNode, value interface{}, path string) error {
	if node == nil || value == nil {
		return nil
	}

	if node.Ref != "" {
		name := strings.TrimPrefix(node.Ref, "#/$defs/")
		def, ok := defs[name]
		if !ok {
			return fmt.Errorf("%s: unknown schema reference %s", path, node.Ref)
		}
		node = def
	}

	switch v := value.(type) {
	case map[string]interface{}:
		for _, key := range node.Required {
			if _, ok := v[key]; !ok {
				return fmt.Errorf("%s.%s is required", path, key)
			}
		}
		for key, prop := range node.Properties {
			if err := verifyNode(prop, defs, v[key], path+"."+key); err != nil {
				return err
			}
		}
	case []interface{}:
		for i, elem := range v {
			if err := verifyNode(node.Items, defs, elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case float64:
		if node.Minimum != nil && v < *node.Minimum {
			return fmt.Errorf("%s must be at least %v", path, *node.Minimum)
		}
	case string:
		if node.MinLength != nil && len(v) < *node.MinLength {
			return fmt.Errorf("%s must be at least %d characters", path, *node.MinLength)
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
