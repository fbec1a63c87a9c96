package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/pronos-app/pronos/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := writeSchema(outputPath); err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
	fmt.Printf("Schema generated successfully at %s\n", outputPath)
}

// writeSchema renders the configuration schema as indented JSON into path
func writeSchema(path string) error {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
