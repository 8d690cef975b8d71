// CUE schema validation code.
package catalog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML catalog file using a CUE schema file.
func ValidateWithCue(catalogFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(catalogFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML catalog: %w", err)
	}
	yamlAST, err := yaml.Extract(catalogFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML catalog: %w", err)
	}
	catalogVal := ctx.BuildFile(yamlAST)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	// Merge values with schema
	final := catalogVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}

	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
