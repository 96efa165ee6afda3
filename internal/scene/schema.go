package scene

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Faultbox/cubeforge/pkg/document"
)

const schemaURL = "https://github.com/Faultbox/cubeforge/scene.schema.json"

//go:embed scene.schema.json
var sceneSchemaSource string

var schemas struct {
	once   sync.Once
	scene  *jsonschema.Schema
	entity *jsonschema.Schema
	err    error
}

func compileSchemas() error {
	schemas.once.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(sceneSchemaSource)); err != nil {
			schemas.err = fmt.Errorf("adding scene schema: %w", err)
			return
		}
		if schemas.scene, schemas.err = c.Compile(schemaURL); schemas.err != nil {
			return
		}
		schemas.entity, schemas.err = c.Compile(schemaURL + "#/$defs/entity")
	})
	return schemas.err
}

// ValidateDocument checks the top-level scene shape.
func ValidateDocument(doc *document.Object) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	return schemas.scene.Validate(document.ObjectValue(doc).Interface())
}

// ValidateEntity checks one entity record.
func ValidateEntity(v document.Value) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	return schemas.entity.Validate(v.Interface())
}
