// internal/server/validation.go
package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const createChatSchema = `{
	"type": "object",
	"required": ["id_usuario"],
	"properties": {
		"id_usuario": {"type": "integer", "minimum": 1},
		"titulo": {"type": "string", "maxLength": 100}
	}
}`

const renameChatSchema = `{
	"type": "object",
	"required": ["titulo"],
	"properties": {
		"titulo": {"type": "string", "minLength": 1, "maxLength": 100}
	}
}`

const saveMessageSchema = `{
	"type": "object",
	"required": ["id_chat", "contenido"],
	"properties": {
		"id_chat": {"type": "integer", "minimum": 1},
		"contenido": {"type": "string", "minLength": 1},
		"rol": {"type": "string", "enum": ["user", "bot"]}
	}
}`

const oneShotChatSchema = `{
	"type": "object",
	"required": ["mensaje"],
	"properties": {
		"mensaje": {"type": "string", "minLength": 1}
	}
}`

const exportPDFSchema = `{
	"type": "object",
	"required": ["titulo", "contenido"],
	"properties": {
		"titulo": {"type": "string", "minLength": 1},
		"contenido": {"type": "string", "minLength": 1}
	}
}`

const sendEmailSchema = `{
	"type": "object",
	"required": ["email", "titulo", "contenido"],
	"properties": {
		"email": {"type": "string", "format": "email"},
		"titulo": {"type": "string", "minLength": 1},
		"contenido": {"type": "string", "minLength": 1}
	}
}`

// validateBody checks a raw JSON body against a schema and returns a
// human-readable description of every violation.
func validateBody(body []byte, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(violations, "; "))
}
