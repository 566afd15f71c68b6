package order

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	stderrors "whatsapp-orderbot/internal/common/errors"
)

// detailSchema constrains the order detail bag before it reaches the store.
// Every creation path stamps created_via and agent_processed; the remaining
// fields are free-form strings.
const detailSchema = `{
	"type": "object",
	"properties": {
		"product": {"type": "string"},
		"customer_name": {"type": "string"},
		"customer_phone": {"type": "string"},
		"address": {"type": "string"},
		"notes": {"type": "string"},
		"created_via": {"type": "string", "enum": ["whatsapp", "whatsapp_guided"]},
		"agent_processed": {"type": "boolean"}
	},
	"required": ["created_via", "agent_processed"],
	"additionalProperties": false
}`

var detailSchemaLoader = gojsonschema.NewStringLoader(detailSchema)

func validateDetails(details map[string]interface{}) error {
	result, err := gojsonschema.Validate(detailSchemaLoader, gojsonschema.NewGoLoader(details))
	if err != nil {
		return fmt.Errorf("validate order details: %w", err)
	}
	if !result.Valid() {
		return stderrors.NewOrderValidationFailedError(result.Errors()[0].String())
	}
	return nil
}
