package schema

import (
	"github.com/xeipuuv/gojsonschema"

	apperrors "emdash-brief/pkg/errors"
	"emdash-brief/pkg/models"
)

var requestSchemaLoader = gojsonschema.NewGoLoader(RequestSchema())

// RequestSchema builds the JSON schema of a submission body from the question
// lists. It checks shape only: which answers are required is decided when the
// submission is composed.
func RequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]interface{}{
			"type":        map[string]interface{}{"type": "string"},
			"projectData": dataSchema(models.EntryTypeProjectBrief),
			"contactData": dataSchema(models.EntryTypeContactForm),
		},
	}
}

func dataSchema(entryType models.EntryType) map[string]interface{} {
	props := make(map[string]interface{})
	for _, q := range Questions(entryType) {
		props[q.Key] = map[string]interface{}{
			"type":      "string",
			"maxLength": q.MaxLength,
		}
	}
	return map[string]interface{}{
		"type":       []string{"object", "null"},
		"properties": props,
	}
}

// ValidateRequest checks a raw submission body against RequestSchema and
// returns a ValidationError listing every violation.
func ValidateRequest(body []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(requestSchemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewValidationError(apperrors.ErrCodeInvalidBody, "invalid JSON body", err.Error())
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewValidationError(apperrors.ErrCodeValidationFailed, "request body failed validation", errs...)
	}

	return nil
}
