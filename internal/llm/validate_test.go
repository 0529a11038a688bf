package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardSchema = &Schema{
	Name:        "test-flashcard",
	Description: "A single flashcard",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"front": map[string]any{"type": "string"},
			"back":  map[string]any{"type": "string"},
		},
		"required":             []any{"front", "back"},
		"additionalProperties": false,
	},
}

func TestValidateResponseAccepts(t *testing.T) {
	raw := json.RawMessage(`{"front":"photosynthesis","back":"quá trình quang hợp"}`)
	require.NoError(t, validateResponse(cardSchema, raw))
}

func TestValidateResponseRejectsMissingField(t *testing.T) {
	raw := json.RawMessage(`{"front":"photosynthesis"}`)
	err := validateResponse(cardSchema, raw)
	require.Error(t, err)

	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestValidateResponseRejectsNonJSON(t *testing.T) {
	err := validateResponse(cardSchema, json.RawMessage(`not json`))
	require.Error(t, err)

	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestValidateResponseNilSchemaPasses(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything`)))
}
