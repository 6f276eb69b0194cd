package cli

import (
	"encoding/json"
	"io"

	"github.com/piwatt/piwatt/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine
// parsing. All --json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts an error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	jsonErr := &JSONError{Code: "UNKNOWN", Message: err.Error()}

	var structured *errors.Error
	if e, ok := err.(*errors.Error); ok {
		structured = e
	}
	if structured != nil {
		jsonErr.Code = structured.Code
		jsonErr.Message = structured.Message
		jsonErr.Suggestion = structured.Suggestion
	}

	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: jsonErr})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
