package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwatt/piwatt/internal/errors"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]float64{"total_watts": 4.2})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.NotNil(t, env.Data)
}

func TestWriteJSONFromStructuredError(t *testing.T) {
	var buf bytes.Buffer

	srcErr := errors.New(errors.ErrSource,
		"Telemetry command failed",
		"Check that vcgencmd is installed")
	require.NoError(t, WriteJSONFromError(&buf, srcErr))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SOURCE", env.Error.Code)
	assert.Equal(t, "Telemetry command failed", env.Error.Message)
	assert.Equal(t, "Check that vcgencmd is installed", env.Error.Suggestion)
}

func TestWriteJSONFromPlainError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, assert.AnError))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNKNOWN", env.Error.Code)
}
