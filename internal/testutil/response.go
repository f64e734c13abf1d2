package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/localnerve/socialdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatus verifies the HTTP status code.
// On a mismatch the body is reported and left readable for later decoding.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode == expected {
		return
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewReader(body))
	t.Errorf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.NoErrorf(t, json.Unmarshal(body, target), "Failed to decode JSON. Body: %s", string(body))
}

// AssertNoContent verifies that the response body is empty (for 204s)
func AssertNoContent(t *testing.T, resp *http.Response) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Empty(t, string(body), "Expected empty body for 204 No Content")
}

// AssertErrorEnvelope checks the status and decodes the error envelope, verifying its type
func AssertErrorEnvelope(t *testing.T, resp *http.Response, status int, errorType string) utils.ErrorResponseStruct {
	t.Helper()
	AssertStatus(t, resp, status)

	var envelope utils.ErrorResponseStruct
	ParseJSON(t, resp, &envelope)
	assert.Equal(t, status, envelope.Status)
	assert.False(t, envelope.Ok)
	assert.Equal(t, errorType, envelope.Type)
	assert.NotEmpty(t, envelope.Timestamp)
	assert.NotEmpty(t, envelope.URL)
	return envelope
}
