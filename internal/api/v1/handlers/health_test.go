package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	resp := doJSON(t, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "ok", body["status"])
	assert.GreaterOrEqual(t, body["uptime"].(float64), 0.0)
	assert.Contains(t, []interface{}{"up", "down"}, body["database"])
	assert.NotEmpty(t, body["timestamp"])
}
