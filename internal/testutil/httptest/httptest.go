//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PerformRequest sends body as JSON with an optional bearer token.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
	}

	headers := map[string]string{}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}
	if authToken != "" {
		headers["Authorization"] = "Bearer " + authToken
	}
	return PerformRaw(t, router, method, path, raw, headers)
}

// PerformRaw sends the body bytes untouched, for signed payloads.
func PerformRaw(t *testing.T, router *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
