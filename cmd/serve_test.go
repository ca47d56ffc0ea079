package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/makampitch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExtract(t *testing.T) {
	useConfig(t)
	body, err := json.Marshal(twoContours)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/extract?source=song", bytes.NewReader(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert := assert.New(t)
	assert.NotEmpty(resp.RequestID)
	assert.Len(resp.Pitch, 10)
	assert.Equal("song", resp.Settings.Source)
}

func TestHandleExtractRejectsBadInput(t *testing.T) {
	useConfig(t)
	for name, body := range map[string]string{
		"malformed": "{",
		"mismatch":  `{"duration": 1, "contours": [{"start_time": 0, "bins": [1, 2], "saliences": [1]}]}`,
		"too long":  `{"duration": 1e12, "contours": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader([]byte(body)))
			w := httptest.NewRecorder()
			HandleExtract(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleExtractContourPastTheEnd(t *testing.T) {
	useConfig(t)
	body := `{"duration": 1, "contours": [{"start_time": 1e17, "bins": [1], "saliences": [1]}]}`
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Pitch, 4)
	for _, row := range resp.Pitch {
		assert.Zero(t, row[1])
	}
}

func TestRouterSettingsAndHealth(t *testing.T) {
	useConfig(t)
	router := NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var settings model.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, 4, settings.SampleRate)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/extract", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
