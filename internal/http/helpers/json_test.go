package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestReadJSON(t *testing.T) {
	var dst payload
	err := ReadJSON(jsonRequest(`{"name":"sopa"}`, "application/json"), &dst)
	require.NoError(t, err)
	assert.Equal(t, "sopa", dst.Name)
}

func TestReadJSONContentTypeCharset(t *testing.T) {
	var dst payload
	err := ReadJSON(jsonRequest(`{"name":"sopa"}`, "application/json; charset=utf-8"), &dst)
	require.NoError(t, err)
	assert.Equal(t, "sopa", dst.Name)
}

func TestReadJSONRejectsWrongContentType(t *testing.T) {
	var dst payload
	err := ReadJSON(jsonRequest(`{"name":"sopa"}`, "text/plain"), &dst)
	assert.Error(t, err)
}

func TestReadJSONRejectsEmptyBody(t *testing.T) {
	var dst payload
	err := ReadJSON(jsonRequest("", "application/json"), &dst)
	assert.Error(t, err)
}

func TestReadJSONRejectsTrailingGarbage(t *testing.T) {
	var dst payload
	err := ReadJSON(jsonRequest(`{"name":"a"}{"name":"b"}`, "application/json"), &dst)
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, payload{Name: "sopa"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "sopa", got.Name)
}
