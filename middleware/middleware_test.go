package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema"
)

func llama(t *testing.T) *skema.Type {
	t.Helper()
	typ, err := skema.Compile(skema.Define("Llama",
		skema.Field("name", skema.Text),
		skema.Field("age", skema.Number),
	))(skema.Config{Required: []string{"name"}})
	require.NoError(t, err)
	return typ
}

func TestValidateJSON_PassesInstance(t *testing.T) {
	var got *skema.Instance
	h := ValidateJSON(llama(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in, ok := InstanceFromContext(r.Context())
		require.True(t, ok)
		got = in
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ABC","age":13}`)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "ABC", got.Get("name"))
	assert.Equal(t, 13.0, got.Get("age"))
}

func TestValidateJSON_RejectsInvalidBody(t *testing.T) {
	h := ValidateJSON(llama(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ABC","age":"13"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, skema.CodeInvalidType, body["code"])
	assert.Equal(t, "/age", body["pointer"])
	assert.Equal(t, "age<number>", body["trail"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "decode json")
}

func TestInstanceFromContext_Missing(t *testing.T) {
	_, ok := InstanceFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
