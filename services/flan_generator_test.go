package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlanGeneratorEnabled(t *testing.T) {
	var nilGen *FlanGenerator
	assert.False(t, nilGen.Enabled())
	assert.False(t, NewFlanGenerator("", "").Enabled())
	assert.True(t, NewFlanGenerator("hf_token", "").Enabled())
}

func TestFlanGeneratorDisabledErrors(t *testing.T) {
	g := NewFlanGenerator("", "")
	_, err := g.GenerateGeneralAnswer("what should I eat?", 1)
	assert.Error(t, err)
}

func TestFlanGeneratorParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/google/flan-t5-base", r.URL.Path)
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text": "  Eat iron-rich foods daily.  "}]`))
	}))
	defer srv.Close()

	g := NewFlanGenerator("hf_token", "")
	g.client.SetBaseURL(srv.URL)

	text, err := g.GenerateGeneralAnswer("what should I eat?", 2)
	require.NoError(t, err)
	assert.Equal(t, "Eat iron-rich foods daily.", text)
}

func TestFlanGeneratorSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model overloaded"}`))
	}))
	defer srv.Close()

	g := NewFlanGenerator("hf_token", "")
	g.client.SetBaseURL(srv.URL)

	_, err := g.GenerateSafetyAnswer("papaya", 1, "is it safe?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
