package computation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/regist_compute", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body := struct {
			Addr string `json:"addr"`
		}{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = body.Addr
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, Register(context.Background(), ts.URL+"/", "10.0.0.2:5000"))
	assert.Equal(t, "10.0.0.2:5000", got)
}

func TestRegisterRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "addr is required", http.StatusBadRequest)
	}))
	defer ts.Close()

	err := Register(context.Background(), ts.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr is required")
}
