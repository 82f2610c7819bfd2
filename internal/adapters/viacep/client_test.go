package viacep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/httpclient"
)

func newClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hc := httpclient.New(httpclient.Config{Timeout: time.Second})
	return New(srv.URL, hc, zap.NewNop()), srv
}

func TestResolve(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws/17017337/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"cep": "17017-337",
			"logradouro": "Rua Aviador Gomes Ribeiro",
			"bairro": "Vila Aviação",
			"localidade": "Bauru",
			"uf": "SP"
		}`))
	}))

	addr, err := c.Resolve(context.Background(), "17017337")
	require.NoError(t, err)
	require.Equal(t, "17017337", addr.CEP)
	require.Equal(t, "Rua Aviador Gomes Ribeiro", addr.Logradouro)
	require.Equal(t, "Bauru", addr.Localidade)
	require.Equal(t, "SP", addr.UF)
}

func TestResolveUnknownCEP(t *testing.T) {
	// ViaCEP answers 200 with an "erro" marker for unknown CEPs
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))

	_, err := c.Resolve(context.Background(), "99999999")
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestResolveUnknownCEPStringMarker(t *testing.T) {
	// newer API revisions send the marker as a string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": "true"}`))
	}))

	_, err := c.Resolve(context.Background(), "99999999")
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestResolveUpstreamFailure(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Resolve(context.Background(), "17017337")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestPing(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws/01310100/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"cep": "01310-100"}`))
	}))

	require.NoError(t, c.Ping(context.Background()))
}
