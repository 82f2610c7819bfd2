package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/httpclient"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

const DefaultBaseURL = "https://viacep.com.br"

// Client resolves CEPs against the public ViaCEP directory.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

func New(baseURL string, hc *httpclient.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type lookupResponse struct {
	Cep        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	Uf         string `json:"uf"`
	// ViaCEP signals an unknown CEP with an "erro" field whose type has
	// changed between API revisions (boolean vs string). Presence is the
	// signal, not the value.
	Erro json.RawMessage `json:"erro"`
}

// Resolve looks up a normalized 8-digit CEP.
func (c *Client) Resolve(ctx context.Context, cep string) (_ ports.Address, err error) {
	defer obs.Time(ctx, c.logger, "viacep.Resolve")(&err)

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)

	var decoded lookupResponse
	if err := c.http.GetJSON(ctx, url, nil, &decoded); err != nil {
		c.logger.Warn("viacep lookup failed", zap.String("cep", cep), zap.Error(err))
		return ports.Address{}, fmt.Errorf("viacep: lookup %s: %w", cep, domain.ErrUpstreamUnavailable)
	}

	if len(decoded.Erro) > 0 {
		return ports.Address{}, fmt.Errorf("viacep: cep %s: %w", cep, domain.ErrAddressNotFound)
	}

	return ports.Address{
		CEP:        cep,
		Logradouro: decoded.Logradouro,
		Bairro:     decoded.Bairro,
		Localidade: decoded.Localidade,
		UF:         decoded.Uf,
	}, nil
}

// Ping checks directory reachability with a known CEP (Av. Paulista).
func (c *Client) Ping(ctx context.Context) error {
	var decoded lookupResponse
	return c.http.GetJSON(ctx, c.baseURL+"/ws/01310100/json/", nil, &decoded)
}
