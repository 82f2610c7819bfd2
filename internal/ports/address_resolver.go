package ports

import "context"

// Address is the structured record the directory service returns for a CEP.
type Address struct {
	CEP        string
	Logradouro string
	Bairro     string
	Localidade string
	UF         string
}

// AddressResolver resolves a normalized 8-digit CEP to a structured address
// via an external directory lookup.
type AddressResolver interface {
	// Resolve returns the address registered for cep.
	// Fails with domain.ErrAddressNotFound when the directory does not know
	// the CEP, or domain.ErrUpstreamUnavailable on transport failure.
	Resolve(ctx context.Context, cep string) (Address, error)
}
