package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"schoolmatch/domain"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type addressResolver struct {
	baseURL string
}

// NewAddressResolver returns a resolver for a ViaCEP style service answering GET {baseURL}/{cep}/json/.
func NewAddressResolver(baseURL string) domain.AddressResolver {
	return &addressResolver{
		baseURL: baseURL,
	}
}

type postalLookupResponse struct {
	Logradouro string      `json:"logradouro"`
	Bairro     string      `json:"bairro"`
	Localidade string      `json:"localidade"`
	UF         string      `json:"uf"`
	Erro       interface{} `json:"erro"`
}

// notFound reports the error indicator, sent either as a bool or as the string "true".
func (r *postalLookupResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	default:
		return true
	}
}

func (ar *addressResolver) Resolve(ctx context.Context, postalCode string) (*domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPostalCode, err)
	}

	agent := fiber.Get(fmt.Sprintf("%s/%s/json/", ar.baseURL, url.PathEscape(postalCode)))
	// send the escaped path as built, fasthttp would otherwise decode %2F and collapse ".."
	agent.Request().URI().DisablePathNormalizing = true
	if agent.HostClient != nil {
		agent.HostClient.DisablePathNormalizing = true
	}
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			fiber.ReleaseAgent(agent)
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPostalCode, context.DeadlineExceeded)
		}
		agent.Timeout(remaining)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: lookup for %q failed: %w", domain.ErrInvalidPostalCode, postalCode, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("%w: lookup for %q returned status %d", domain.ErrInvalidPostalCode, postalCode, code)
	}

	var res postalLookupResponse
	if err := sonic.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: could not decode lookup response: %w", domain.ErrInvalidPostalCode, err)
	}
	if res.notFound() {
		return nil, fmt.Errorf("%w: no address for %q", domain.ErrInvalidPostalCode, postalCode)
	}

	return &domain.Address{
		Street:   res.Logradouro,
		District: res.Bairro,
		City:     res.Localidade,
		State:    res.UF,
	}, nil
}
