package domain

import "context"

// Address holds the postal-code group fields. They are always written together.
type Address struct {
	Street   string `json:"rua"`
	District string `json:"bairro"`
	City     string `json:"cidade"`
	State    string `json:"estado"`
}

type AddressResolver interface {
	Resolve(ctx context.Context, postalCode string) (*Address, error)
}
