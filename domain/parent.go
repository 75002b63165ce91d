package domain

import (
	"context"
	"time"
)

type Parent struct {
	ParentID     int       `gorm:"column:id;primaryKey;autoIncrement"`
	FullName     string    `gorm:"column:nome_completo;type:varchar(100);not null"`
	Phone        string    `gorm:"column:telefone;type:varchar(20);not null"`
	Street       string    `gorm:"column:rua;type:varchar(200);not null"`
	Number       string    `gorm:"column:numero;type:varchar(20);not null"`
	District     string    `gorm:"column:bairro;type:varchar(100);not null"`
	City         string    `gorm:"column:cidade;type:varchar(100);not null"`
	State        string    `gorm:"column:estado;type:varchar(2);not null"`
	PostalCode   string    `gorm:"column:cep;type:varchar(10);not null"`
	ChildAge     int       `gorm:"column:idade_crianca;not null"`
	SpecialNeeds bool      `gorm:"column:necessidades_especiais;not null"`
	Email        string    `gorm:"column:email;type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Parent) TableName() string {
	return "pais"
}

func (p *Parent) SetAddress(postalCode string, addr Address) {
	p.PostalCode = postalCode
	p.Street = addr.Street
	p.District = addr.District
	p.City = addr.City
	p.State = addr.State
}

type ParentCreateRequest struct {
	FullName     string `json:"nome_completo" valid:"required~Full name is required"`
	Phone        string `json:"telefone" valid:"required~Phone is required"`
	Number       string `json:"numero" valid:"required~House number is required"`
	PostalCode   string `json:"cep" valid:"required~Postal code is required"`
	ChildAge     int    `json:"idade_crianca"`
	SpecialNeeds bool   `json:"necessidades_especiais"`
	Email        string `json:"email" valid:"required~Email is required,email~Invalid email format"`
}

func (r *ParentCreateRequest) Validate() error {
	extra := map[string]string{}
	if r.ChildAge < 0 {
		extra["idade_crianca"] = "Child age cannot be negative"
	}
	return validatePayload(r, extra)
}

func (r *ParentCreateRequest) ToParent(addr Address) *Parent {
	p := &Parent{
		FullName:     r.FullName,
		Phone:        r.Phone,
		Number:       r.Number,
		ChildAge:     r.ChildAge,
		SpecialNeeds: r.SpecialNeeds,
		Email:        r.Email,
	}
	p.SetAddress(r.PostalCode, addr)
	return p
}

type ParentUpdateRequest struct {
	FullName     *string `json:"nome_completo"`
	Phone        *string `json:"telefone"`
	Number       *string `json:"numero"`
	PostalCode   *string `json:"cep"`
	ChildAge     *int    `json:"idade_crianca"`
	SpecialNeeds *bool   `json:"necessidades_especiais"`
	Email        *string `json:"email"`
}

func (r *ParentUpdateRequest) Validate() error {
	fields := map[string]string{}
	requireNonBlank(fields, "nome_completo", r.FullName)
	requireNonBlank(fields, "telefone", r.Phone)
	requireNonBlank(fields, "numero", r.Number)
	requireNonBlank(fields, "cep", r.PostalCode)
	requireEmail(fields, "email", r.Email)
	if r.ChildAge != nil && *r.ChildAge < 0 {
		fields["idade_crianca"] = "Child age cannot be negative"
	}
	return fieldsError(fields)
}

func (r *ParentUpdateRequest) ApplyTo(p *Parent, addr *Address) {
	if r.FullName != nil {
		p.FullName = *r.FullName
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Number != nil {
		p.Number = *r.Number
	}
	if r.PostalCode != nil && addr != nil {
		p.SetAddress(*r.PostalCode, *addr)
	}
	if r.ChildAge != nil {
		p.ChildAge = *r.ChildAge
	}
	if r.SpecialNeeds != nil {
		p.SpecialNeeds = *r.SpecialNeeds
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
}

type ParentResponse struct {
	ID           int       `json:"id"`
	FullName     string    `json:"nome_completo"`
	Phone        string    `json:"telefone"`
	Street       string    `json:"rua"`
	Number       string    `json:"numero"`
	District     string    `json:"bairro"`
	City         string    `json:"cidade"`
	State        string    `json:"estado"`
	PostalCode   string    `json:"cep"`
	ChildAge     int       `json:"idade_crianca"`
	SpecialNeeds bool      `json:"necessidades_especiais"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewParentResponse(p *Parent) ParentResponse {
	return ParentResponse{
		ID:           p.ParentID,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Street:       p.Street,
		Number:       p.Number,
		District:     p.District,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		ChildAge:     p.ChildAge,
		SpecialNeeds: p.SpecialNeeds,
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewParentResponses(parents []Parent) []ParentResponse {
	res := make([]ParentResponse, 0, len(parents))
	for i := range parents {
		res = append(res, NewParentResponse(&parents[i]))
	}
	return res
}

type ParentRepo interface {
	CreateParent(ctx context.Context, parent *Parent) error
	GetAllParents(ctx context.Context) ([]Parent, error)
	GetParentByID(ctx context.Context, id int) (*Parent, error)
	UpdateParent(ctx context.Context, id int, apply func(*Parent)) (*Parent, error)
	DeleteParent(ctx context.Context, id int) error
}

type ParentUseCase interface {
	CreateParent(ctx context.Context, req *ParentCreateRequest) (*Parent, error)
	GetAllParents(ctx context.Context) ([]Parent, error)
	GetParentByID(ctx context.Context, id int) (*Parent, error)
	UpdateParent(ctx context.Context, id int, req *ParentUpdateRequest) (*Parent, error)
	DeleteParent(ctx context.Context, id int) error
}
