package domain

import (
	"context"
	"time"
)

type School struct {
	SchoolID     int          `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string       `gorm:"column:nome;type:varchar(100);not null"`
	Phone        string       `gorm:"column:telefone;type:varchar(20);not null"`
	Street       string       `gorm:"column:rua;type:varchar(200);not null"`
	Number       string       `gorm:"column:numero;type:varchar(20);not null"`
	District     string       `gorm:"column:bairro;type:varchar(100);not null"`
	City         string       `gorm:"column:cidade;type:varchar(100);not null"`
	State        string       `gorm:"column:estado;type:varchar(2);not null"`
	PostalCode   string       `gorm:"column:cep;type:varchar(10);not null"`
	MonthlyFee   float64      `gorm:"column:mensalidade;not null"`
	StudentCount int          `gorm:"column:quantidade_alunos;not null"`
	Methodology  string       `gorm:"column:metodologia;type:varchar(100);not null"`
	Email        string       `gorm:"column:email;type:varchar(100);not null"`
	Rating       *float64     `gorm:"column:avaliacao"`
	Evaluations  []Evaluation `gorm:"foreignKey:SchoolID;references:SchoolID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt    time.Time    `gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime"`
}

func (School) TableName() string {
	return "escola"
}

// SetAddress overwrites the postal code together with every field derived from it.
func (s *School) SetAddress(postalCode string, addr Address) {
	s.PostalCode = postalCode
	s.Street = addr.Street
	s.District = addr.District
	s.City = addr.City
	s.State = addr.State
}

type Evaluation struct {
	EvaluationID  int       `gorm:"column:id;primaryKey;autoIncrement"`
	Score         float64   `gorm:"column:nota;not null"`
	EvaluatorName string    `gorm:"column:nome_avaliador;type:varchar(100);not null"`
	Comment       *string   `gorm:"column:comentario;type:varchar(200)"`
	SchoolID      int       `gorm:"column:escola_id;not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Evaluation) TableName() string {
	return "avaliacao"
}

type SchoolCreateRequest struct {
	Name         string   `json:"nome" valid:"required~Name is required"`
	Phone        string   `json:"telefone" valid:"required~Phone is required"`
	Number       string   `json:"numero" valid:"required~House number is required"`
	PostalCode   string   `json:"cep" valid:"required~Postal code is required"`
	MonthlyFee   float64  `json:"mensalidade"`
	StudentCount int      `json:"quantidade_alunos"`
	Methodology  string   `json:"metodologia" valid:"required~Methodology is required"`
	Email        string   `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Rating       *float64 `json:"avaliacao"`
}

func (r *SchoolCreateRequest) Validate() error {
	extra := map[string]string{}
	if r.MonthlyFee < 0 {
		extra["mensalidade"] = "Monthly fee cannot be negative"
	}
	if r.StudentCount < 0 {
		extra["quantidade_alunos"] = "Student count cannot be negative"
	}
	return validatePayload(r, extra)
}

// ToSchool builds the record to persist. Address fields come from the resolver, never from the payload.
func (r *SchoolCreateRequest) ToSchool(addr Address) *School {
	s := &School{
		Name:         r.Name,
		Phone:        r.Phone,
		Number:       r.Number,
		MonthlyFee:   r.MonthlyFee,
		StudentCount: r.StudentCount,
		Methodology:  r.Methodology,
		Email:        r.Email,
		Rating:       r.Rating,
	}
	s.SetAddress(r.PostalCode, addr)
	return s
}

// SchoolUpdateRequest is a partial update: nil fields keep their stored value.
type SchoolUpdateRequest struct {
	Name         *string  `json:"nome"`
	Phone        *string  `json:"telefone"`
	Number       *string  `json:"numero"`
	PostalCode   *string  `json:"cep"`
	MonthlyFee   *float64 `json:"mensalidade"`
	StudentCount *int     `json:"quantidade_alunos"`
	Methodology  *string  `json:"metodologia"`
	Email        *string  `json:"email"`
	Rating       *float64 `json:"avaliacao"`
}

func (r *SchoolUpdateRequest) Validate() error {
	fields := map[string]string{}
	requireNonBlank(fields, "nome", r.Name)
	requireNonBlank(fields, "telefone", r.Phone)
	requireNonBlank(fields, "numero", r.Number)
	requireNonBlank(fields, "cep", r.PostalCode)
	requireNonBlank(fields, "metodologia", r.Methodology)
	requireEmail(fields, "email", r.Email)
	if r.MonthlyFee != nil && *r.MonthlyFee < 0 {
		fields["mensalidade"] = "Monthly fee cannot be negative"
	}
	if r.StudentCount != nil && *r.StudentCount < 0 {
		fields["quantidade_alunos"] = "Student count cannot be negative"
	}
	return fieldsError(fields)
}

// ApplyTo merges the supplied fields into s. When the postal code is supplied, addr must be its
// resolution and the whole address group is replaced.
func (r *SchoolUpdateRequest) ApplyTo(s *School, addr *Address) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Number != nil {
		s.Number = *r.Number
	}
	if r.PostalCode != nil && addr != nil {
		s.SetAddress(*r.PostalCode, *addr)
	}
	if r.MonthlyFee != nil {
		s.MonthlyFee = *r.MonthlyFee
	}
	if r.StudentCount != nil {
		s.StudentCount = *r.StudentCount
	}
	if r.Methodology != nil {
		s.Methodology = *r.Methodology
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Rating != nil {
		s.Rating = r.Rating
	}
}

type EvaluationCreateRequest struct {
	Score         float64 `json:"nota"`
	EvaluatorName string  `json:"nome_avaliador" valid:"required~Evaluator name is required"`
	Comment       *string `json:"comentario"`
}

func (r *EvaluationCreateRequest) Validate() error {
	extra := map[string]string{}
	if r.Score < 0 {
		extra["nota"] = "Score cannot be negative"
	}
	return validatePayload(r, extra)
}

type SchoolResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"nome"`
	Phone        string    `json:"telefone"`
	Street       string    `json:"rua"`
	Number       string    `json:"numero"`
	District     string    `json:"bairro"`
	City         string    `json:"cidade"`
	State        string    `json:"estado"`
	PostalCode   string    `json:"cep"`
	MonthlyFee   float64   `json:"mensalidade"`
	StudentCount int       `json:"quantidade_alunos"`
	Methodology  string    `json:"metodologia"`
	Email        string    `json:"email"`
	Rating       *float64  `json:"avaliacao"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewSchoolResponse(s *School) SchoolResponse {
	return SchoolResponse{
		ID:           s.SchoolID,
		Name:         s.Name,
		Phone:        s.Phone,
		Street:       s.Street,
		Number:       s.Number,
		District:     s.District,
		City:         s.City,
		State:        s.State,
		PostalCode:   s.PostalCode,
		MonthlyFee:   s.MonthlyFee,
		StudentCount: s.StudentCount,
		Methodology:  s.Methodology,
		Email:        s.Email,
		Rating:       s.Rating,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func NewSchoolResponses(schools []School) []SchoolResponse {
	res := make([]SchoolResponse, 0, len(schools))
	for i := range schools {
		res = append(res, NewSchoolResponse(&schools[i]))
	}
	return res
}

type EvaluationResponse struct {
	ID            int       `json:"id"`
	Score         float64   `json:"nota"`
	EvaluatorName string    `json:"nome_avaliador"`
	Comment       *string   `json:"comentario"`
	SchoolID      int       `json:"escola_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewEvaluationResponse(e *Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:            e.EvaluationID,
		Score:         e.Score,
		EvaluatorName: e.EvaluatorName,
		Comment:       e.Comment,
		SchoolID:      e.SchoolID,
		CreatedAt:     e.CreatedAt,
	}
}

func NewEvaluationResponses(evals []Evaluation) []EvaluationResponse {
	res := make([]EvaluationResponse, 0, len(evals))
	for i := range evals {
		res = append(res, NewEvaluationResponse(&evals[i]))
	}
	return res
}

type SchoolRepo interface {
	CreateSchool(ctx context.Context, school *School) error
	GetAllSchools(ctx context.Context) ([]School, error)
	GetSchoolByID(ctx context.Context, id int) (*School, error)
	UpdateSchool(ctx context.Context, id int, apply func(*School)) (*School, error)
	DeleteSchool(ctx context.Context, id int) error
	FilterByMethodology(ctx context.Context, methodology string) ([]School, error)
	FilterByPriceRange(ctx context.Context, minFee, maxFee float64) ([]School, error)
	FilterByMinRating(ctx context.Context, minRating float64) ([]School, error)
	FilterByLocation(ctx context.Context, latitude, longitude float64) ([]School, error)
	CreateEvaluation(ctx context.Context, schoolID int, eval *Evaluation) error
	GetEvaluations(ctx context.Context, schoolID int) ([]Evaluation, error)
}

type SchoolUseCase interface {
	CreateSchool(ctx context.Context, req *SchoolCreateRequest) (*School, error)
	GetAllSchools(ctx context.Context) ([]School, error)
	GetSchoolByID(ctx context.Context, id int) (*School, error)
	UpdateSchool(ctx context.Context, id int, req *SchoolUpdateRequest) (*School, error)
	DeleteSchool(ctx context.Context, id int) error
	FilterByMethodology(ctx context.Context, methodology string) ([]School, error)
	FilterByPriceRange(ctx context.Context, minFee, maxFee float64) ([]School, error)
	FilterByMinRating(ctx context.Context, minRating float64) ([]School, error)
	FilterByLocation(ctx context.Context, latitude, longitude float64) ([]School, error)
	CreateEvaluation(ctx context.Context, schoolID int, req *EvaluationCreateRequest) (*Evaluation, error)
	GetEvaluations(ctx context.Context, schoolID int) ([]Evaluation, error)
}
