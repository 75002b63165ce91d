package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"schoolmatch/config"
	"schoolmatch/domain"
	"schoolmatch/services/matching/repository"
	"schoolmatch/services/matching/usecase"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubResolver map[string]domain.Address

func (r stubResolver) Resolve(_ context.Context, postalCode string) (*domain.Address, error) {
	addr, ok := r[postalCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPostalCode, postalCode)
	}
	return &addr, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	resolver := stubResolver{
		"01000-000": {Street: "Rua das Flores", District: "Centro", City: "São Paulo", State: "SP"},
		"20000-000": {Street: "Av. Rio Branco", District: "Centro", City: "Rio de Janeiro", State: "RJ"},
	}

	cfg := config.GetFiberConfig()
	cfg.DisableStartupMessage = true
	app := fiber.New(cfg)
	api := app.Group("/api")
	NewSchoolDelivery(api, usecase.NewSchoolUseCase(repository.NewSchoolRepository(db), resolver, 0))
	NewParentDelivery(api, usecase.NewParentUseCase(repository.NewParentRepository(db), resolver, 0))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(env.Data, v))
}

const schoolPayload = `{
	"nome": "Escola Exemplo",
	"telefone": "(11) 1234-5678",
	"numero": "123",
	"cep": "01000-000",
	"mensalidade": 1500.00,
	"quantidade_alunos": 250,
	"metodologia": "Construtivista",
	"email": "contato@escolaexemplo.com"
}`

func createSchool(t *testing.T, app *fiber.App, body string) domain.SchoolResponse {
	t.Helper()
	status, env := doRequest(t, app, http.MethodPost, "/api/escolas", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var school domain.SchoolResponse
	decodeData(t, env, &school)
	return school
}

func TestSchoolCRUD(t *testing.T) {
	app := newTestApp(t)

	school := createSchool(t, app, schoolPayload)
	assert.NotZero(t, school.ID)
	assert.Equal(t, "Rua das Flores", school.Street)
	assert.Equal(t, "Centro", school.District)
	assert.Equal(t, "São Paulo", school.City)
	assert.Equal(t, "SP", school.State)
	assert.Equal(t, 250, school.StudentCount)
	assert.Nil(t, school.Rating)

	target := fmt.Sprintf("/api/escolas/%d", school.ID)

	t.Run("get", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, status)
		assert.True(t, env.Success)

		var got domain.SchoolResponse
		decodeData(t, env, &got)
		assert.Equal(t, "Escola Exemplo", got.Name)
	})

	t.Run("list", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, "/api/escolas", "")
		require.Equal(t, http.StatusOK, status)

		var got []domain.SchoolResponse
		decodeData(t, env, &got)
		assert.Len(t, got, 1)
	})

	t.Run("partial update", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPut, target, `{"mensalidade": 1800, "cep": "20000-000"}`)
		require.Equal(t, http.StatusOK, status)

		var got domain.SchoolResponse
		decodeData(t, env, &got)
		assert.Equal(t, 1800.0, got.MonthlyFee)
		assert.Equal(t, "RJ", got.State)
		assert.Equal(t, "Escola Exemplo", got.Name)
	})

	t.Run("update with unknown postal code", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPut, target, `{"nome": "Outra", "cep": "99999-999"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, env.Success)
		assert.Equal(t, "Invalid postal code", env.Message)

		_, env = doRequest(t, app, http.MethodGet, target, "")
		var got domain.SchoolResponse
		decodeData(t, env, &got)
		assert.Equal(t, "Escola Exemplo", got.Name)
		assert.Equal(t, "20000-000", got.PostalCode)
	})

	t.Run("delete", func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusNoContent, status)

		status, env := doRequest(t, app, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Record not found", env.Message)

		status, _ = doRequest(t, app, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestSchoolErrors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		status  int
		message string
	}{
		{"unknown postal code", http.MethodPost, "/api/escolas", `{"nome":"X","telefone":"1","numero":"1","cep":"99999-999","metodologia":"Y","email":"a@b.com"}`, http.StatusBadRequest, "Invalid postal code"},
		{"missing required fields", http.MethodPost, "/api/escolas", `{"nome":"X"}`, http.StatusBadRequest, "Invalid request body"},
		{"malformed body", http.MethodPost, "/api/escolas", `{"nome":`, http.StatusBadRequest, "Invalid request body"},
		{"missing school", http.MethodGet, "/api/escolas/999", "", http.StatusNotFound, "Record not found"},
		{"update missing school", http.MethodPut, "/api/escolas/999", `{"nome":"X"}`, http.StatusNotFound, "Record not found"},
		{"non numeric id", http.MethodGet, "/api/escolas/abc", "", http.StatusBadRequest, "Converter failure on id"},
		{"price without bounds", http.MethodGet, "/api/escolas/filtro/preco?min_preco=10", "", http.StatusBadRequest, "Invalid query parameter"},
		{"rating not a number", http.MethodGet, "/api/escolas/filtro/avaliacao?min_avaliacao=abc", "", http.StatusBadRequest, "Invalid query parameter"},
		{"unsupported method", http.MethodPatch, "/api/escolas/1", "", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound, "Cannot GET /api/nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doRequest(t, app, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tc.message, env.Message)
		})
	}

	status, env := doRequest(t, app, http.MethodGet, "/api/escolas", "")
	require.Equal(t, http.StatusOK, status)
	var got []domain.SchoolResponse
	decodeData(t, env, &got)
	assert.Empty(t, got)
}

func TestSchoolFilters(t *testing.T) {
	app := newTestApp(t)

	createSchool(t, app, `{"nome":"A","telefone":"1","numero":"1","cep":"01000-000","mensalidade":800,"metodologia":"Construtivista","email":"a@a.com","avaliacao":4.5}`)
	createSchool(t, app, `{"nome":"B","telefone":"1","numero":"1","cep":"01000-000","mensalidade":1500,"metodologia":"Montessori","email":"b@b.com","avaliacao":3.0}`)
	createSchool(t, app, `{"nome":"C","telefone":"1","numero":"1","cep":"20000-000","mensalidade":2500,"metodologia":"Tradicional","email":"c@c.com"}`)

	names := func(t *testing.T, target string) []string {
		t.Helper()
		status, env := doRequest(t, app, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, status, env.Message)
		var schools []domain.SchoolResponse
		decodeData(t, env, &schools)
		out := make([]string, 0, len(schools))
		for _, s := range schools {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"A"}, names(t, "/api/escolas/filtro/metodologia?metodologia=construt"))
	assert.Equal(t, []string{"A", "B"}, names(t, "/api/escolas/filtro/preco?min_preco=800&max_preco=1500"))
	assert.Empty(t, names(t, "/api/escolas/filtro/preco?min_preco=2000&max_preco=1000"))
	assert.Equal(t, []string{"A"}, names(t, "/api/escolas/filtro/avaliacao?min_avaliacao=4"))
	assert.Equal(t, []string{"A", "B", "C"}, names(t, "/api/escolas/filtro/localizacao?latitude=-23.5&longitude=-46.6"))
}

func TestSchoolEvaluationRoutes(t *testing.T) {
	app := newTestApp(t)
	school := createSchool(t, app, schoolPayload)
	target := fmt.Sprintf("/api/escolas/%d/avaliacoes", school.ID)

	status, env := doRequest(t, app, http.MethodPost, target, `{"nota": 9, "nome_avaliador": "Ana", "comentario": "Muito boa"}`)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var eval domain.EvaluationResponse
	decodeData(t, env, &eval)
	assert.Equal(t, school.ID, eval.SchoolID)
	require.NotNil(t, eval.Comment)
	assert.Equal(t, "Muito boa", *eval.Comment)

	status, env = doRequest(t, app, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, status)
	var evals []domain.EvaluationResponse
	decodeData(t, env, &evals)
	assert.Len(t, evals, 1)

	status, _ = doRequest(t, app, http.MethodPost, "/api/escolas/999/avaliacoes", `{"nota": 1, "nome_avaliador": "X"}`)
	assert.Equal(t, http.StatusNotFound, status)
}
