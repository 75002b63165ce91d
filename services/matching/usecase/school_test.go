package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"schoolmatch/config"
	"schoolmatch/domain"
	"schoolmatch/services/matching/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubResolver struct {
	addresses map[string]domain.Address
	calls     int
}

func (r *stubResolver) Resolve(_ context.Context, postalCode string) (*domain.Address, error) {
	r.calls++
	addr, ok := r.addresses[postalCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPostalCode, postalCode)
	}
	return &addr, nil
}

func newStubResolver() *stubResolver {
	return &stubResolver{addresses: map[string]domain.Address{
		"01000-000": {Street: "Rua das Flores", District: "Centro", City: "São Paulo", State: "SP"},
		"20000-000": {Street: "Av. Rio Branco", District: "Centro", City: "Rio de Janeiro", State: "RJ"},
	}}
}

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func validSchoolRequest() *domain.SchoolCreateRequest {
	return &domain.SchoolCreateRequest{
		Name:         "Escola Exemplo",
		Phone:        "(11) 1234-5678",
		Number:       "123",
		PostalCode:   "01000-000",
		MonthlyFee:   1500,
		StudentCount: 250,
		Methodology:  "Construtivista",
		Email:        "contato@escolaexemplo.com",
	}
}

func newSchoolFixture(t *testing.T) (domain.SchoolUseCase, *stubResolver) {
	t.Helper()
	resolver := newStubResolver()
	uc := NewSchoolUseCase(repository.NewSchoolRepository(newTestDB(t)), resolver, 5*time.Second)
	return uc, resolver
}

func TestSchoolUseCaseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("fills the address from the postal code", func(t *testing.T) {
		uc, _ := newSchoolFixture(t)

		school, err := uc.CreateSchool(ctx, validSchoolRequest())
		require.NoError(t, err)
		assert.NotZero(t, school.SchoolID)
		assert.Equal(t, "Rua das Flores", school.Street)
		assert.Equal(t, "Centro", school.District)
		assert.Equal(t, "São Paulo", school.City)
		assert.Equal(t, "SP", school.State)

		stored, err := uc.GetSchoolByID(ctx, school.SchoolID)
		require.NoError(t, err)
		assert.Equal(t, "01000-000", stored.PostalCode)
		assert.Equal(t, 250, stored.StudentCount)
	})

	t.Run("unknown postal code persists nothing", func(t *testing.T) {
		uc, _ := newSchoolFixture(t)

		req := validSchoolRequest()
		req.PostalCode = "99999-999"
		_, err := uc.CreateSchool(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPostalCode)

		all, err := uc.GetAllSchools(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("invalid payload never reaches the resolver", func(t *testing.T) {
		uc, resolver := newSchoolFixture(t)

		req := validSchoolRequest()
		req.Name = ""
		_, err := uc.CreateSchool(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, resolver.calls)
	})
}

func TestSchoolUseCaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		uc, resolver := newSchoolFixture(t)
		school, err := uc.CreateSchool(ctx, validSchoolRequest())
		require.NoError(t, err)

		fee := 1800.0
		name := "Escola Nova"
		got, err := uc.UpdateSchool(ctx, school.SchoolID, &domain.SchoolUpdateRequest{Name: &name, MonthlyFee: &fee})
		require.NoError(t, err)
		assert.Equal(t, "Escola Nova", got.Name)
		assert.Equal(t, 1800.0, got.MonthlyFee)
		assert.Equal(t, "Construtivista", got.Methodology)
		assert.Equal(t, "Rua das Flores", got.Street)
		assert.Equal(t, 1, resolver.calls)
	})

	t.Run("new postal code replaces the address", func(t *testing.T) {
		uc, _ := newSchoolFixture(t)
		school, err := uc.CreateSchool(ctx, validSchoolRequest())
		require.NoError(t, err)

		cep := "20000-000"
		got, err := uc.UpdateSchool(ctx, school.SchoolID, &domain.SchoolUpdateRequest{PostalCode: &cep})
		require.NoError(t, err)
		assert.Equal(t, "20000-000", got.PostalCode)
		assert.Equal(t, "Av. Rio Branco", got.Street)
		assert.Equal(t, "Rio de Janeiro", got.City)
		assert.Equal(t, "RJ", got.State)
	})

	t.Run("failed lookup leaves every field unchanged", func(t *testing.T) {
		uc, _ := newSchoolFixture(t)
		school, err := uc.CreateSchool(ctx, validSchoolRequest())
		require.NoError(t, err)
		before, err := uc.GetSchoolByID(ctx, school.SchoolID)
		require.NoError(t, err)

		cep := "99999-999"
		name := "Should Not Persist"
		_, err = uc.UpdateSchool(ctx, school.SchoolID, &domain.SchoolUpdateRequest{Name: &name, PostalCode: &cep})
		assert.ErrorIs(t, err, domain.ErrInvalidPostalCode)

		after, err := uc.GetSchoolByID(ctx, school.SchoolID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing school is reported before the lookup", func(t *testing.T) {
		uc, resolver := newSchoolFixture(t)

		cep := "99999-999"
		_, err := uc.UpdateSchool(ctx, 42, &domain.SchoolUpdateRequest{PostalCode: &cep})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, resolver.calls)
	})
}

func TestSchoolUseCaseEvaluations(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSchoolFixture(t)
	school, err := uc.CreateSchool(ctx, validSchoolRequest())
	require.NoError(t, err)

	eval, err := uc.CreateEvaluation(ctx, school.SchoolID, &domain.EvaluationCreateRequest{Score: 8.5, EvaluatorName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, school.SchoolID, eval.SchoolID)
	assert.NotZero(t, eval.EvaluationID)

	_, err = uc.CreateEvaluation(ctx, school.SchoolID, &domain.EvaluationCreateRequest{Score: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEvaluation(ctx, 9999, &domain.EvaluationCreateRequest{Score: 5, EvaluatorName: "Rui"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	evals, err := uc.GetEvaluations(ctx, school.SchoolID)
	require.NoError(t, err)
	assert.Len(t, evals, 1)

	require.NoError(t, uc.DeleteSchool(ctx, school.SchoolID))
	_, err = uc.GetEvaluations(ctx, school.SchoolID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), 0)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)

	ctx, cancel = withTimeout(context.Background(), time.Minute)
	defer cancel()
	_, ok = ctx.Deadline()
	assert.True(t, ok)
}
