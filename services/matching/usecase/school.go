package usecase

import (
	"context"
	"schoolmatch/config"
	"schoolmatch/domain"
	"time"
)

type schoolUseCase struct {
	repo     domain.SchoolRepo
	resolver domain.AddressResolver
	TimeOut  time.Duration
}

func NewSchoolUseCase(repo domain.SchoolRepo, resolver domain.AddressResolver, to time.Duration) domain.SchoolUseCase {
	return &schoolUseCase{
		repo:     repo,
		resolver: resolver,
		TimeOut:  to,
	}
}

func (suc *schoolUseCase) CreateSchool(ctx context.Context, req *domain.SchoolCreateRequest) (*domain.School, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	addr, err := suc.resolver.Resolve(ctx, req.PostalCode)
	if err != nil {
		config.GetLogrusInstance().WithField("cep", req.PostalCode).Warnf("school not created: %v", err)
		return nil, err
	}

	school := req.ToSchool(*addr)
	if err := suc.repo.CreateSchool(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (suc *schoolUseCase) GetAllSchools(ctx context.Context) ([]domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.GetAllSchools(ctx)
}

func (suc *schoolUseCase) GetSchoolByID(ctx context.Context, id int) (*domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.GetSchoolByID(ctx, id)
}

// UpdateSchool resolves a new postal code before touching the record, so a failed lookup changes nothing.
func (suc *schoolUseCase) UpdateSchool(ctx context.Context, id int, req *domain.SchoolUpdateRequest) (*domain.School, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	if _, err := suc.repo.GetSchoolByID(ctx, id); err != nil {
		return nil, err
	}

	var addr *domain.Address
	if req.PostalCode != nil {
		resolved, err := suc.resolver.Resolve(ctx, *req.PostalCode)
		if err != nil {
			config.GetLogrusInstance().WithField("cep", *req.PostalCode).Warnf("school %d not updated: %v", id, err)
			return nil, err
		}
		addr = resolved
	}

	return suc.repo.UpdateSchool(ctx, id, func(s *domain.School) {
		req.ApplyTo(s, addr)
	})
}

func (suc *schoolUseCase) DeleteSchool(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.DeleteSchool(ctx, id)
}

func (suc *schoolUseCase) FilterByMethodology(ctx context.Context, methodology string) ([]domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.FilterByMethodology(ctx, methodology)
}

func (suc *schoolUseCase) FilterByPriceRange(ctx context.Context, minFee, maxFee float64) ([]domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.FilterByPriceRange(ctx, minFee, maxFee)
}

func (suc *schoolUseCase) FilterByMinRating(ctx context.Context, minRating float64) ([]domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.FilterByMinRating(ctx, minRating)
}

func (suc *schoolUseCase) FilterByLocation(ctx context.Context, latitude, longitude float64) ([]domain.School, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.FilterByLocation(ctx, latitude, longitude)
}

func (suc *schoolUseCase) CreateEvaluation(ctx context.Context, schoolID int, req *domain.EvaluationCreateRequest) (*domain.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	eval := &domain.Evaluation{
		Score:         req.Score,
		EvaluatorName: req.EvaluatorName,
		Comment:       req.Comment,
	}
	if err := suc.repo.CreateEvaluation(ctx, schoolID, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

func (suc *schoolUseCase) GetEvaluations(ctx context.Context, schoolID int) ([]domain.Evaluation, error) {
	ctx, cancel := withTimeout(ctx, suc.TimeOut)
	defer cancel()

	return suc.repo.GetEvaluations(ctx, schoolID)
}
