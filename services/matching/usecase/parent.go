package usecase

import (
	"context"
	"schoolmatch/config"
	"schoolmatch/domain"
	"time"
)

type parentUseCase struct {
	repo     domain.ParentRepo
	resolver domain.AddressResolver
	TimeOut  time.Duration
}

func NewParentUseCase(repo domain.ParentRepo, resolver domain.AddressResolver, to time.Duration) domain.ParentUseCase {
	return &parentUseCase{
		repo:     repo,
		resolver: resolver,
		TimeOut:  to,
	}
}

func (puc *parentUseCase) CreateParent(ctx context.Context, req *domain.ParentCreateRequest) (*domain.Parent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, puc.TimeOut)
	defer cancel()

	addr, err := puc.resolver.Resolve(ctx, req.PostalCode)
	if err != nil {
		config.GetLogrusInstance().WithField("cep", req.PostalCode).Warnf("parent not created: %v", err)
		return nil, err
	}

	parent := req.ToParent(*addr)
	if err := puc.repo.CreateParent(ctx, parent); err != nil {
		return nil, err
	}
	return parent, nil
}

func (puc *parentUseCase) GetAllParents(ctx context.Context) ([]domain.Parent, error) {
	ctx, cancel := withTimeout(ctx, puc.TimeOut)
	defer cancel()

	return puc.repo.GetAllParents(ctx)
}

func (puc *parentUseCase) GetParentByID(ctx context.Context, id int) (*domain.Parent, error) {
	ctx, cancel := withTimeout(ctx, puc.TimeOut)
	defer cancel()

	return puc.repo.GetParentByID(ctx, id)
}

func (puc *parentUseCase) UpdateParent(ctx context.Context, id int, req *domain.ParentUpdateRequest) (*domain.Parent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, puc.TimeOut)
	defer cancel()

	if _, err := puc.repo.GetParentByID(ctx, id); err != nil {
		return nil, err
	}

	var addr *domain.Address
	if req.PostalCode != nil {
		resolved, err := puc.resolver.Resolve(ctx, *req.PostalCode)
		if err != nil {
			config.GetLogrusInstance().WithField("cep", *req.PostalCode).Warnf("parent %d not updated: %v", id, err)
			return nil, err
		}
		addr = resolved
	}

	return puc.repo.UpdateParent(ctx, id, func(p *domain.Parent) {
		req.ApplyTo(p, addr)
	})
}

func (puc *parentUseCase) DeleteParent(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx, puc.TimeOut)
	defer cancel()

	return puc.repo.DeleteParent(ctx, id)
}
