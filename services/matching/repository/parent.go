package repository

import (
	"context"
	"schoolmatch/domain"

	"gorm.io/gorm"
)

type parentRepository struct {
	db *gorm.DB
}

func NewParentRepository(database *gorm.DB) domain.ParentRepo {
	return &parentRepository{
		db: database,
	}
}

func (pr *parentRepository) CreateParent(ctx context.Context, parent *domain.Parent) error {
	err := pr.db.WithContext(ctx).Create(parent).Error
	return translateError("could not create parent", err)
}

func (pr *parentRepository) GetAllParents(ctx context.Context) ([]domain.Parent, error) {
	var parents []domain.Parent
	err := pr.db.WithContext(ctx).Order("id").Find(&parents).Error
	if err != nil {
		return nil, translateError("could not get all parents", err)
	}
	return parents, nil
}

func (pr *parentRepository) GetParentByID(ctx context.Context, id int) (*domain.Parent, error) {
	var parent domain.Parent
	err := pr.db.WithContext(ctx).First(&parent, id).Error
	if err != nil {
		return nil, translateError("could not get parent", err)
	}
	return &parent, nil
}

func (pr *parentRepository) UpdateParent(ctx context.Context, id int, apply func(*domain.Parent)) (*domain.Parent, error) {
	var parent domain.Parent
	err := pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&parent, id).Error; err != nil {
			return err
		}
		apply(&parent)
		return tx.Save(&parent).Error
	})
	if err != nil {
		return nil, translateError("could not update parent", err)
	}
	return &parent, nil
}

func (pr *parentRepository) DeleteParent(ctx context.Context, id int) error {
	res := pr.db.WithContext(ctx).Delete(&domain.Parent{}, id)
	if res.Error != nil {
		return translateError("could not delete parent", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("could not delete parent", gorm.ErrRecordNotFound)
	}
	return nil
}
