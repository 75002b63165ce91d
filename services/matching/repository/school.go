package repository

import (
	"context"
	"schoolmatch/domain"
	"strings"

	"gorm.io/gorm"
)

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(database *gorm.DB) domain.SchoolRepo {
	return &schoolRepository{
		db: database,
	}
}

func (sr *schoolRepository) CreateSchool(ctx context.Context, school *domain.School) error {
	err := sr.db.WithContext(ctx).Omit("Evaluations").Create(school).Error
	return translateError("could not create school", err)
}

func (sr *schoolRepository) GetAllSchools(ctx context.Context) ([]domain.School, error) {
	var schools []domain.School
	err := sr.db.WithContext(ctx).Order("id").Find(&schools).Error
	if err != nil {
		return nil, translateError("could not get all schools", err)
	}
	return schools, nil
}

func (sr *schoolRepository) GetSchoolByID(ctx context.Context, id int) (*domain.School, error) {
	var school domain.School
	err := sr.db.WithContext(ctx).First(&school, id).Error
	if err != nil {
		return nil, translateError("could not get school", err)
	}
	return &school, nil
}

// UpdateSchool loads the school, lets apply mutate it and saves it in a single transaction.
func (sr *schoolRepository) UpdateSchool(ctx context.Context, id int, apply func(*domain.School)) (*domain.School, error) {
	var school domain.School
	err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&school, id).Error; err != nil {
			return err
		}
		apply(&school)
		return tx.Omit("Evaluations").Save(&school).Error
	})
	if err != nil {
		return nil, translateError("could not update school", err)
	}
	return &school, nil
}

// DeleteSchool removes the school together with its evaluations.
func (sr *schoolRepository) DeleteSchool(ctx context.Context, id int) error {
	err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var school domain.School
		if err := tx.First(&school, id).Error; err != nil {
			return err
		}
		if err := tx.Where("escola_id = ?", id).Delete(&domain.Evaluation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&school).Error
	})
	return translateError("could not delete school", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (sr *schoolRepository) FilterByMethodology(ctx context.Context, methodology string) ([]domain.School, error) {
	pattern := "%" + strings.ToLower(likeEscaper.Replace(methodology)) + "%"

	var schools []domain.School
	err := sr.db.WithContext(ctx).
		Where(`LOWER(metodologia) LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Find(&schools).Error
	if err != nil {
		return nil, translateError("could not filter schools by methodology", err)
	}
	return schools, nil
}

func (sr *schoolRepository) FilterByPriceRange(ctx context.Context, minFee, maxFee float64) ([]domain.School, error) {
	var schools []domain.School
	err := sr.db.WithContext(ctx).
		Where("mensalidade >= ? AND mensalidade <= ?", minFee, maxFee).
		Order("id").
		Find(&schools).Error
	if err != nil {
		return nil, translateError("could not filter schools by price", err)
	}
	return schools, nil
}

func (sr *schoolRepository) FilterByMinRating(ctx context.Context, minRating float64) ([]domain.School, error) {
	var schools []domain.School
	err := sr.db.WithContext(ctx).
		Where("avaliacao IS NOT NULL AND avaliacao >= ?", minRating).
		Order("id").
		Find(&schools).Error
	if err != nil {
		return nil, translateError("could not filter schools by rating", err)
	}
	return schools, nil
}

// FilterByLocation does not look at the coordinates yet and returns every school.
func (sr *schoolRepository) FilterByLocation(ctx context.Context, latitude, longitude float64) ([]domain.School, error) {
	return sr.GetAllSchools(ctx)
}

func (sr *schoolRepository) CreateEvaluation(ctx context.Context, schoolID int, eval *domain.Evaluation) error {
	err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&domain.School{}, schoolID).Error; err != nil {
			return err
		}
		eval.SchoolID = schoolID
		return tx.Create(eval).Error
	})
	return translateError("could not create evaluation", err)
}

func (sr *schoolRepository) GetEvaluations(ctx context.Context, schoolID int) ([]domain.Evaluation, error) {
	var school domain.School
	err := sr.db.WithContext(ctx).
		Preload("Evaluations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&school, schoolID).Error
	if err != nil {
		return nil, translateError("could not get evaluations", err)
	}
	return school.Evaluations, nil
}
