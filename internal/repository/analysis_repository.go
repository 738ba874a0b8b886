package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chirag127/Image-Insight-AI/internal/model"
)

// AnalysisRepository defines image analysis persistence operations. All
// reads and deletes are scoped to an owning user.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *model.ImageAnalysis) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.ImageAnalysis, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImageAnalysis, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create creates a new analysis record.
func (r *analysisRepository) Create(ctx context.Context, analysis *model.ImageAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// FindByIDAndUser finds an analysis by ID owned by the given user. A record
// owned by someone else reads as gorm.ErrRecordNotFound.
func (r *analysisRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.ImageAnalysis, error) {
	var analysis model.ImageAnalysis
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&analysis).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

// ListByUser returns all analyses owned by the user, newest first.
func (r *analysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImageAnalysis, error) {
	var analyses []model.ImageAnalysis
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

// DeleteByIDAndUser removes an analysis owned by the user and reports how
// many rows were affected (zero means absent or foreign-owned).
func (r *analysisRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ImageAnalysis{})
	return res.RowsAffected, res.Error
}
