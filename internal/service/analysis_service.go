package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chirag127/Image-Insight-AI/internal/ai"
	apperrors "github.com/chirag127/Image-Insight-AI/internal/errors"
	"github.com/chirag127/Image-Insight-AI/internal/hosting"
	"github.com/chirag127/Image-Insight-AI/internal/model"
	"github.com/chirag127/Image-Insight-AI/internal/repository"
)

// Analyzer produces a normalized analysis for a publicly fetchable image URL.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) (ai.Result, error)
}

// AnalysisService orchestrates the analyze flow and the owner-scoped
// history operations.
type AnalysisService interface {
	Analyze(ctx context.Context, userID uuid.UUID, imageBase64 string) (*model.ImageAnalysis, error)
	History(ctx context.Context, userID uuid.UUID) ([]model.ImageAnalysis, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.ImageAnalysis, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type analysisService struct {
	analysisRepo repository.AnalysisRepository
	host         hosting.ImageHost
	analyzer     Analyzer
	callTimeout  time.Duration
}

// NewAnalysisService creates a new analysis service. callTimeout bounds
// each outbound adapter call so one slow upstream cannot hold a request
// indefinitely.
func NewAnalysisService(analysisRepo repository.AnalysisRepository, host hosting.ImageHost, analyzer Analyzer, callTimeout time.Duration) AnalysisService {
	return &analysisService{
		analysisRepo: analysisRepo,
		host:         host,
		analyzer:     analyzer,
		callTimeout:  callTimeout,
	}
}

// Analyze uploads the image, runs the AI analysis on the hosted URL and
// persists the result for the caller. The steps are strictly sequential
// and single-attempt; a persistence failure after the adapter calls leaves
// the uploaded image in place.
func (s *analysisService) Analyze(ctx context.Context, userID uuid.UUID, imageBase64 string) (*model.ImageAnalysis, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, apperrors.ErrImageRequired
	}

	uploadCtx, cancelUpload := context.WithTimeout(ctx, s.callTimeout)
	defer cancelUpload()
	imageURL, err := s.host.Upload(uploadCtx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	analyzeCtx, cancelAnalyze := context.WithTimeout(ctx, s.callTimeout)
	defer cancelAnalyze()
	result, err := s.analyzer.Analyze(analyzeCtx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAnalysisFailed, err)
	}

	analysis := &model.ImageAnalysis{
		ID:          uuid.New(),
		UserID:      userID,
		ImageURL:    imageURL,
		Description: result.Description,
		Emotions:    result.Emotions,
		Tags:        model.Tags(result.Tags),
		RawResponse: result.RawResponse,
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return analysis, nil
}

// History returns the caller's analyses, newest first. No history is an
// empty list, never an error.
func (s *analysisService) History(ctx context.Context, userID uuid.UUID) ([]model.ImageAnalysis, error) {
	analyses, err := s.analysisRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	if analyses == nil {
		analyses = []model.ImageAnalysis{}
	}
	return analyses, nil
}

// Get returns one analysis if it exists and the caller owns it. Absent and
// foreign-owned records are indistinguishable.
func (s *analysisService) Get(ctx context.Context, userID, id uuid.UUID) (*model.ImageAnalysis, error) {
	analysis, err := s.analysisRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	return analysis, nil
}

// Delete removes one analysis under the same ownership rule as Get.
func (s *analysisService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	rows, err := s.analysisRepo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrAnalysisNotFound
	}
	return nil
}
