package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/chirag127/Image-Insight-AI/internal/ai"
	apperrors "github.com/chirag127/Image-Insight-AI/internal/errors"
	"github.com/chirag127/Image-Insight-AI/internal/model"
)

// MockAnalysisRepository is a mock implementation of AnalysisRepository.
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *model.ImageAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.ImageAnalysis, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageAnalysis), args.Error(1)
}

func (m *MockAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImageAnalysis, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImageAnalysis), args.Error(1)
}

func (m *MockAnalysisRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockImageHost is a mock image hosting adapter.
type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) Upload(ctx context.Context, imageBase64 string) (string, error) {
	args := m.Called(ctx, imageBase64)
	return args.String(0), args.Error(1)
}

// MockAnalyzer is a mock AI adapter.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, imageURL string) (ai.Result, error) {
	args := m.Called(ctx, imageURL)
	return args.Get(0).(ai.Result), args.Error(1)
}

const testTimeout = 5 * time.Second

func TestAnalysisService_Analyze(t *testing.T) {
	userID := uuid.New()

	t.Run("missing image fails before any adapter call", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockHost := new(MockImageHost)
		mockAnalyzer := new(MockAnalyzer)

		service := NewAnalysisService(mockRepo, mockHost, mockAnalyzer, testTimeout)

		for _, image := range []string{"", "   ", "\n"} {
			analysis, err := service.Analyze(context.Background(), userID, image)
			assert.ErrorIs(t, err, apperrors.ErrImageRequired)
			assert.Nil(t, analysis)
		}

		mockHost.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		mockAnalyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("successful analysis persists the normalized result", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockHost := new(MockImageHost)
		mockAnalyzer := new(MockAnalyzer)

		mockHost.On("Upload", mock.Anything, "aGVsbG8=").Return("https://img.example.com/a.png", nil)
		mockAnalyzer.On("Analyze", mock.Anything, "https://img.example.com/a.png").Return(ai.Result{
			Description: "D",
			Emotions:    "M",
			Tags:        []string{"x", "y"},
			RawResponse: `{"description":"D"}`,
		}, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ImageAnalysis")).Return(nil)

		service := NewAnalysisService(mockRepo, mockHost, mockAnalyzer, testTimeout)

		analysis, err := service.Analyze(context.Background(), userID, "aGVsbG8=")
		assert.NoError(t, err)
		assert.Equal(t, userID, analysis.UserID)
		assert.Equal(t, "https://img.example.com/a.png", analysis.ImageURL)
		assert.Equal(t, "D", analysis.Description)
		assert.Equal(t, "M", analysis.Emotions)
		assert.Equal(t, model.Tags{"x", "y"}, analysis.Tags)
		assert.Equal(t, `{"description":"D"}`, analysis.RawResponse)
		assert.NotEqual(t, uuid.Nil, analysis.ID)

		mockRepo.AssertExpectations(t)
		mockHost.AssertExpectations(t)
		mockAnalyzer.AssertExpectations(t)
	})

	t.Run("upload failure stops the flow", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockHost := new(MockImageHost)
		mockAnalyzer := new(MockAnalyzer)

		mockHost.On("Upload", mock.Anything, "aGVsbG8=").Return("", errors.New("host unreachable"))

		service := NewAnalysisService(mockRepo, mockHost, mockAnalyzer, testTimeout)

		analysis, err := service.Analyze(context.Background(), userID, "aGVsbG8=")
		assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
		assert.Nil(t, analysis)

		mockAnalyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("analysis failure stops the flow", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockHost := new(MockImageHost)
		mockAnalyzer := new(MockAnalyzer)

		mockHost.On("Upload", mock.Anything, "aGVsbG8=").Return("https://img.example.com/a.png", nil)
		mockAnalyzer.On("Analyze", mock.Anything, "https://img.example.com/a.png").Return(ai.Result{}, errors.New("model overloaded"))

		service := NewAnalysisService(mockRepo, mockHost, mockAnalyzer, testTimeout)

		analysis, err := service.Analyze(context.Background(), userID, "aGVsbG8=")
		assert.ErrorIs(t, err, apperrors.ErrAnalysisFailed)
		assert.Nil(t, analysis)

		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure surfaces after adapters succeeded", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockHost := new(MockImageHost)
		mockAnalyzer := new(MockAnalyzer)

		mockHost.On("Upload", mock.Anything, "aGVsbG8=").Return("https://img.example.com/a.png", nil)
		mockAnalyzer.On("Analyze", mock.Anything, mock.Anything).Return(ai.Result{Description: "D"}, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ImageAnalysis")).Return(errors.New("db down"))

		service := NewAnalysisService(mockRepo, mockHost, mockAnalyzer, testTimeout)

		analysis, err := service.Analyze(context.Background(), userID, "aGVsbG8=")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUploadFailed)
		assert.NotErrorIs(t, err, apperrors.ErrAnalysisFailed)
		assert.Nil(t, analysis)
	})
}

func TestAnalysisService_History(t *testing.T) {
	userID := uuid.New()

	t.Run("returns records in repository order", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		newest := model.ImageAnalysis{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
		older := model.ImageAnalysis{ID: uuid.New(), UserID: userID, CreatedAt: time.Now().Add(-time.Hour)}
		mockRepo.On("ListByUser", mock.Anything, userID).Return([]model.ImageAnalysis{newest, older}, nil)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		analyses, err := service.History(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, []model.ImageAnalysis{newest, older}, analyses)
	})

	t.Run("no history is an empty list", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockRepo.On("ListByUser", mock.Anything, userID).Return(nil, nil)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		analyses, err := service.History(context.Background(), userID)
		assert.NoError(t, err)
		assert.NotNil(t, analyses)
		assert.Empty(t, analyses)
	})
}

func TestAnalysisService_Get(t *testing.T) {
	userID := uuid.New()
	recordID := uuid.New()

	t.Run("owned record is returned", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockRepo.On("FindByIDAndUser", mock.Anything, recordID, userID).Return(&model.ImageAnalysis{ID: recordID, UserID: userID}, nil)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		analysis, err := service.Get(context.Background(), userID, recordID)
		assert.NoError(t, err)
		assert.Equal(t, recordID, analysis.ID)
	})

	t.Run("absent and foreign-owned records read the same", func(t *testing.T) {
		otherUser := uuid.New()
		mockRepo := new(MockAnalysisRepository)
		// the owner-scoped query hides other users' records behind the
		// same not-found result
		mockRepo.On("FindByIDAndUser", mock.Anything, recordID, otherUser).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("FindByIDAndUser", mock.Anything, mock.AnythingOfType("uuid.UUID"), userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		_, err := service.Get(context.Background(), otherUser, recordID)
		assert.ErrorIs(t, err, apperrors.ErrAnalysisNotFound)

		_, err = service.Get(context.Background(), userID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrAnalysisNotFound)
	})
}

func TestAnalysisService_Delete(t *testing.T) {
	userID := uuid.New()
	recordID := uuid.New()

	t.Run("owned record is deleted", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockRepo.On("DeleteByIDAndUser", mock.Anything, recordID, userID).Return(int64(1), nil)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		assert.NoError(t, service.Delete(context.Background(), userID, recordID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("zero affected rows is not found", func(t *testing.T) {
		mockRepo := new(MockAnalysisRepository)
		mockRepo.On("DeleteByIDAndUser", mock.Anything, recordID, userID).Return(int64(0), nil)

		service := NewAnalysisService(mockRepo, new(MockImageHost), new(MockAnalyzer), testTimeout)

		err := service.Delete(context.Background(), userID, recordID)
		assert.ErrorIs(t, err, apperrors.ErrAnalysisNotFound)
	})
}
