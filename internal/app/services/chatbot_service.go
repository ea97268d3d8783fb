package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// TextGenerator produces one completion per prompt. The Gemini client
// satisfies it; tests substitute a stub.
type TextGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// ChatbotService defines the interface for the chatbot proxy.
type ChatbotService interface {
	Status(ctx context.Context, user *models.User) (*dto.QuotaStatus, error)
	Chat(ctx context.Context, user *models.User, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatbotServiceImpl struct {
	userRepo  *repositories.UserRepository
	generator TextGenerator
	logger    zerolog.Logger
}

// NewChatbotService creates a new ChatbotService.
func NewChatbotService(userRepo *repositories.UserRepository, generator TextGenerator, logger zerolog.Logger) ChatbotService {
	return &chatbotServiceImpl{userRepo: userRepo, generator: generator, logger: logger}
}

// EffectiveUsage returns the questions counted against today's quota. A
// stored reset date other than today's UTC date means the counter belongs
// to a previous day and reads as zero.
func EffectiveUsage(user *models.User, now time.Time) int {
	if user.ChatbotQuestionsResetDate != helpers.UTCDateString(now) {
		return 0
	}
	return user.ChatbotQuestionsUsed
}

func quotaStatus(user *models.User, now time.Time) dto.QuotaStatus {
	return dto.QuotaStatus{
		Used:  EffectiveUsage(user, now),
		Limit: user.Plan.DailyChatbotQuota(),
		Plan:  string(user.Plan),
	}
}

// Status reports the caller's quota without consuming it.
func (s *chatbotServiceImpl) Status(ctx context.Context, user *models.User) (*dto.QuotaStatus, error) {
	q := quotaStatus(user, time.Now())
	return &q, nil
}

// Chat gates on the daily quota, proxies the question, and counts it only
// after a successful reply.
func (s *chatbotServiceImpl) Chat(ctx context.Context, user *models.User, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	now := time.Now()
	used := EffectiveUsage(user, now)
	limit := user.Plan.DailyChatbotQuota()
	if limit != models.UnlimitedQuota && used >= limit {
		return nil, apperrors.ErrQuotaExceeded
	}

	reply, err := s.generator.GenerateReply(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	used++
	if err := s.userRepo.UpdateChatbotUsage(ctx, user.ID, used, helpers.UTCDateString(now)); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to persist chatbot usage")
	}
	user.ChatbotQuestionsUsed = used
	user.ChatbotQuestionsResetDate = helpers.UTCDateString(now)

	return &dto.ChatResponse{
		Reply: reply,
		Quota: quotaStatus(user, now),
	}, nil
}
