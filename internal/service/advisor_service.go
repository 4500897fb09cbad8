package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"boiler-ai/backend/config"
	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	pkgerrors "boiler-ai/backend/pkg/errors"
	"boiler-ai/backend/pkg/llm"
)

var (
	ErrAINotConfigured = errors.New("AI service is not configured")
	ErrAIUpstream      = errors.New("AI service request failed")
)

const (
	fallbackChatReply           = "Sorry, I could not generate a response."
	fallbackRecommendationReply = "Sorry, I could not generate recommendations."
	notSpecified                = "Not specified"
	recommendationCount         = 5
)

// AdvisorService AI chat and course recommendations
type AdvisorService interface {
	Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Recommend(ctx context.Context, userID string, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error)
	History(ctx context.Context, caller Caller, userID string, limit int) (*dto.ChatHistoryResponse, error)
}

type advisorService struct {
	cfg       *config.LLMConfig
	repo      *repository.Repository
	completer ChatCompleter
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdvisorService creates an AdvisorService
func NewAdvisorService(cfg *config.LLMConfig, repo *repository.Repository, completer ChatCompleter, logger *zap.Logger) AdvisorService {
	return &advisorService{
		cfg:       cfg,
		repo:      repo,
		completer: completer,
		logger:    logger,
		now:       time.Now,
	}
}

// Chat answers one question. Without client-supplied context the most recent stored
// exchanges are replayed.
func (s *advisorService) Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: advisorSystemPrompt(user)}}
	if req.Context != nil {
		for _, turn := range req.Context {
			messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
		}
	} else if s.cfg.HistoryTurns > 0 {
		past, err := s.repo.Chat.ListRecentByUser(ctx, userID, s.cfg.HistoryTurns)
		if err != nil {
			s.logger.Error("failed to load chat history", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
		for _, m := range past {
			messages = append(messages,
				llm.Message{Role: llm.RoleUser, Content: m.UserMessage},
				llm.Message{Role: llm.RoleAssistant, Content: m.AIResponse},
			)
		}
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := s.complete(ctx, llm.ChatRequest{
		Messages:    messages,
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if reply == "" {
		reply = fallbackChatReply
	}

	msg := &model.ChatMessage{
		UserID:      userID,
		UserMessage: req.Message,
		AIResponse:  reply,
	}
	if err := s.repo.Chat.Create(ctx, msg); err != nil {
		// the answer is still returned; only the history entry is lost
		s.logger.Error("failed to save chat history", zap.String("user_id", userID), zap.Error(err))
	}

	return &dto.ChatResponse{Response: reply, Timestamp: formatTime(s.now())}, nil
}

// Recommend asks the model to pick from the courses the student can take next term: in
// their major, offered that term, not yet completed, with every prerequisite completed.
func (s *advisorService) Recommend(ctx context.Context, userID string, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	semester, _ := dto.NormalizeTerm(req.Semester)
	completed := make(map[string]bool, len(req.CompletedCourses))
	for _, c := range req.CompletedCourses {
		completed[strings.ToUpper(strings.TrimSpace(c))] = true
	}

	var candidates []model.Course
	if user.Major != nil && *user.Major != "" {
		candidates, err = s.repo.Course.List(ctx, repository.CourseFilter{Major: *user.Major, Semester: semester})
		if err != nil {
			s.logger.Error("failed to list candidate courses", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	}
	available := AvailableCourses(candidates, completed)

	reply, err := s.complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: advisorSystemPrompt(user)},
			{Role: llm.RoleUser, Content: recommendationPrompt(req, semester, available)},
		},
		MaxTokens:   s.cfg.RecommendMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if reply == "" {
		reply = fallbackRecommendationReply
	}

	return &dto.RecommendationResponse{
		Recommendations:  reply,
		AvailableCourses: toCourseResponses(available),
		Timestamp:        formatTime(s.now()),
	}, nil
}

func (s *advisorService) History(ctx context.Context, caller Caller, userID string, limit int) (*dto.ChatHistoryResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, ErrForbidden
	}

	msgs, err := s.repo.Chat.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to list chat history", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.ChatHistoryItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, dto.ChatHistoryItem{
			UserMessage: m.UserMessage,
			AIResponse:  m.AIResponse,
			CreatedAt:   formatTime(m.CreatedAt),
		})
	}
	return &dto.ChatHistoryResponse{History: items, Count: len(items)}, nil
}

// AvailableCourses keeps the courses not yet completed whose prerequisites are all completed.
// completed holds upper-cased course codes.
func AvailableCourses(courses []model.Course, completed map[string]bool) []model.Course {
	out := []model.Course{}
	for _, c := range courses {
		if completed[strings.ToUpper(c.CourseCode)] {
			continue
		}
		ready := true
		for _, p := range c.Prerequisites {
			if !completed[strings.ToUpper(p)] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, c)
		}
	}
	return out
}

// ── helpers ──

func (s *advisorService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to load user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *advisorService) complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return "", ErrAINotConfigured
		}
		s.logger.Error("chat completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAIUpstream, err)
	}
	return reply, nil
}

func advisorSystemPrompt(user *model.User) string {
	major := notSpecified
	if user.Major != nil && *user.Major != "" {
		major = *user.Major
	}
	year := notSpecified
	if user.GraduationYear != nil {
		year = strconv.Itoa(*user.GraduationYear)
	}

	var b strings.Builder
	b.WriteString("You are Boiler AI, an academic advisor for Purdue University students. ")
	b.WriteString("Help students with course selection, degree planning, GPA questions and academic policies. ")
	b.WriteString("Be concise, accurate and encouraging. If you are unsure about a specific policy, ")
	b.WriteString("tell the student to confirm with their academic advisor.\n\n")
	b.WriteString("Student information:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", user.FirstName, user.LastName)
	fmt.Fprintf(&b, "- Major: %s\n", major)
	fmt.Fprintf(&b, "- Expected graduation year: %s\n", year)
	return b.String()
}

func recommendationPrompt(req *dto.RecommendationRequest, semester string, available []model.Course) string {
	interests := strings.TrimSpace(req.Interests)
	if interests == "" {
		interests = notSpecified
	}
	completed := notSpecified
	if len(req.CompletedCourses) > 0 {
		completed = strings.Join(req.CompletedCourses, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommend %d courses for the %s semester.\n\n", recommendationCount, semester)
	fmt.Fprintf(&b, "Interests: %s\n", interests)
	fmt.Fprintf(&b, "Completed courses: %s\n\n", completed)
	if len(available) == 0 {
		b.WriteString("No catalog courses currently match the student's major, term and prerequisites. ")
		b.WriteString("Suggest general planning advice instead.\n")
	} else {
		b.WriteString("Choose only from these available courses:\n")
		for _, c := range available {
			fmt.Fprintf(&b, "- %s: %s (%.1f credits)\n", c.CourseCode, c.Title, c.Credits)
		}
	}
	b.WriteString("\nFor each recommendation give the course code, the title and one sentence explaining why it fits.")
	return b.String()
}
