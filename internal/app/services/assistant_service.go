package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/genai"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// systemPrompt steers the model toward collecting the student registration
// fields one or two at a time, then emitting a machine-readable summary.
const systemPrompt = `You are a friendly registration assistant for a school administration portal.
Your job is to collect the information needed to register a new student:
full name, student ID, gender, grade level, age, parent contact number and home address.
Ask for missing details conversationally, one or two at a time. Keep replies short.
When every field has been collected, confirm the details with the user and append a
single JSON object on its own line at the very end of your reply, in this exact shape:
{"type":"student_registration","name":"...","studentId":"...","gender":"...","gradeLevel":"...","age":12,"parentContact":"...","address":"..."}
Do not wrap the JSON in markdown fences and do not emit it before all fields are known.`

const resetGreeting = "Hi! I can help you register a new student. What is the student's full name?"

// AssistantService defines the interface for the registration assistant
type AssistantService interface {
	Chat(ctx context.Context, p auth.Principal, req dto.AssistantRequest) (*dto.AssistantResponse, error)
}

// assistantServiceImpl implements the AssistantService interface
type assistantServiceImpl struct {
	client *genai.Client
}

// NewAssistantService creates a new assistant service instance
func NewAssistantService(client *genai.Client) AssistantService {
	return &assistantServiceImpl{client: client}
}

// Chat forwards the conversation to the model and extracts a structured
// student when the model signals completion.
func (s *assistantServiceImpl) Chat(ctx context.Context, p auth.Principal, req dto.AssistantRequest) (*dto.AssistantResponse, error) {
	if err := auth.Authorize(p, auth.ActionUseAssistant, auth.Resource{}); err != nil {
		return nil, err
	}

	// Reset is handled locally; the conversation state lives on the client.
	if req.Action == "reset" {
		return &dto.AssistantResponse{Response: resetGreeting}, nil
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("Message is required")
	}
	if !s.client.Enabled() {
		return nil, apperrors.ErrAssistantUnavailable
	}

	history := make([]genai.Turn, 0, len(req.History))
	for _, m := range req.History {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		history = append(history, genai.Turn{Role: role, Content: m.Content})
	}

	reply, err := s.client.GenerateContent(ctx, systemPrompt, history, message)
	if err != nil {
		logger.Error().Err(err).Msg("Assistant model call failed")
		return nil, apperrors.ErrAssistantUnavailable
	}

	text, extracted := extractStudent(reply)
	return &dto.AssistantResponse{Response: text, ExtractedData: extracted}, nil
}

// extractStudent pulls a trailing student_registration JSON object out of
// the model reply, returning the reply text without it. Models sometimes
// fence the JSON despite instructions, so fences are tolerated.
func extractStudent(reply string) (string, *dto.ExtractedStudent) {
	start := strings.LastIndex(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return strings.TrimSpace(reply), nil
	}

	candidate := reply[start : end+1]
	var student dto.ExtractedStudent
	if err := json.Unmarshal([]byte(candidate), &student); err != nil {
		return strings.TrimSpace(reply), nil
	}
	if student.Type != "student_registration" || student.Name == "" {
		return strings.TrimSpace(reply), nil
	}

	text := reply[:start]
	text = strings.TrimSuffix(strings.TrimSpace(text), "```json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text), &student
}
