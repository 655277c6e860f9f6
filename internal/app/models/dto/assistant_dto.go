package dto

// ChatMessage is a single turn in the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// AssistantRequest is the payload for POST /api/ai-assistant. Action requests
// are acknowledged without contacting the model.
type AssistantRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
	Action  string        `json:"action"`
}

// ExtractedStudent is the structured registration candidate the assistant
// produces once the conversation has collected every field. It matches the
// student-create payload so the client can submit it unchanged.
type ExtractedStudent struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	StudentCode   string `json:"studentId"`
	Gender        string `json:"gender"`
	GradeLevel    string `json:"gradeLevel"`
	Age           *int   `json:"age"`
	ParentContact string `json:"parentContact"`
	Address       string `json:"address"`
}

// AssistantResponse carries the model reply and, when the conversation is
// complete, the extracted student.
type AssistantResponse struct {
	Response      string            `json:"response"`
	ExtractedData *ExtractedStudent `json:"extractedData,omitempty"`
}
