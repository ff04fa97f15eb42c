package dto

// ChatRequest is the body of the chat endpoint
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
	ChatID  string `json:"chat_id,omitempty" binding:"omitempty,max=64"`
}

// OnboardRequest is the body of the onboarding endpoint. The first turn may be empty.
type OnboardRequest struct {
	Message string `json:"message" binding:"max=4000"`
}

// ChatResponse is what the orchestrator returns to the client
type ChatResponse struct {
	Reply             string      `json:"reply"`
	Tool              string      `json:"tool,omitempty"`
	VisualizationType string      `json:"visualizationType,omitempty"`
	Data              interface{} `json:"data,omitempty"`
	ChatID            string      `json:"chat_id,omitempty"`
}
