package dto

// ChatRequest is a message sent to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=4000" example:"How do I transfer a student?"`
}

// ChatResponse is the assistant reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
