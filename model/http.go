package model

type ExtractResponse struct {
	RequestID string   `json:"request_id"`
	Pitch     []Row    `json:"pitch"`
	Settings  Settings `json:"settings"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
