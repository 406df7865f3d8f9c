package server

import "quoteScope/internal/model"

// ToolResponse wraps a successful tool result.
type ToolResponse struct {
	Result any `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody names the failure kind and a human-readable message.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // dev mode only
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// ToolInfo describes one entry of the tool table.
type ToolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Arguments   []string `json:"arguments"`
}

// ToolsResponse lists the available tools.
type ToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}

// TokensResponse lists the supported tokens.
type TokensResponse struct {
	Tokens []model.TokenDescriptor `json:"tokens"`
}
