package models

// APIResponse is the envelope shared by every endpoint. Message carries a
// human-readable summary; Error carries the underlying failure text on 500s.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UserListResponse wraps a user listing with its total count.
type UserListResponse struct {
	Success bool   `json:"success"`
	Data    []User `json:"data"`
	Total   int    `json:"total"`
}

// HealthResponse reports service health and the state of each dependency.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
