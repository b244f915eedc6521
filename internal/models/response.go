package models

// ErrorResponse — стандартный формат ошибки HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}
