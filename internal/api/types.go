package api

// ErrorResponse is the stable error body shape for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
