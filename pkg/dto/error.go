package dto

// ErrorResponse is the body of every failed request. Code is the outcome
// kind, for example "forbidden" or "invalid_state".
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
