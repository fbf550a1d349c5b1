package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de error expuestos por la API.
const (
	CodeMalformedInput = "MALFORMED_INPUT"
	CodeInvalidParams  = "INVALID_PARAMS"
	CodeNotFound       = "NOT_FOUND"
	CodePrecondition   = "PRECONDITION_FAILED"
	CodeInternal       = "INTERNAL"
)
