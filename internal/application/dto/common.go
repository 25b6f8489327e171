package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Available acompanha rejeições por saldo insuficiente.
	Available string `json:"available,omitempty"`
}
