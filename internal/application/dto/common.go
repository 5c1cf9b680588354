package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NoticeResponse aviso transitorio para el operador (info, success, error).
type NoticeResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
