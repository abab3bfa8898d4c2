package dto

// ErrorResponse cuerpo de error HTTP. Fields trae los errores por campo
// cuando el código es VALIDATION.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple de éxito.
type MessageResponse struct {
	Msg string `json:"msg"`
}
