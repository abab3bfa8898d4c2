package dto

import "time"

// RegisterRequest entrada de registro. password2 confirma el password y tc
// es la aceptación de términos y condiciones.
type RegisterRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	TC        bool   `json:"tc"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida de login: tokens Bearer + usuario. La sesión cookie se
// emite aparte en el handler.
type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

// RefreshRequest entrada para renovar el access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse salida con el access token nuevo. El refresh no rota.
type RefreshResponse struct {
	Access string `json:"access"`
}

// ChangePasswordRequest entrada para cambio de password autenticado.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
}

// SendResetEmailRequest entrada para solicitar el email de reset.
type SendResetEmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest entrada para confirmar el reset (uid y token van en la URL).
type ResetPasswordRequest struct {
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
