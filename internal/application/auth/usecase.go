// Package auth implementa los casos de uso de cuentas: registro, login,
// logout, perfil, cambio de password y el flujo de reset por email.
package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfquintero/mercado-api/internal/application/dto"
	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/internal/domain"
	"github.com/dfquintero/mercado-api/internal/domain/entity"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
	"github.com/dfquintero/mercado-api/pkg/token"
)

// TokenConfig vigencias y firma de tokens/sesiones.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration // 40 min
	RefreshTTL time.Duration // 1 día; también TTL de la sesión cookie
	ResetTTL   time.Duration // 15 min
	BaseURL    string        // para armar el link de reset
}

// AuthUseCase casos de uso de autenticación y cuenta.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions ports.SessionStore
	mailer   ports.Mailer
	cfg      TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, sessions ports.SessionStore, mailer ports.Mailer, cfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions, mailer: mailer, cfg: cfg}
}

// Register crea un usuario: valida campos, hashea el password con bcrypt y
// persiste. Devuelve ErrEmailAlreadyExists si el email ya está en uso.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	verr := &domain.ValidationError{}
	if in.Email == "" {
		verr.Add("email", "este campo es requerido")
	}
	if in.Name == "" {
		verr.Add("name", "este campo es requerido")
	}
	if in.Password == "" {
		verr.Add("password", "este campo es requerido")
	} else if len(in.Password) < 8 {
		verr.Add("password", "el password debe tener al menos 8 caracteres")
	}
	if in.Password != in.Password2 {
		verr.Add("password2", "los passwords no coinciden")
	}
	if !in.TC {
		verr.Add("tc", "debe aceptar los términos y condiciones")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Name:          in.Name,
		TermsAccepted: in.TC,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica credenciales, crea la sesión de servidor y emite el par de
// tokens. Email desconocido y password incorrecto devuelven el mismo
// ErrUnauthorized: la respuesta no permite enumerar cuentas.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", domain.NewValidationError("email", "email y password son requeridos")
	}
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, "", domain.ErrForbidden
	}

	access, err := token.GenerateAccess(uc.cfg.Secret, user.ID, uc.cfg.Issuer, uc.cfg.AccessTTL)
	if err != nil {
		return nil, "", err
	}
	refresh, err := token.GenerateRefresh(uc.cfg.Secret, user.ID, uc.cfg.Issuer, uc.cfg.RefreshTTL)
	if err != nil {
		return nil, "", err
	}
	sessionID, err := uc.sessions.Create(user.ID, uc.cfg.RefreshTTL)
	if err != nil {
		return nil, "", err
	}
	return &dto.LoginResponse{
		Access:  access,
		Refresh: refresh,
		User:    *toUserResponse(user),
	}, sessionID, nil
}

// Logout borra la sesión del lado servidor. Idempotente: hacer logout sin
// sesión (o dos veces) no es error.
func (uc *AuthUseCase) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(sessionID)
}

// Refresh emite un access token nuevo a partir de un refresh válido. El
// refresh no rota: sigue siendo válido hasta su expiración.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	userID, err := token.ParseRefresh(uc.cfg.Secret, in.Refresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	access, err := token.GenerateAccess(uc.cfg.Secret, user.ID, uc.cfg.Issuer, uc.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

// Profile devuelve los datos del usuario autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword cambia el password del usuario autenticado verificando el
// password actual.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.NewValidationError("old_password", "el password actual no es correcto")
	}
	if err := validateNewPassword(in.Password, in.Password2); err != nil {
		return err
	}
	return uc.updatePassword(user, in.Password)
}

// SendResetPasswordEmail genera uid+token y dispara el correo con el link de
// reset. Responde éxito exista o no el email: la respuesta es
// enumeration-safe, igual que el envío de magic links.
func (uc *AuthUseCase) SendResetPasswordEmail(in dto.SendResetEmailRequest) error {
	if in.Email == "" {
		return domain.NewValidationError("email", "este campo es requerido")
	}
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Info().Msg("reset de password solicitado para un email no registrado")
		return nil
	}
	tok, err := token.GenerateReset(uc.cfg.Secret, user.PasswordHash, user.ID, uc.cfg.Issuer, uc.cfg.ResetTTL)
	if err != nil {
		return err
	}
	uid := base64.RawURLEncoding.EncodeToString([]byte(user.ID))
	resetURL := fmt.Sprintf("%s/reset-password/%s/%s/", uc.cfg.BaseURL, uid, tok)
	if err := uc.mailer.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		// El error de envío se registra pero no se expone: la respuesta
		// sigue siendo 200 para no filtrar si la cuenta existe.
		log.Error().Err(err).Msg("envío del correo de reset")
	}
	return nil
}

// ResetPassword valida uid+token del link y actualiza el password. El token
// se firmó con el hash vigente, así que deja de validar apenas se usa.
func (uc *AuthUseCase) ResetPassword(uid, tok string, in dto.ResetPasswordRequest) error {
	rawID, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return domain.ErrInvalidToken
	}
	// El uid decodificado debe ser un UUID antes de consultar la base.
	if _, err := uuid.Parse(string(rawID)); err != nil {
		return domain.ErrInvalidToken
	}
	user, err := uc.users.GetByID(string(rawID))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidToken
	}
	userID, err := token.ParseReset(uc.cfg.Secret, user.PasswordHash, tok)
	if err != nil || userID != user.ID {
		return domain.ErrInvalidToken
	}
	if err := validateNewPassword(in.Password, in.Password2); err != nil {
		return err
	}
	return uc.updatePassword(user, in.Password)
}

func (uc *AuthUseCase) updatePassword(user *entity.User, plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.users.Update(user)
}

func validateNewPassword(password, password2 string) error {
	verr := &domain.ValidationError{}
	if password == "" {
		verr.Add("password", "este campo es requerido")
	} else if len(password) < 8 {
		verr.Add("password", "el password debe tener al menos 8 caracteres")
	}
	if password != password2 {
		verr.Add("password2", "los passwords no coinciden")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}
