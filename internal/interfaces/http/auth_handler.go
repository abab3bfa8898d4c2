package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dfquintero/mercado-api/internal/application/auth"
	"github.com/dfquintero/mercado-api/internal/application/dto"
)

// AuthHandler maneja registro, login/logout, perfil y el flujo de reset.
type AuthHandler struct {
	uc         *auth.AuthUseCase
	cookieName string
	cookieTTL  time.Duration
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, cookieTTL: cookieTTL}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, name, password, password2, tc"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, sessionID, err := h.uc.Login(in)
	if err != nil {
		return renderError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout borra la sesión del servidor y expira la cookie. Idempotente: sin
// sesión activa responde igual.
//
// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Cookies(h.cookieName)); err != nil {
		return renderError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Msg: "Sesión cerrada"})
}

// Refresh emite un access token nuevo; el refresh no rota.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Refresh(in)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(GetUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword cambia el password verificando el actual.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Password changed successfully"})
}

// SendResetPasswordEmail responde 200 exista o no el email: la respuesta no
// permite enumerar cuentas registradas.
//
// SendResetPasswordEmail godoc
// @Summary      Solicitar email de reset de password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendResetEmailRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/send-reset-password-email [post]
func (h *AuthHandler) SendResetPasswordEmail(c *fiber.Ctx) error {
	var in dto.SendResetEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SendResetPasswordEmail(in); err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Password reset link sent. Please check your email."})
}

// ResetPassword confirma el reset con el uid y token del link.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	uid := c.Params("uid")
	tok := c.Params("token")
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ResetPassword(uid, tok, in); err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Password reset successfully"})
}
