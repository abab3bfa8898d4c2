package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfquintero/mercado-api/internal/application/dto"
)

func TestRegisterEndpoint_CreaUsuario(t *testing.T) {
	env := newTestEnv()

	resp := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "nuevo@example.com",
		Name:      "Nuevo Usuario",
		Password:  "testpass123",
		Password2: "testpass123",
		TC:        true,
	}, "", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decodeJSON[dto.UserResponse](t, resp)
	assert.Equal(t, "nuevo@example.com", out.Email)
	assert.NotEmpty(t, out.ID)
}

func TestRegisterEndpoint_EmailDuplicado(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "dup@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "dup@example.com",
		Name:      "Otro",
		Password:  "testpass123",
		Password2: "testpass123",
		TC:        true,
	}, "", "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMAIL_EXISTS", out.Code)
}

// Los errores de validación llegan como 400 con el detalle por campo.
func TestRegisterEndpoint_ValidacionPorCampo(t *testing.T) {
	env := newTestEnv()

	resp := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "x@example.com",
		Name:      "X",
		Password:  "testpass123",
		Password2: "distinto123",
		TC:        false,
	}, "", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "password2")
	assert.Contains(t, out.Fields, "tc")
}

// El mensaje de credenciales inválidas es idéntico para email desconocido y
// password incorrecto.
func TestLoginEndpoint_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "login@example.com")

	respEmail := env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "nadie@example.com", Password: "testpass123",
	}, "", "")
	require.Equal(t, fiber.StatusUnauthorized, respEmail.StatusCode)
	outEmail := decodeJSON[dto.ErrorResponse](t, respEmail)

	respPass := env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "login@example.com", Password: "incorrecto",
	}, "", "")
	require.Equal(t, fiber.StatusUnauthorized, respPass.StatusCode)
	outPass := decodeJSON[dto.ErrorResponse](t, respPass)

	assert.Equal(t, "Email or Password is not valid", outEmail.Message)
	assert.Equal(t, outEmail, outPass)
}

func TestLogoutEndpoint_ExpiraLaCookie(t *testing.T) {
	env := newTestEnv()
	_, sessionID := env.registerAndLogin(t, "logout@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/logout", nil, "", sessionID)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La sesión murió: la misma cookie ya no autentica.
	resp = env.doJSON(t, http.MethodGet, "/api/auth/profile", nil, "", sessionID)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Logout repetido sigue siendo 200.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/logout", nil, "", sessionID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshEndpoint_EmiteAccessNuevo(t *testing.T) {
	env := newTestEnv()
	login, _ := env.registerAndLogin(t, "refresh2@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/refresh", dto.RefreshRequest{Refresh: login.Refresh}, "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeJSON[dto.RefreshResponse](t, resp)
	require.NotEmpty(t, out.Access)

	// El access nuevo autentica.
	resp = env.doJSON(t, http.MethodGet, "/api/auth/profile", nil, out.Access, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := newTestEnv()
	login, _ := env.registerAndLogin(t, "cambio@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/change-password", dto.ChangePasswordRequest{
		OldPassword: "testpass123",
		Password:    "nuevopass456",
		Password2:   "nuevopass456",
	}, login.Access, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "cambio@example.com", Password: "nuevopass456",
	}, "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// El endpoint de reset responde 200 exista o no el email.
func TestSendResetEmailEndpoint_SiempreResponde200(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "reset@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/send-reset-password-email",
		dto.SendResetEmailRequest{Email: "reset@example.com"}, "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, "reset@example.com", env.mailer.lastTo)

	resp = env.doJSON(t, http.MethodPost, "/api/auth/send-reset-password-email",
		dto.SendResetEmailRequest{Email: "nadie@example.com"}, "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestResetPasswordEndpoint_FlujoCompleto(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "flujo@example.com")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/send-reset-password-email",
		dto.SendResetEmailRequest{Email: "flujo@example.com"}, "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NotEmpty(t, env.mailer.lastURL)

	// Link: {base}/reset-password/{uid}/{token}/
	parts := strings.Split(strings.TrimSuffix(env.mailer.lastURL, "/"), "/")
	require.GreaterOrEqual(t, len(parts), 2)
	uid, tok := parts[len(parts)-2], parts[len(parts)-1]

	resp = env.doJSON(t, http.MethodPost, "/api/auth/reset-password/"+uid+"/"+tok,
		dto.ResetPasswordRequest{Password: "resetpass789", Password2: "resetpass789"}, "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El password nuevo funciona.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "flujo@example.com", Password: "resetpass789",
	}, "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El mismo link ya no sirve: el token era de un solo uso.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/reset-password/"+uid+"/"+tok,
		dto.ResetPasswordRequest{Password: "otropass000", Password2: "otropass000"}, "", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "TOKEN_INVALID", out.Code)
}
