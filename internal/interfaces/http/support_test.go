package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dfquintero/mercado-api/internal/application/auth"
	"github.com/dfquintero/mercado-api/internal/application/dto"
	"github.com/dfquintero/mercado-api/internal/application/usecase"
	"github.com/dfquintero/mercado-api/internal/domain"
	"github.com/dfquintero/mercado-api/internal/domain/entity"
	httpapi "github.com/dfquintero/mercado-api/internal/interfaces/http"
)

const (
	testSecret     = "test-secret-key-for-http-tests"
	testCookieName = "session_id"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar la app completa sin Postgres ni Redis
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

type memSessions struct {
	byID map[string]string
}

func (s *memSessions) Create(userID string, _ time.Duration) (string, error) {
	id := uuid.New().String()
	s.byID[id] = userID
	return id, nil
}

func (s *memSessions) Get(sessionID string) (string, error) {
	return s.byID[sessionID], nil
}

func (s *memSessions) Delete(sessionID string) error {
	delete(s.byID, sessionID)
	return nil
}

type fakeMailer struct {
	lastTo  string
	lastURL string
}

func (m *fakeMailer) SendPasswordResetEmail(to, resetURL string) error {
	m.lastTo = to
	m.lastURL = resetURL
	return nil
}

type memProductRepo struct {
	products []*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Search(query, sortField string, desc bool) ([]*entity.Product, error) {
	// Suficiente para los tests HTTP: el ordenamiento fino se prueba en el
	// caso de uso.
	return r.List()
}

func (r *memProductRepo) Select(productID, userID string) (bool, error) {
	for _, p := range r.products {
		if p.ID != productID {
			continue
		}
		if p.SelectedBy == nil || *p.SelectedBy == userID {
			uid := userID
			p.SelectedBy = &uid
			return true, nil
		}
		return false, nil
	}
	return false, nil
}

type memReportRepo struct {
	reports []*entity.ProductReport
}

func (r *memReportRepo) Create(rep *entity.ProductReport) error {
	cp := *rep
	r.reports = append(r.reports, &cp)
	return nil
}

func (r *memReportRepo) ListByProduct(productID string) ([]*entity.ProductReport, error) {
	var out []*entity.ProductReport
	for _, rep := range r.reports {
		if rep.ProductID == productID {
			cp := *rep
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePDF struct{}

func (fakePDF) GenerateCatalogPDF(_ []*entity.Product) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	sessions *memSessions
	mailer   *fakeMailer
	products *memProductRepo
}

func newTestEnv() *testEnv {
	users := &memUserRepo{byID: map[string]*entity.User{}}
	sessions := &memSessions{byID: map[string]string{}}
	mailer := &fakeMailer{}
	products := &memProductRepo{}
	reports := &memReportRepo{}

	cookieTTL := 24 * time.Hour
	authUC := auth.NewAuthUseCase(users, sessions, mailer, auth.TokenConfig{
		Secret:     testSecret,
		Issuer:     "mercado-api-test",
		AccessTTL:  40 * time.Minute,
		RefreshTTL: cookieTTL,
		ResetTTL:   15 * time.Minute,
		BaseURL:    "http://localhost:8080",
	})
	productUC := usecase.NewProductUseCase(products, reports, fakePDF{})

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		Users:      users,
		Sessions:   sessions,
		Secret:     testSecret,
		CookieName: testCookieName,
		CookieTTL:  cookieTTL,
	})
	return &testEnv{app: app, users: users, sessions: sessions, mailer: mailer, products: products}
}

// doJSON ejecuta un request contra la app. body nil manda el request sin
// cuerpo; bearer y cookie vacíos se omiten.
func (e *testEnv) doJSON(t *testing.T, method, target string, body any, bearer, cookie string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerAndLogin crea un usuario y devuelve sus tokens y su cookie de sesión.
func (e *testEnv) registerAndLogin(t *testing.T, emailAddr string) (dto.LoginResponse, string) {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     emailAddr,
		Name:      "Test User",
		Password:  "testpass123",
		Password2: "testpass123",
		TC:        true,
	}, "", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    emailAddr,
		Password: "testpass123",
	}, "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sessionID string
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID, "login debe emitir la cookie de sesión")
	return decodeJSON[dto.LoginResponse](t, resp), sessionID
}

// createProduct crea un producto vía la API y devuelve la respuesta.
func (e *testEnv) createProduct(t *testing.T, bearer, name, price string) dto.ProductResponse {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:           name,
		Price:          decimal.RequireFromString(price),
		AvailableStock: 5,
	}, bearer, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeJSON[dto.ProductResponse](t, resp)
}

// makeStaff promueve al usuario a staff directamente en el repo.
func (e *testEnv) makeStaff(t *testing.T, userID string) {
	t.Helper()
	u, err := e.users.GetByID(userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	u.IsStaff = true
	require.NoError(t, e.users.Update(u))
}
