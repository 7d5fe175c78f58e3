package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/jwt"
	"github.com/atelier-dev/atelier/internal/middleware"
)

// --- Service mocks ---

type MockAuthService struct {
	LoginFunc func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

type MockSetupService struct {
	AvailableFunc     func() (bool, error)
	CreateFirstFunc   func(email, password, name string) (domain.Account, error)
	CreateAccountFunc func(email, password, name string, role domain.Role) (domain.Account, error)
}

func (m *MockSetupService) Available() (bool, error) {
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return true, nil
}

func (m *MockSetupService) CreateFirst(email, password, name string) (domain.Account, error) {
	if m.CreateFirstFunc != nil {
		return m.CreateFirstFunc(email, password, name)
	}
	return domain.Account{Id: uuid.New(), Email: email, Name: name, Role: domain.RoleSuperadmin}, nil
}

func (m *MockSetupService) CreateAccount(email, password, name string, role domain.Role) (domain.Account, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(email, password, name, role)
	}
	return domain.Account{Id: uuid.New(), Email: email, Name: name, Role: role}, nil
}

type MockBlogService struct {
	CreateFunc func(draft domain.BlogPostDraft) (domain.BlogPost, error)
	GetFunc    func(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error)
	ListFunc   func(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error)
	UpdateFunc func(id uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error)
	DeleteFunc func(id uuid.UUID) error
}

func (m *MockBlogService) Create(draft domain.BlogPostDraft) (domain.BlogPost, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(draft)
	}
	return domain.BlogPost{Id: uuid.New(), Title: draft.Title}, nil
}

func (m *MockBlogService) Get(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error) {
	if m.GetFunc != nil {
		return m.GetFunc(idOrSlug, includeUnpublished)
	}
	return domain.BlogPost{}, internal_errors.NotFound("Blog post not found")
}

func (m *MockBlogService) List(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(filter, page, limit)
	}
	return domain.BlogPage{Pagination: domain.NewPagination(0, 1, domain.DefaultPageSize)}, nil
}

func (m *MockBlogService) Update(id uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, patch)
	}
	return domain.BlogPost{Id: id}, nil
}

func (m *MockBlogService) Delete(id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type MockProjectService struct {
	CreateFunc func(draft domain.ProjectDraft) (domain.Project, error)
	GetFunc    func(idOrSlug string, includeUnpublished bool) (domain.Project, error)
	ListFunc   func(filter domain.ContentFilter, page, limit int) (domain.ProjectPage, error)
	UpdateFunc func(id uuid.UUID, patch domain.ProjectPatch) (domain.Project, error)
	DeleteFunc func(id uuid.UUID) error
}

func (m *MockProjectService) Create(draft domain.ProjectDraft) (domain.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(draft)
	}
	return domain.Project{Id: uuid.New(), Title: draft.Title}, nil
}

func (m *MockProjectService) Get(idOrSlug string, includeUnpublished bool) (domain.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(idOrSlug, includeUnpublished)
	}
	return domain.Project{}, internal_errors.NotFound("Project not found")
}

func (m *MockProjectService) List(filter domain.ContentFilter, page, limit int) (domain.ProjectPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(filter, page, limit)
	}
	return domain.ProjectPage{Pagination: domain.NewPagination(0, 1, domain.DefaultPageSize)}, nil
}

func (m *MockProjectService) Update(id uuid.UUID, patch domain.ProjectPatch) (domain.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, patch)
	}
	return domain.Project{Id: id}, nil
}

func (m *MockProjectService) Delete(id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type MockMailer struct {
	IsCorrectFunc func(email string) error
	SendFunc      func(recipient, subject, body string) error
}

func (m *MockMailer) IsCorrect(email string) error {
	if m.IsCorrectFunc != nil {
		return m.IsCorrectFunc(email)
	}
	return nil
}

func (m *MockMailer) Send(recipient, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(recipient, subject, body)
	}
	return nil
}

// --- Request helpers ---

func createRequest(t *testing.T, method, target string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

// testSession builds a jwt service plus a valid session cookie for role.
func testSession(t *testing.T, role domain.Role) (*jwt.Jwt, *http.Cookie) {
	t.Helper()
	jwtService := jwt.New("test-secret", time.Hour)
	token, err := jwtService.NewToken(domain.Account{
		Id:    uuid.New(),
		Email: "admin@example.com",
		Name:  "Admin",
		Role:  role,
	})
	require.NoError(t, err)
	return jwtService, &http.Cookie{Name: middleware.CookieName, Value: token}
}
