// Package api holds the request/response DTOs shared by handlers and their
// tests. Validation tags are enforced by utils.DecodeValidate before any
// service call.
package api

import "github.com/atelier-dev/atelier/internal/domain"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

type LoginRequest struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

type SetupStatusResponse struct {
	SetupAvailable bool `json:"setupAvailable"`
}

type SetupRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
	Name     string `validate:"required" json:"name"`
}

type CreateAccountRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
	Name     string `validate:"required" json:"name"`
	Role     string `validate:"omitempty,oneof=admin superadmin" json:"role"`
}

// AccountResponse is the outward account shape; the hash never serializes.
type AccountResponse struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{Id: a.Id.String(), Email: a.Email, Name: a.Name, Role: string(a.Role)}
}

type CreateBlogPostRequest struct {
	Title       string   `validate:"required" json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `validate:"required" json:"body"`
	CoverImage  string   `json:"coverImage"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

type UpdateBlogPostRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Excerpt     *string   `json:"excerpt"`
	Body        *string   `json:"body"`
	CoverImage  *string   `json:"coverImage"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

// BlogPostResponse augments the entity with rendered HTML for public reads.
type BlogPostResponse struct {
	domain.BlogPost
	Html string `json:"html,omitempty"`
}

type CreateProjectRequest struct {
	Title        string   `validate:"required" json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `validate:"required" json:"description"`
	Body         string   `json:"body"`
	CoverImage   string   `json:"coverImage"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	LiveURL      string   `validate:"omitempty,url" json:"liveUrl"`
	RepoURL      string   `validate:"omitempty,url" json:"repoUrl"`
	IsFeatured   bool     `json:"isFeatured"`
	DisplayOrder *int     `json:"order"`
	IsPublished  bool     `json:"isPublished"`
}

type UpdateProjectRequest struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	Body         *string   `json:"body"`
	CoverImage   *string   `json:"coverImage"`
	Category     *string   `json:"category"`
	Tags         *[]string `json:"tags"`
	LiveURL      *string   `validate:"omitempty,url" json:"liveUrl"`
	RepoURL      *string   `validate:"omitempty,url" json:"repoUrl"`
	IsFeatured   *bool     `json:"isFeatured"`
	DisplayOrder *int      `json:"order"`
	IsPublished  *bool     `json:"isPublished"`
}

type ProjectResponse struct {
	domain.Project
	Html string `json:"html,omitempty"`
}

type ContactRequest struct {
	Name    string `validate:"required" json:"name"`
	Email   string `validate:"required,email" json:"email"`
	Subject string `json:"subject"`
	Message string `validate:"required" json:"message"`
}
