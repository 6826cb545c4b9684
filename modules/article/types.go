package article

import (
	"time"
)

// CreateArticleRequest represents an article creation service request.
type CreateArticleRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Active      bool    `json:"active"`
}

// GetArticleRequest represents an article lookup service request.
type GetArticleRequest struct {
	ID uint `json:"id"`
}

// ListArticlesRequest represents an article listing service request with
// optional filters.
type ListArticlesRequest struct {
	Category string `json:"category,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// ListArticlesResponse represents an article listing service response.
type ListArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
}

// UpdateArticleRequest represents a partial article update service request.
// Nil fields are left unchanged.
type UpdateArticleRequest struct {
	ID          uint     `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// DeleteArticleRequest represents an article deletion service request.
type DeleteArticleRequest struct {
	ID uint `json:"id"`
}

// DeleteArticleResponse represents an article deletion service response.
type DeleteArticleResponse struct {
	Deleted bool   `json:"deleted"`
	ID      uint   `json:"id"`
	Name    string `json:"name,omitempty"`
}

// ListCategoriesRequest represents a category listing service request.
type ListCategoriesRequest struct{}

// ListCategoriesResponse represents a category listing service response.
type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ArticleResponse represents an article in service responses.
type ArticleResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Category    string     `json:"category"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
