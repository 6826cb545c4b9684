package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/article"
	"github.com/go-monolith/mono"
)

// ErrNameTaken is returned when an article name is already in use. Names
// are compared case-insensitively.
var ErrNameTaken = errors.New("article name already exists")

// createArticle handles the article create service request.
func (m *ArticleModule) createArticle(_ context.Context, req CreateArticleRequest, _ *mono.Msg) (ArticleResponse, error) {
	if err := validateArticleFields(req.Name, req.Description, req.Category, req.Price, req.Stock); err != nil {
		return ArticleResponse{}, err
	}

	taken, err := m.repo.NameExists(req.Name, 0)
	if err != nil {
		return ArticleResponse{}, err
	}
	if taken {
		return ArticleResponse{}, ErrNameTaken
	}

	article := &domain.Article{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      req.Active,
		CreatedAt:   time.Now().UTC(),
	}

	if err := m.repo.Create(article); err != nil {
		return ArticleResponse{}, err
	}

	return toArticleResponse(article), nil
}

// getArticle handles the article get service request.
func (m *ArticleModule) getArticle(_ context.Context, req GetArticleRequest, _ *mono.Msg) (ArticleResponse, error) {
	article, err := m.repo.FindByID(req.ID)
	if err != nil {
		return ArticleResponse{}, err
	}
	return toArticleResponse(article), nil
}

// listArticles handles the article list service request.
func (m *ArticleModule) listArticles(_ context.Context, req ListArticlesRequest, _ *mono.Msg) (ListArticlesResponse, error) {
	articles, err := m.repo.FindAll(Filter{
		Category: req.Category,
		Active:   req.Active,
	})
	if err != nil {
		return ListArticlesResponse{}, err
	}

	response := ListArticlesResponse{
		Articles: make([]ArticleResponse, 0, len(articles)),
		Total:    len(articles),
	}
	for _, article := range articles {
		response.Articles = append(response.Articles, toArticleResponse(article))
	}
	return response, nil
}

// updateArticle handles the article update service request.
func (m *ArticleModule) updateArticle(_ context.Context, req UpdateArticleRequest, _ *mono.Msg) (ArticleResponse, error) {
	article, err := m.repo.FindByID(req.ID)
	if err != nil {
		return ArticleResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return ArticleResponse{}, fmt.Errorf("name cannot be empty")
		}
		if len(*req.Name) > 100 {
			return ArticleResponse{}, fmt.Errorf("name must be at most 100 characters")
		}
		taken, err := m.repo.NameExists(*req.Name, req.ID)
		if err != nil {
			return ArticleResponse{}, err
		}
		if taken {
			return ArticleResponse{}, ErrNameTaken
		}
		article.Name = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > 500 {
			return ArticleResponse{}, fmt.Errorf("description must be at most 500 characters")
		}
		article.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return ArticleResponse{}, fmt.Errorf("price must be greater than 0")
		}
		article.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return ArticleResponse{}, fmt.Errorf("stock cannot be negative")
		}
		article.Stock = *req.Stock
	}
	if req.Category != nil {
		if len(*req.Category) > 20 {
			return ArticleResponse{}, fmt.Errorf("category must be at most 20 characters")
		}
		article.Category = *req.Category
	}
	if req.Active != nil {
		article.Active = *req.Active
	}

	now := time.Now().UTC()
	article.UpdatedAt = &now

	if err := m.repo.Update(article); err != nil {
		return ArticleResponse{}, err
	}

	return toArticleResponse(article), nil
}

// deleteArticle handles the article delete service request.
func (m *ArticleModule) deleteArticle(_ context.Context, req DeleteArticleRequest, _ *mono.Msg) (DeleteArticleResponse, error) {
	article, err := m.repo.FindByID(req.ID)
	if err != nil {
		return DeleteArticleResponse{Deleted: false, ID: req.ID}, err
	}

	if err := m.repo.Delete(req.ID); err != nil {
		return DeleteArticleResponse{Deleted: false, ID: req.ID}, err
	}

	return DeleteArticleResponse{Deleted: true, ID: req.ID, Name: article.Name}, nil
}

// listCategories handles the category listing service request.
func (m *ArticleModule) listCategories(_ context.Context, _ ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	categories, err := m.repo.Categories()
	if err != nil {
		return ListCategoriesResponse{}, err
	}
	return ListCategoriesResponse{Categories: categories}, nil
}

func validateArticleFields(name, description, category string, price float64, stock int) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	if len(description) > 500 {
		return fmt.Errorf("description must be at most 500 characters")
	}
	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if len(category) > 20 {
		return fmt.Errorf("category must be at most 20 characters")
	}
	return nil
}

func toArticleResponse(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:          article.ID,
		Name:        article.Name,
		Description: article.Description,
		Price:       article.Price,
		Stock:       article.Stock,
		Category:    article.Category,
		Active:      article.Active,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
}
