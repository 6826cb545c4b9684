package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MilorES/ComandesJSDR-Back/modules/article"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// ListArticles returns the article catalog, optionally filtered by the
// "category" and "active" query parameters.
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	req := article.ListArticlesRequest{
		Category: c.Query("category"),
	}

	if activeParam := c.Query("active"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			return badRequest(c, "Invalid value for active filter")
		}
		req.Active = &active
	}

	var resp article.ListArticlesResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	articles := make([]ArticleResponse, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, toArticleResponse(a))
	}
	return c.Status(fiber.StatusOK).JSON(articles)
}

// GetArticle returns a single article by ID.
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid article ID")
	}

	req := article.GetArticleRequest{ID: uint(id)}
	var resp article.ArticleResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toArticleResponse(resp))
}

// CreateArticle creates a new article.
func (h *Handlers) CreateArticle(c *fiber.Ctx) error {
	var req CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	createReq := article.CreateArticleRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      active,
	}
	var resp article.ArticleResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"create",
		json.Marshal,
		json.Unmarshal,
		&createReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toArticleResponse(resp))
}

// UpdateArticle applies a partial update to an article.
func (h *Handlers) UpdateArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid article ID")
	}

	var req UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updateReq := article.UpdateArticleRequest{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      req.Active,
	}
	var resp article.ArticleResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"update",
		json.Marshal,
		json.Unmarshal,
		&updateReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toArticleResponse(resp))
}

// DeleteArticle removes an article.
func (h *Handlers) DeleteArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid article ID")
	}

	req := article.DeleteArticleRequest{ID: uint(id)}
	var resp article.DeleteArticleResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: fmt.Sprintf("Article %q deleted successfully", resp.Name),
	})
}

// ListCategories returns the distinct article categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	var resp article.ListCategoriesResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.articleContainer,
		"categories",
		json.Marshal,
		json.Unmarshal,
		&article.ListCategoriesRequest{},
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Categories)
}

func toArticleResponse(resp article.ArticleResponse) ArticleResponse {
	return ArticleResponse{
		ID:          resp.ID,
		Name:        resp.Name,
		Description: resp.Description,
		Price:       resp.Price,
		Stock:       resp.Stock,
		Category:    resp.Category,
		Active:      resp.Active,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}
