package handlers

import (
	"errors"
	"net/http"

	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ArticleHandler handles the read-only article surface. Articles are created
// through the publication flow only.
type ArticleHandler struct {
	articleRepository repositories.ArticleRepository
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleRepo repositories.ArticleRepository) *ArticleHandler {
	return &ArticleHandler{articleRepository: articleRepo}
}

// RegisterArticleRoutes registers article-related routes
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group) {
	g.GET("/articles", h.GetArticles)
	g.GET("/articles/:id", h.GetArticle)
}

// GetArticles lists all articles, newest first
func (h *ArticleHandler) GetArticles(c echo.Context) error {
	articles, err := h.articleRepository.GetAllArticles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, articles)
}

// GetArticle retrieves a single article by ID
func (h *ArticleHandler) GetArticle(c echo.Context) error {
	article, err := h.articleRepository.GetArticleByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article non trouvé")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, article)
}
