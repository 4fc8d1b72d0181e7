package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/lookshare/backend/internal/uploads"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoStore abstracts the uploaded-photo storage used by the publication flow.
type PhotoStore interface {
	Save(file *multipart.FileHeader, publicationID, userID, kind string) (string, error)
	Remove(url string) error
}

// PublicationHandler handles HTTP requests related to publications
type PublicationHandler struct {
	publicationRepository repositories.PublicationRepository
	articleRepository     repositories.ArticleRepository
	viewedRepository      repositories.ViewedPublicationRepository
	photos                PhotoStore
}

// NewPublicationHandler creates a new PublicationHandler
func NewPublicationHandler(
	publicationRepo repositories.PublicationRepository,
	articleRepo repositories.ArticleRepository,
	viewedRepo repositories.ViewedPublicationRepository,
	photos PhotoStore,
) *PublicationHandler {
	return &PublicationHandler{
		publicationRepository: publicationRepo,
		articleRepository:     articleRepo,
		viewedRepository:      viewedRepo,
		photos:                photos,
	}
}

// RegisterPublicationRoutes registers publication-related routes
func (h *PublicationHandler) RegisterPublicationRoutes(g *echo.Group) {
	g.POST("/publications", h.CreatePublication)
	g.GET("/publications", h.GetPublications)
	g.GET("/publications/user/:userId", h.GetPublicationsByUser)
	g.GET("/publications/:id", h.GetPublication)
	g.PUT("/publications/:id", h.UpdatePublication)
	g.DELETE("/publications/:id", h.DeletePublication)
	g.POST("/publications/:id/view", h.MarkViewed)
	g.GET("/publications/:id/articles", h.GetArticlesByPublication)
	g.POST("/publications/:id/like", h.AdjustLikes)
}

// CreatePublication creates a publication from a multipart form, storing its
// photos and bulk-inserting the attached articles.
func (h *PublicationHandler) CreatePublication(c echo.Context) error {
	req := models.CreatePublicationRequest{
		Description: c.FormValue("description"),
		User:        c.FormValue("user"),
	}
	if req.User == "" {
		// older frontend revisions send userId instead of user
		req.User = c.FormValue("userId")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var inputs []models.ArticleInput
	if raw := c.FormValue("articles"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			log.Printf("could not parse articles field: %v", err)
			inputs = nil
		}
	}

	// The id is generated before any file is written so filenames carry it
	// from the start.
	pubID := primitive.NewObjectID()

	urlsPhotos := []string{}
	form, _ := c.MultipartForm()
	if form != nil {
		for _, file := range form.File["publicationPhoto"] {
			url, err := h.photos.Save(file, pubID.Hex(), req.User, uploads.KindPhoto)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			urlsPhotos = append(urlsPhotos, url)
		}
		// article photos pair positionally with the submitted article entries
		for i, file := range form.File["articlePhotos"] {
			if i >= len(inputs) {
				break
			}
			url, err := h.photos.Save(file, pubID.Hex(), req.User, uploads.KindArticle)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			inputs[i].URLPhoto = url
		}
	}

	publication := &models.Publication{
		ID:          pubID,
		Description: req.Description,
		User:        req.User,
		UrlsPhotos:  urlsPhotos,
	}
	if err := h.publicationRepository.CreatePublication(c.Request().Context(), publication); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var toCreate []models.Article
	for _, in := range inputs {
		titre := in.NormalizedTitre()
		if titre == "" || in.URLPhoto == "" {
			continue
		}
		toCreate = append(toCreate, models.Article{
			PublicationID: pubID,
			URLPhoto:      in.URLPhoto,
			Titre:         titre,
			Description:   in.Description,
			Prix:          in.NormalizedPrix(),
			Lien:          in.NormalizedLien(),
			User:          req.User,
		})
	}

	articles, err := h.articleRepository.CreateArticles(c.Request().Context(), toCreate)
	if err != nil {
		// the publication is already persisted; article creation is not rolled back
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"publication": publication, "articles": articles})
}

// GetPublications retrieves all publications, or only those a user has not
// viewed yet when userId is given.
func (h *PublicationHandler) GetPublications(c echo.Context) error {
	userID := c.QueryParam("userId")

	if userID == "" {
		publications, err := h.publicationRepository.GetAllPublications(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, publications)
	}

	viewedIDs, err := h.viewedRepository.GetViewedPublicationIDs(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publications, err := h.publicationRepository.GetPublicationsExcluding(c.Request().Context(), viewedIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publications)
}

// GetPublication retrieves a publication by ID
func (h *PublicationHandler) GetPublication(c echo.Context) error {
	publication, err := h.publicationRepository.GetPublicationByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Publication non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publication)
}

// UpdatePublication applies a merge-patch to a publication
func (h *PublicationHandler) UpdatePublication(c echo.Context) error {
	var req models.UpdatePublicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	publication, err := h.publicationRepository.UpdatePublication(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Publication non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publication)
}

// DeletePublication deletes a publication, its articles and their photo files.
func (h *PublicationHandler) DeletePublication(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	publication, err := h.publicationRepository.GetPublicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Publication non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	articles, err := h.articleRepository.GetArticlesByPublication(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// best-effort file cleanup; failures must not block the delete
	for _, url := range publication.UrlsPhotos {
		if err := h.photos.Remove(url); err != nil {
			log.Printf("could not remove photo %s: %v", url, err)
		}
	}
	for _, article := range articles {
		if err := h.photos.Remove(article.URLPhoto); err != nil {
			log.Printf("could not remove photo %s: %v", article.URLPhoto, err)
		}
	}

	if err := h.articleRepository.DeleteArticlesByPublication(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.publicationRepository.DeletePublication(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkViewed records that a user has seen a publication. Idempotent: a second
// call acknowledges without creating a duplicate marker.
func (h *PublicationHandler) MarkViewed(c echo.Context) error {
	var req models.MarkViewedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	publicationID := c.Param("id")
	ctx := c.Request().Context()

	viewed, err := h.viewedRepository.HasViewed(ctx, req.UserID, publicationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if viewed {
		return c.JSON(http.StatusOK, echo.Map{"message": "Publication déjà marquée comme vue."})
	}

	view := &models.ViewedPublication{User: req.UserID, Publication: publicationID}
	if err := h.viewedRepository.MarkViewed(ctx, view); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Publication marquée comme vue."})
}

// GetArticlesByPublication retrieves the articles attached to a publication.
// A publication without articles yields 200 with an empty array.
func (h *PublicationHandler) GetArticlesByPublication(c echo.Context) error {
	articles, err := h.articleRepository.GetArticlesByPublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, articles)
}

// GetPublicationsByUser retrieves every publication by an author, including
// those already viewed.
func (h *PublicationHandler) GetPublicationsByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId manquant")
	}

	publications, err := h.publicationRepository.GetPublicationsByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publications)
}

// AdjustLikes adjusts the likes counter by exactly +1 or -1.
func (h *PublicationHandler) AdjustLikes(c echo.Context) error {
	var req models.AdjustLikesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Increment != 1 && req.Increment != -1 {
		return echo.NewHTTPError(http.StatusBadRequest, "increment doit être 1 ou -1")
	}

	publication, err := h.publicationRepository.AdjustCounter(c.Request().Context(), c.Param("id"), models.CounterLikes, req.Increment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Publication non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": publication.Likes})
}
