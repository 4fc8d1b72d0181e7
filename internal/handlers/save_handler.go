package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SaveHandler handles bookmark HTTP requests
type SaveHandler struct {
	saveRepository        repositories.SaveRepository
	publicationRepository repositories.PublicationRepository
	articleRepository     repositories.ArticleRepository
}

// NewSaveHandler creates a new SaveHandler
func NewSaveHandler(saveRepo repositories.SaveRepository, publicationRepo repositories.PublicationRepository, articleRepo repositories.ArticleRepository) *SaveHandler {
	return &SaveHandler{
		saveRepository:        saveRepo,
		publicationRepository: publicationRepo,
		articleRepository:     articleRepo,
	}
}

// RegisterSaveRoutes registers save-related routes
func (h *SaveHandler) RegisterSaveRoutes(g *echo.Group) {
	g.POST("/saves", h.CreateSave)
	g.DELETE("/saves", h.DeleteSave)
	g.GET("/saves/status/:userId/:itemId/:itemType", h.GetSaveStatus)
	g.GET("/saves/user/:userId", h.GetSavedItems)
}

// adjustItemCounter bumps the saved counter on the bookmarked item itself.
// Best-effort: a missing item only logs.
func (h *SaveHandler) adjustItemCounter(c echo.Context, itemID, itemType string, delta int) {
	var err error
	switch itemType {
	case models.SaveItemPublication:
		_, err = h.publicationRepository.AdjustCounter(c.Request().Context(), itemID, models.CounterSaved, delta)
	case models.SaveItemArticle:
		err = h.articleRepository.AdjustSavesCount(c.Request().Context(), itemID, delta)
	}
	if err != nil {
		log.Printf("could not adjust saves counter for %s %s: %v", itemType, itemID, err)
	}
}

// CreateSave bookmarks an item. Saving the same item twice is an idempotent
// success, not a conflict.
func (h *SaveHandler) CreateSave(c echo.Context) error {
	var req models.SaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user, itemId et itemType requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	save := &models.Save{
		User:      req.User,
		ItemID:    req.ItemID,
		ItemType:  req.ItemType,
		ItemOwner: req.ItemOwner,
	}
	if err := h.saveRepository.CreateSave(c.Request().Context(), save); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Déjà enregistré"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.adjustItemCounter(c, req.ItemID, req.ItemType, 1)

	return c.JSON(http.StatusCreated, echo.Map{"save": save})
}

// DeleteSave removes a bookmark; the item counter is decremented only when a
// deletion actually occurred.
func (h *SaveHandler) DeleteSave(c echo.Context) error {
	var req models.SaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user, itemId et itemType requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	deleted, err := h.saveRepository.DeleteSave(c.Request().Context(), req.User, req.ItemID, req.ItemType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Save non trouvée")
	}

	h.adjustItemCounter(c, req.ItemID, req.ItemType, -1)

	return c.JSON(http.StatusOK, echo.Map{"message": "Supprimé"})
}

// GetSaveStatus reports whether a user has saved an item
func (h *SaveHandler) GetSaveStatus(c echo.Context) error {
	saved, err := h.saveRepository.IsSaved(c.Request().Context(), c.Param("userId"), c.Param("itemId"), c.Param("itemType"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// GetSavedItems lists a user's bookmarks, optionally filtered by item type
func (h *SaveHandler) GetSavedItems(c echo.Context) error {
	saves, err := h.saveRepository.GetSavesByUser(c.Request().Context(), c.Param("userId"), c.QueryParam("itemType"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, saves)
}
