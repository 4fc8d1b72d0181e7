package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	publicationRepository  repositories.PublicationRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, publicationRepo repositories.PublicationRepository, notificationRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		publicationRepository:  publicationRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.LikePost)
	g.DELETE("/likes", h.UnlikePost)
	g.GET("/likes/status", h.GetLikeStatus)
	g.GET("/likes/count", h.CountLikes)
}

// LikePost creates a like edge, notifies the post owner and bumps the counter.
func (h *LikeHandler) LikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user et postId requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	publication, err := h.publicationRepository.GetPublicationByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Publication non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	like := &models.Like{
		User:      req.User,
		PostID:    req.PostID,
		PostOwner: publication.User,
	}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Déjà liké")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// no self-notification
	if req.User != publication.User {
		notification := &models.Notification{
			User:       publication.User,
			From:       req.User,
			Kind:       models.NotificationLike,
			TargetID:   req.PostID,
			TargetType: "post",
			Text:       " a aimé votre look",
		}
		if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
			log.Printf("could not create like notification: %v", err)
		}
	}

	if _, err := h.publicationRepository.AdjustCounter(ctx, req.PostID, models.CounterLikes, 1); err != nil {
		log.Printf("could not increment likes counter for %s: %v", req.PostID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"liked": true, "like": like})
}

// UnlikePost removes a like edge; the counter is decremented only when a
// deletion actually occurred.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user et postId requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	deleted, err := h.likeRepository.DeleteLike(ctx, req.User, req.PostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if deleted {
		if _, err := h.publicationRepository.AdjustCounter(ctx, req.PostID, models.CounterLikes, -1); err != nil {
			log.Printf("could not decrement likes counter for %s: %v", req.PostID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"unliked": deleted})
}

// GetLikeStatus reports whether a user has liked a post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	user := c.QueryParam("user")
	postID := c.QueryParam("postId")
	if user == "" || postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user et postId requis")
	}

	liked, err := h.likeRepository.HasLiked(c.Request().Context(), user, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"isLiked": liked})
}

// CountLikes returns the live number of like documents for a post
func (h *LikeHandler) CountLikes(c echo.Context) error {
	postID := c.QueryParam("postId")
	if postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postId requis")
	}

	count, err := h.likeRepository.CountByPost(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
