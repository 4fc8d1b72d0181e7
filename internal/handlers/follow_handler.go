package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, notificationRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follows", h.FollowUser)
	g.DELETE("/follows", h.UnfollowUser)
	g.GET("/follows/status", h.GetFollowStatus)
}

// FollowUser creates a follow edge and notifies the followed user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "follower et followed requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Follower == req.Followed {
		return echo.NewHTTPError(http.StatusBadRequest, "Impossible de se suivre soi-même")
	}

	ctx := c.Request().Context()

	follow := &models.Follow{Follower: req.Follower, Followed: req.Followed}
	if err := h.followRepository.CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Déjà suivi")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notification := &models.Notification{
		User: req.Followed,
		From: req.Follower,
		Kind: models.NotificationFollow,
		Text: "Nouvel abonné",
	}
	if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Printf("could not create follow notification: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"followed": true, "follow": follow})
}

// UnfollowUser removes a follow edge, reporting whether one existed
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "follower et followed requis")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	deleted, err := h.followRepository.DeleteFollow(c.Request().Context(), req.Follower, req.Followed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"unfollowed": deleted})
}

// GetFollowStatus reports whether follower follows followed
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	follower := c.QueryParam("follower")
	followed := c.QueryParam("followed")
	if follower == "" || followed == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "follower et followed requis")
	}

	following, err := h.followRepository.IsFollowing(c.Request().Context(), follower, followed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"isFollowing": following})
}
