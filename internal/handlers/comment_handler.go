package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	publicationRepository  repositories.PublicationRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, publicationRepo repositories.PublicationRepository, notificationRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		publicationRepository:  publicationRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/:postId", h.GetComments)
}

// CreateComment creates a comment, bumps the publication's comment counter and
// notifies the publication owner unless they commented themselves.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user, postId et text requis")
	}
	req.Text = strings.TrimSpace(req.Text)
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

	comment := &models.Comment{
		User:      req.User,
		PostID:    req.PostID,
		Text:      req.Text,
		PostOwner: publication.User,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.publicationRepository.AdjustCounter(ctx, req.PostID, models.CounterComments, 1); err != nil {
		log.Printf("could not increment comments counter for %s: %v", req.PostID, err)
	}

	if req.User != publication.User {
		notification := &models.Notification{
			User:       publication.User,
			From:       req.User,
			Kind:       models.NotificationComment,
			TargetID:   req.PostID,
			TargetType: "post",
			Text:       " a commenté votre look",
		}
		if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
			log.Printf("could not create comment notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// GetComments retrieves all comments for a post, newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("postId")
	if postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postId requis")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}
