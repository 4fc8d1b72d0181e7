package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/lookshare/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentHandler(pub *models.Publication) (*CommentHandler, *fakePublicationRepo, *fakeCommentRepo, *fakeNotificationRepo) {
	pubRepo := newFakePublicationRepo(pub)
	commentRepo := &fakeCommentRepo{}
	notifRepo := &fakeNotificationRepo{}
	return NewCommentHandler(commentRepo, pubRepo, notifRepo), pubRepo, commentRepo, notifRepo
}

func TestCreateCommentBumpsCounterAndNotifies(t *testing.T) {
	pub := &models.Publication{Description: "look", User: "owner"}
	h, pubRepo, commentRepo, notifRepo := newCommentHandler(pub)

	body := `{"user": "u1", "postId": "` + pub.ID.Hex() + `", "text": "  Superbe look !  "}`
	c, rec := newTestContext(t, http.MethodPost, "/api/comments", strings.NewReader(body), echo.MIMEApplicationJSON)

	require.NoError(t, h.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Superbe look !", resp.Comment.Text)
	assert.Equal(t, "owner", resp.Comment.PostOwner)

	assert.Len(t, commentRepo.comments, 1)
	assert.Equal(t, 1, pubRepo.pubs[pub.ID.Hex()].Comments)

	require.Len(t, notifRepo.notifications, 1)
	n := notifRepo.notifications[0]
	assert.Equal(t, "owner", n.User)
	assert.Equal(t, "u1", n.From)
	assert.Equal(t, models.NotificationComment, n.Kind)
	assert.Equal(t, " a commenté votre look", n.Text)
}

func TestCreateCommentSelfCommentSkipsNotification(t *testing.T) {
	pub := &models.Publication{Description: "look", User: "owner"}
	h, pubRepo, _, notifRepo := newCommentHandler(pub)

	body := `{"user": "owner", "postId": "` + pub.ID.Hex() + `", "text": "merci !"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/comments", strings.NewReader(body), echo.MIMEApplicationJSON)

	require.NoError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, notifRepo.notifications)
	assert.Equal(t, 1, pubRepo.pubs[pub.ID.Hex()].Comments)
}

func TestCreateCommentUnknownPublicationHasNoSideEffects(t *testing.T) {
	pub := &models.Publication{Description: "look", User: "owner"}
	h, pubRepo, commentRepo, notifRepo := newCommentHandler(pub)

	body := `{"user": "u1", "postId": "missing", "text": "hello"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/comments", strings.NewReader(body), echo.MIMEApplicationJSON)

	httpErr := asHTTPError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Empty(t, commentRepo.comments)
	assert.Empty(t, notifRepo.notifications)
	assert.Equal(t, 0, pubRepo.pubs[pub.ID.Hex()].Comments)
}

func TestCreateCommentRejectsBlankText(t *testing.T) {
	pub := &models.Publication{Description: "look", User: "owner"}
	h, _, commentRepo, _ := newCommentHandler(pub)

	for _, body := range []string{
		`{"user": "u1", "postId": "` + pub.ID.Hex() + `", "text": "   "}`,
		`{"user": "u1", "postId": "` + pub.ID.Hex() + `"}`,
		`{"postId": "` + pub.ID.Hex() + `", "text": "ok"}`,
	} {
		c, _ := newTestContext(t, http.MethodPost, "/api/comments", strings.NewReader(body), echo.MIMEApplicationJSON)
		httpErr := asHTTPError(t, h.CreateComment(c))
		assert.Equal(t, http.StatusBadRequest, httpErr.Code, "body %s", body)
	}
	assert.Empty(t, commentRepo.comments)
}

func TestGetCommentsNewestFirst(t *testing.T) {
	pub := &models.Publication{Description: "look", User: "owner"}
	h, _, commentRepo, _ := newCommentHandler(pub)

	postID := pub.ID.Hex()
	require.NoError(t, commentRepo.CreateComment(nil, &models.Comment{User: "u1", PostID: postID, Text: "premier"}))
	require.NoError(t, commentRepo.CreateComment(nil, &models.Comment{User: "u2", PostID: postID, Text: "second"}))
	require.NoError(t, commentRepo.CreateComment(nil, &models.Comment{User: "u3", PostID: "autre", Text: "ailleurs"}))

	c, rec := newTestContext(t, http.MethodGet, "/api/comments/"+postID, nil, "")
	c.SetParamNames("postId")
	c.SetParamValues(postID)

	require.NoError(t, h.GetComments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "premier", comments[1].Text)
}

func TestGetCommentsEmptyPost(t *testing.T) {
	h, _, _, _ := newCommentHandler(&models.Publication{User: "owner"})

	c, rec := newTestContext(t, http.MethodGet, "/api/comments/p1", nil, "")
	c.SetParamNames("postId")
	c.SetParamValues("p1")

	require.NoError(t, h.GetComments(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
