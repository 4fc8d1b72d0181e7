package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lookshare/backend/internal/models"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/lookshare/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes behind the repository interfaces. They mimic the Mongo
// implementations' observable behavior: typed not-found/already-exists errors,
// delete-reports-effect booleans, newest-first listings.

func newTestContext(t *testing.T, method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T: %v", err, err)
	return httpErr
}

// --- publications ---

type fakePublicationRepo struct {
	pubs map[string]*models.Publication
}

func newFakePublicationRepo(pubs ...*models.Publication) *fakePublicationRepo {
	r := &fakePublicationRepo{pubs: map[string]*models.Publication{}}
	for _, p := range pubs {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.pubs[p.ID.Hex()] = p
	}
	return r
}

func (r *fakePublicationRepo) CreatePublication(_ context.Context, p *models.Publication) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.UrlsPhotos == nil {
		p.UrlsPhotos = []string{}
	}
	p.DateCreation = time.Now()
	p.DateEdition = p.DateCreation
	r.pubs[p.ID.Hex()] = p
	return nil
}

func (r *fakePublicationRepo) GetPublicationByID(_ context.Context, id string) (*models.Publication, error) {
	p, ok := r.pubs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}

func (r *fakePublicationRepo) GetAllPublications(_ context.Context) ([]models.Publication, error) {
	out := []models.Publication{}
	for _, p := range r.pubs {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePublicationRepo) GetPublicationsExcluding(_ context.Context, excluded []primitive.ObjectID) ([]models.Publication, error) {
	skip := map[string]bool{}
	for _, id := range excluded {
		skip[id.Hex()] = true
	}
	out := []models.Publication{}
	for id, p := range r.pubs {
		if !skip[id] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePublicationRepo) GetPublicationsByUser(_ context.Context, userID string) ([]models.Publication, error) {
	out := []models.Publication{}
	for _, p := range r.pubs {
		if p.User == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePublicationRepo) UpdatePublication(_ context.Context, id string, req *models.UpdatePublicationRequest) (*models.Publication, error) {
	p, ok := r.pubs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.UrlsPhotos != nil {
		p.UrlsPhotos = req.UrlsPhotos
	}
	p.DateEdition = time.Now()
	return p, nil
}

func (r *fakePublicationRepo) DeletePublication(_ context.Context, id string) error {
	if _, ok := r.pubs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.pubs, id)
	return nil
}

func (r *fakePublicationRepo) AdjustCounter(_ context.Context, id string, counter models.PublicationCounter, delta int) (*models.Publication, error) {
	p, ok := r.pubs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	switch counter {
	case models.CounterLikes:
		p.Likes += delta
	case models.CounterShares:
		p.Shares += delta
	case models.CounterComments:
		p.Comments += delta
	case models.CounterSaved:
		p.Saved += delta
	}
	return p, nil
}

// --- articles ---

type fakeArticleRepo struct {
	articles []models.Article
}

func (r *fakeArticleRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeArticleRepo) CreateArticles(_ context.Context, articles []models.Article) ([]models.Article, error) {
	if len(articles) == 0 {
		return []models.Article{}, nil
	}
	now := time.Now()
	for i := range articles {
		articles[i].ID = primitive.NewObjectID()
		articles[i].CreatedAt = now
	}
	r.articles = append(r.articles, articles...)
	return articles, nil
}

func (r *fakeArticleRepo) GetArticleByID(_ context.Context, id string) (*models.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID.Hex() == id {
			return &r.articles[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeArticleRepo) GetAllArticles(_ context.Context) ([]models.Article, error) {
	out := []models.Article{}
	for i := len(r.articles) - 1; i >= 0; i-- {
		out = append(out, r.articles[i])
	}
	return out, nil
}

func (r *fakeArticleRepo) GetArticlesByPublication(_ context.Context, publicationID string) ([]models.Article, error) {
	out := []models.Article{}
	for _, a := range r.articles {
		if a.PublicationID.Hex() == publicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) DeleteArticlesByPublication(_ context.Context, publicationID string) error {
	kept := r.articles[:0]
	for _, a := range r.articles {
		if a.PublicationID.Hex() != publicationID {
			kept = append(kept, a)
		}
	}
	r.articles = kept
	return nil
}

func (r *fakeArticleRepo) AdjustSavesCount(_ context.Context, id string, delta int) error {
	for i := range r.articles {
		if r.articles[i].ID.Hex() == id {
			r.articles[i].SavesCount += delta
			return nil
		}
	}
	return repositories.ErrNotFound
}

// --- viewed publications ---

type fakeViewedRepo struct {
	views []models.ViewedPublication
}

func (r *fakeViewedRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeViewedRepo) HasViewed(_ context.Context, userID, publicationID string) (bool, error) {
	for _, v := range r.views {
		if v.User == userID && v.Publication == publicationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeViewedRepo) MarkViewed(_ context.Context, view *models.ViewedPublication) error {
	view.ID = primitive.NewObjectID()
	view.CreatedAt = time.Now()
	r.views = append(r.views, *view)
	return nil
}

func (r *fakeViewedRepo) GetViewedPublicationIDs(_ context.Context, userID string) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for _, v := range r.views {
		if v.User != userID {
			continue
		}
		objID, err := primitive.ObjectIDFromHex(v.Publication)
		if err != nil {
			continue
		}
		ids = append(ids, objID)
	}
	return ids, nil
}

// --- likes ---

type fakeLikeRepo struct {
	likes map[string]models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[string]models.Like{}}
}

func likeKey(user, postID string) string { return user + "|" + postID }

func (r *fakeLikeRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	key := likeKey(like.User, like.PostID)
	if _, ok := r.likes[key]; ok {
		return repositories.ErrAlreadyExists
	}
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	r.likes[key] = *like
	return nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, user, postID string) (bool, error) {
	key := likeKey(user, postID)
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *fakeLikeRepo) HasLiked(_ context.Context, user, postID string) (bool, error) {
	_, ok := r.likes[likeKey(user, postID)]
	return ok, nil
}

func (r *fakeLikeRepo) CountByPost(_ context.Context, postID string) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

// --- follows ---

type fakeFollowRepo struct {
	follows map[string]models.Follow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: map[string]models.Follow{}}
}

func (r *fakeFollowRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeFollowRepo) CreateFollow(_ context.Context, follow *models.Follow) error {
	key := follow.Follower + "|" + follow.Followed
	if _, ok := r.follows[key]; ok {
		return repositories.ErrAlreadyExists
	}
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	r.follows[key] = *follow
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(_ context.Context, follower, followed string) (bool, error) {
	key := follower + "|" + followed
	if _, ok := r.follows[key]; !ok {
		return false, nil
	}
	delete(r.follows, key)
	return true, nil
}

func (r *fakeFollowRepo) IsFollowing(_ context.Context, follower, followed string) (bool, error) {
	_, ok := r.follows[follower+"|"+followed]
	return ok, nil
}

// --- saves ---

type fakeSaveRepo struct {
	saves []models.Save
}

func (r *fakeSaveRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeSaveRepo) CreateSave(_ context.Context, save *models.Save) error {
	for _, s := range r.saves {
		if s.User == save.User && s.ItemID == save.ItemID && s.ItemType == save.ItemType {
			return repositories.ErrAlreadyExists
		}
	}
	save.ID = primitive.NewObjectID()
	save.CreatedAt = time.Now()
	r.saves = append(r.saves, *save)
	return nil
}

func (r *fakeSaveRepo) DeleteSave(_ context.Context, user, itemID, itemType string) (bool, error) {
	for i, s := range r.saves {
		if s.User == user && s.ItemID == itemID && s.ItemType == itemType {
			r.saves = append(r.saves[:i], r.saves[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSaveRepo) IsSaved(_ context.Context, user, itemID, itemType string) (bool, error) {
	for _, s := range r.saves {
		if s.User == user && s.ItemID == itemID && s.ItemType == itemType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSaveRepo) GetSavesByUser(_ context.Context, user, itemType string) ([]models.Save, error) {
	out := []models.Save{}
	for i := len(r.saves) - 1; i >= 0; i-- {
		s := r.saves[i]
		if s.User != user {
			continue
		}
		if itemType != "" && s.ItemType != itemType {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// --- comments ---

type fakeCommentRepo struct {
	comments []models.Comment
}

func (r *fakeCommentRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].PostID == postID {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	notifications []models.Notification
	createErr     error
}

func (r *fakeNotificationRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = primitive.NewObjectID()
	n.Seen = false
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipient(_ context.Context, userID string) ([]models.Notification, error) {
	out := []models.Notification{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].User == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkSeen(_ context.Context, id string) (*models.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID.Hex() == id {
			r.notifications[i].Seen = true
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- photo store ---

type fakePhotoStore struct {
	saved   []string
	removed []string
}

func (s *fakePhotoStore) Save(file *multipart.FileHeader, publicationID, userID, kind string) (string, error) {
	url := fmt.Sprintf("/uploads/%s-%s-%s-%d.jpg", publicationID, userID, kind, len(s.saved))
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakePhotoStore) Remove(url string) error {
	s.removed = append(s.removed, url)
	return nil
}
