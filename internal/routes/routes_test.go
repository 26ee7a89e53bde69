package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/guard"
	"github.com/Olumuyiwaray/blog-api/internal/handlers"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/Olumuyiwaray/blog-api/internal/service"
	"github.com/Olumuyiwaray/blog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type memBlogRepo struct {
	blogs map[primitive.ObjectID]*models.Blog
}

func (r *memBlogRepo) Create(ctx context.Context, b *models.Blog) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.blogs[b.ID] = b
	return nil
}

func (r *memBlogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	return b, nil
}

func (r *memBlogRepo) FindAll(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range r.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBlogRepo) Search(ctx context.Context, query string) ([]models.Blog, error) {
	return nil, nil
}

func (r *memBlogRepo) Update(ctx context.Context, id primitive.ObjectID, upd models.BlogUpdate) error {
	b, ok := r.blogs[id]
	if !ok {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	if upd.Title != "" {
		b.Title = upd.Title
	}
	if upd.Snippet != "" {
		b.Snippet = upd.Snippet
	}
	if upd.Body != "" {
		b.Body = upd.Body
	}
	if upd.Image != "" {
		b.Image = upd.Image
	}
	return nil
}

func (r *memBlogRepo) SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	b, ok := r.blogs[id]
	if !ok {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	b.Likes = likes
	return nil
}

func (r *memBlogRepo) PushComment(ctx context.Context, blogID, commentID primitive.ObjectID) error {
	return nil
}

func (r *memBlogRepo) PullComment(ctx context.Context, commentID primitive.ObjectID) error {
	return nil
}

func (r *memBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.blogs[id]; !ok {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	delete(r.blogs, id)
	return nil
}

type memCommentRepo struct{}

func (memCommentRepo) Create(ctx context.Context, c *models.Comment) error { return nil }
func (memCommentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return nil, fmt.Errorf("comment: %w", apperrors.ErrNotFound)
}
func (memCommentRepo) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return nil, nil
}
func (memCommentRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	return nil
}
func (memCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type memUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (r *memUserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (r *memUserRepo) Update(ctx context.Context, u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) AddPost(ctx context.Context, userID, blogID primitive.ObjectID) error {
	return nil
}

func (r *memUserRepo) RemovePost(ctx context.Context, userID, blogID primitive.ObjectID) error {
	return nil
}

type memTokenRepo struct{}

func (memTokenRepo) CreateVerification(ctx context.Context, t *models.VerificationToken) error {
	return nil
}
func (memTokenRepo) FindVerification(ctx context.Context, token string) (*models.VerificationToken, error) {
	return nil, fmt.Errorf("verification token: %w", apperrors.ErrNotFound)
}
func (memTokenRepo) ConfirmVerification(ctx context.Context, token string) error { return nil }
func (memTokenRepo) CreateResetCode(ctx context.Context, c *models.ResetCode) error {
	return nil
}
func (memTokenRepo) FindResetCode(ctx context.Context, code string) (*models.ResetCode, error) {
	return nil, fmt.Errorf("reset code: %w", apperrors.ErrNotFound)
}
func (memTokenRepo) MarkResetCodeUsed(ctx context.Context, code string) error { return nil }

type memCache struct{}

func (memCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	return false, nil
}
func (memCache) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	return nil
}
func (memCache) Del(ctx context.Context, keys ...string) error { return nil }

type memQueue struct{}

func (memQueue) Enqueue(ctx context.Context, job models.EmailJob) error { return nil }

type fixture struct {
	app    *fiber.App
	blogs  *memBlogRepo
	author primitive.ObjectID
	other  primitive.ObjectID
	blogID primitive.ObjectID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop().Sugar()

	blogs := &memBlogRepo{blogs: map[primitive.ObjectID]*models.Blog{}}
	users := &memUserRepo{users: map[primitive.ObjectID]*models.User{}}

	author := &models.User{Username: "ada", Email: "ada@example.com"}
	other := &models.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, users.Create(context.Background(), author))
	require.NoError(t, users.Create(context.Background(), other))

	blog := &models.Blog{Title: "mine", Snippet: "s", Body: "b", Image: "cover.png", Author: author.ID}
	require.NoError(t, blogs.Create(context.Background(), blog))

	blogSvc := service.NewBlogService(blogs, memCommentRepo{}, users, memCache{}, time.Hour, log)
	userSvc := service.NewUserService(users, memTokenRepo{}, memQueue{}, testSecret, time.Hour, "http://localhost:8080", log)

	app := fiber.New()
	Register(app,
		handlers.NewUserHandler(userSvc, false),
		handlers.NewBlogHandler(blogSvc, false),
		guard.New(blogs),
		testSecret,
	)
	return &fixture{app: app, blogs: blogs, author: author.ID, other: other.ID, blogID: blog.ID}
}

func bearer(t *testing.T, userID primitive.ObjectID, username string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID.Hex(), username, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, target, auth string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestListBlogs(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodGet, "/blogs/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IsSuccess bool          `json:"isSuccess"`
		Data      []models.Blog `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.IsSuccess)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "mine", body.Data[0].Title)
}

func TestDeleteBlogRequiresToken(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodDelete, "/blogs/"+f.blogID.Hex(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, f.blogs.blogs, f.blogID)
}

func TestDeleteBlogRejectsNonAuthor(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodDelete, "/blogs/"+f.blogID.Hex(), bearer(t, f.other, "bob"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, f.blogs.blogs, f.blogID)
}

func TestDeleteBlogAllowsAuthor(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodDelete, "/blogs/"+f.blogID.Hex(), bearer(t, f.author, "ada"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, f.blogs.blogs, f.blogID)
}

func TestEditBlogRejectsNonAuthor(t *testing.T) {
	f := newFixture(t)
	upd := models.BlogUpdate{Title: "stolen", Snippet: "s", Body: "b"}
	resp := doJSON(t, f.app, http.MethodPut, "/blogs/"+f.blogID.Hex(), bearer(t, f.other, "bob"), upd)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "mine", f.blogs.blogs[f.blogID].Title)
}

func TestEditBlogAllowsAuthor(t *testing.T) {
	f := newFixture(t)
	upd := models.BlogUpdate{Title: "renamed", Snippet: "s", Body: "b"}
	resp := doJSON(t, f.app, http.MethodPut, "/blogs/"+f.blogID.Hex(), bearer(t, f.author, "ada"), upd)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "renamed", f.blogs.blogs[f.blogID].Title)
}

func TestEditBlogKeepsOmittedFields(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodPut, "/blogs/"+f.blogID.Hex(), bearer(t, f.author, "ada"), map[string]string{"title": "renamed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	b := f.blogs.blogs[f.blogID]
	assert.Equal(t, "renamed", b.Title)
	assert.Equal(t, "s", b.Snippet)
	assert.Equal(t, "b", b.Body)
	assert.Equal(t, "cover.png", b.Image)
}

func TestCreateBlogSetsCallerAsAuthor(t *testing.T) {
	f := newFixture(t)
	req := map[string]string{"title": "fresh", "snippet": "s", "body": "b"}
	resp := doJSON(t, f.app, http.MethodPost, "/blogs/", bearer(t, f.other, "bob"), req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	found := false
	for _, b := range f.blogs.blogs {
		if b.Title == "fresh" {
			found = true
			assert.Equal(t, f.other, b.Author)
		}
	}
	assert.True(t, found)
}

func TestToggleLikeRequiresToken(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodPost, "/blogs/"+f.blogID.Hex()+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestToggleLikeAnyAuthenticatedUser(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodPost, "/blogs/"+f.blogID.Hex()+"/like", bearer(t, f.other, "bob"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, f.blogs.blogs[f.blogID].LikedBy(f.other))
}

func TestUnknownBlogIs404(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodGet, "/blogs/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchRequiresQuery(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodGet, "/blogs/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, f.app, http.MethodGet, "/blogs/search?search=", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedBlogIDIs400(t *testing.T) {
	f := newFixture(t)
	resp := doJSON(t, f.app, http.MethodGet, "/blogs/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
