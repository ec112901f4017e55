package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"yoga_studio/internal/api"
	"yoga_studio/internal/auth"
	"yoga_studio/internal/domain"
	"yoga_studio/internal/favorites"
	"yoga_studio/internal/middleware"
	"yoga_studio/internal/store"
)

// fakeUserStore mirrors the uniqueness rules of the real user table.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == user.UserName {
			return store.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) find(match func(*domain.User) bool) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByUserName(_ context.Context, userName string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.UserName == userName })
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (f *fakeUserStore) FindByToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	return f.find(func(u *domain.User) bool { return u.AccessToken == token })
}

func (f *fakeUserStore) RotateToken(_ context.Context, userID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.AccessToken = token
	return nil
}

func (f *fakeUserStore) setAdmin(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[userID].IsAdmin = true
}

type edge struct {
	userID  string
	videoID string
}

// fakeFavoriteStore keeps edges in insertion order with set semantics.
type fakeFavoriteStore struct {
	mu    sync.Mutex
	edges []edge
}

func (f *fakeFavoriteStore) Add(_ context.Context, userID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.edges {
		if e.userID == userID && e.videoID == videoID {
			return nil
		}
	}
	f.edges = append(f.edges, edge{userID, videoID})
	return nil
}

func (f *fakeFavoriteStore) Remove(_ context.Context, userID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.edges[:0]
	for _, e := range f.edges {
		if e.userID != userID || e.videoID != videoID {
			kept = append(kept, e)
		}
	}
	f.edges = kept
	return nil
}

func (f *fakeFavoriteStore) ListVideoIDs(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, e := range f.edges {
		if e.userID == userID {
			ids = append(ids, e.videoID)
		}
	}
	return ids, nil
}

func (f *fakeFavoriteStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edges)
}

// fakeVideoStore keeps the catalog in insertion order.
type fakeVideoStore struct {
	mu     sync.Mutex
	videos []domain.Video
}

func (f *fakeVideoStore) Create(_ context.Context, video *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, *video)
	return nil
}

func (f *fakeVideoStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.videos[:0]
	for _, v := range f.videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	f.videos = kept
	return nil
}

func (f *fakeVideoStore) FindByID(_ context.Context, id string) (*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
		if v.ID == id {
			cp := v
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeVideoStore) FindByIDs(_ context.Context, ids []string) ([]domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Video
	for _, v := range f.videos {
		if want[v.ID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) ListRecent(_ context.Context, limit int) ([]domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Video
	for i := len(f.videos) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.videos[i])
	}
	return out, nil
}

func (f *fakeVideoStore) ListShorterThan(_ context.Context, maxLength int) ([]domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Video
	for _, v := range f.videos {
		if v.Length < maxLength {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) IncrementLikes(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID == id {
			f.videos[i].LikeCount++
			return nil
		}
	}
	return store.ErrNotFound
}

// testApp assembles the real router wiring over in-memory stores and a
// miniredis-backed cache.
type testApp struct {
	t      *testing.T
	router *gin.Engine
	users  *fakeUserStore
	favs   *fakeFavoriteStore
	videos *fakeVideoStore
	mr     *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	users := newFakeUserStore()
	videoStore := &fakeVideoStore{}
	favStore := &fakeFavoriteStore{}
	authSvc := auth.NewService(users, auth.BcryptHasher{})
	favSvc := favorites.NewService(favStore, videoStore)
	authMW := middleware.Auth(authSvc)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", api.RegisterHandler(authSvc))
	r.POST("/sessions", api.LoginHandler(authSvc))

	userGroup := r.Group("/users/:userId", authMW)
	userGroup.PUT("/favorites/:videoId", api.AddFavoriteHandler(favSvc))
	userGroup.DELETE("/favorites/:videoId", api.RemoveFavoriteHandler(favSvc))
	userGroup.GET("/favorites", api.ListFavoritesHandler(favSvc))

	r.GET("/videos", api.ListVideosHandler(videoStore, rdb))
	r.GET("/videos/short", api.ListShortVideosHandler(videoStore))
	r.GET("/videos/:id", api.GetVideoHandler(videoStore))
	r.POST("/videos/:id/liked", api.LikeVideoHandler(videoStore))

	adminGroup := r.Group("/videos", authMW, middleware.AdminOnly())
	adminGroup.POST("", api.CreateVideoHandler(videoStore, rdb))
	adminGroup.DELETE("/:id", api.DeleteVideoHandler(videoStore, rdb))

	return &testApp{t: t, router: r, users: users, favs: favStore, videos: videoStore, mr: mr}
}

// do sends a request with an optional bearer token and JSON body.
func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the endpoint and returns the credentials.
func (a *testApp) register(userName, email, password string) auth.Credentials {
	w := a.do(http.MethodPost, "/users", "", gin.H{"userName": userName, "email": email, "password": password})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var creds auth.Credentials
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &creds))
	return creds
}

// addVideo puts a video straight into the fake catalog.
func (a *testApp) addVideo(id, name string, length int) {
	require.NoError(a.t, a.videos.Create(context.Background(), &domain.Video{
		ID: id, VideoName: name, Description: "d", VideoURL: "http://v/" + id, Length: length,
	}))
}
