package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"plume/app/auth"
	"plume/app/cache"
	"plume/app/models"
	"plume/app/repositories"
	"plume/internal/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// webApp is a fully wired application over an in-memory database,
// driven through the router the same way a browser would.
type webApp struct {
	router http.Handler
	store  cache.Store
	db     *badger.DB
}

// writeViews lays down a stripped-down template set that renders the
// payload fields the handlers fill in, without the real markup.
func writeViews(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"layout.html":            `{{define "layout"}}<body>{{block "content" .}}{{end}}</body>{{end}}`,
		"posts/feed.html":        `{{define "feed"}}{{range .Items}}<article>{{.Post.Text}}</article>{{end}}{{end}}{{define "pager"}}<nav>page {{.Page.Number}}/{{.Page.TotalPages}}</nav>{{end}}`,
		"posts/index.html":       `{{define "content"}}{{template "feed" .}}{{template "pager" .}}{{end}}`,
		"posts/group_list.html":  `{{define "content"}}<h1>{{.Group.Title}}</h1>{{template "feed" .}}{{template "pager" .}}{{end}}`,
		"posts/profile.html":     `{{define "content"}}<h1>{{.Author.Username}}</h1><p>following: {{.Following}}</p>{{template "feed" .}}{{template "pager" .}}{{end}}`,
		"posts/post_detail.html": `{{define "content"}}<article>{{.Item.Post.Text}}</article>{{range .Comments}}<p>{{.Comment.Text}}</p>{{end}}{{end}}`,
		"posts/create_post.html": `{{define "content"}}<form>{{.Error}}</form>{{end}}`,
		"posts/follow.html":      `{{define "content"}}{{template "feed" .}}{{template "pager" .}}{{end}}`,
		"users/login.html":       `{{define "content"}}<form>login {{.Error}}</form>{{end}}`,
		"users/signup.html":      `{{define "content"}}<form>signup {{.Error}}</form>{{end}}`,
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return dir
}

func setupWebApp(t *testing.T) *webApp {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := cache.NewBadgerStore(db)
	router := Setup(Options{
		DB:            db,
		Cache:         store,
		ViewsDir:      writeViews(t),
		StaticDir:     t.TempDir(),
		UploadsDir:    t.TempDir(),
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		CacheWindow:   time.Minute,
		Log:           logger.New(),
	})
	return &webApp{router: router, store: store, db: db}
}

// addGroup seeds a group the way the init command does.
func (a *webApp) addGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	require.NoError(t, repositories.NewBadgerGroupRepository(a.db).Create(group))
	return group
}

// get issues a GET request, optionally authenticated by a session cookie.
func (a *webApp) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, "GET", target, nil, cookie)
}

// postForm issues a urlencoded POST request.
func (a *webApp) postForm(t *testing.T, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, "POST", target, form, cookie)
}

func (a *webApp) do(t *testing.T, method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers an account through the real handler and returns the
// session cookie it set.
func (a *webApp) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()

	w := a.postForm(t, "/auth/signup/", url.Values{
		"username": {username},
		"password": {"hunter22"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("signup for %q did not set a session cookie", username)
	return nil
}

// createPost submits the creation form for the given session.
func (a *webApp) createPost(t *testing.T, cookie *http.Cookie, text string) {
	t.Helper()
	w := a.postForm(t, "/create/", url.Values{"text": {text}}, cookie)
	require.Equal(t, http.StatusFound, w.Code, "creating post %q: %s", text, w.Body.String())
}
