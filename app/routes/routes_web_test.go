package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleCount(body string) int {
	return strings.Count(body, "<article>")
}

func TestHomePage(t *testing.T) {
	app := setupWebApp(t)

	w := app.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "page 1/1")
}

func TestUnknownResourcesReturn404(t *testing.T) {
	app := setupWebApp(t)

	for _, target := range []string{
		"/group/missing/",
		"/profile/nobody/",
		"/posts/999/",
	} {
		w := app.get(t, target, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	app := setupWebApp(t)

	w := app.get(t, "/create/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	w = app.get(t, "/follow/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Ffollow%2F", w.Header().Get("Location"))
}

func TestSignupCreatePostAndViewProfile(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")

	w := app.postForm(t, "/create/", url.Values{"text": {"my first post"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/ada/", w.Header().Get("Location"))

	w = app.get(t, "/profile/ada/", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "my first post")
}

func TestCreatePostRejectsEmptyText(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")

	w := app.postForm(t, "/create/", url.Values{"text": {""}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Text is required")
}

func TestEditAuthorization(t *testing.T) {
	app := setupWebApp(t)
	ada := app.signup(t, "ada")
	bob := app.signup(t, "bob")

	app.createPost(t, ada, "original text")

	// The author can edit.
	w := app.postForm(t, "/posts/1/edit/", url.Values{"text": {"edited by ada"}}, ada)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))

	w = app.get(t, "/posts/1/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "edited by ada")

	// Another user is bounced back to the detail view, post untouched.
	w = app.postForm(t, "/posts/1/edit/", url.Values{"text": {"hijacked"}}, bob)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))

	w = app.get(t, "/posts/1/", nil)
	assert.Contains(t, w.Body.String(), "edited by ada")
	assert.NotContains(t, w.Body.String(), "hijacked")

	// Anonymous users never reach the handler.
	w = app.get(t, "/posts/1/edit/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login/")
}

func TestCommentFlow(t *testing.T) {
	app := setupWebApp(t)
	ada := app.signup(t, "ada")
	bob := app.signup(t, "bob")

	app.createPost(t, ada, "discuss this")

	w := app.postForm(t, "/posts/1/comment/", url.Values{"text": {"great point"}}, bob)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))

	w = app.get(t, "/posts/1/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "great point")
}

func TestFollowFlow(t *testing.T) {
	app := setupWebApp(t)
	ada := app.signup(t, "ada")
	bob := app.signup(t, "bob")

	app.createPost(t, ada, "post by ada")

	// Before following, bob's feed is empty and the profile shows so.
	w := app.get(t, "/profile/ada/", bob)
	assert.Contains(t, w.Body.String(), "following: false")

	w = app.get(t, "/follow/", bob)
	assert.NotContains(t, w.Body.String(), "post by ada")

	// Follow through the real route.
	w = app.get(t, "/profile/ada/follow/", bob)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/ada/", w.Header().Get("Location"))

	w = app.get(t, "/profile/ada/", bob)
	assert.Contains(t, w.Body.String(), "following: true")

	w = app.get(t, "/follow/", bob)
	assert.Contains(t, w.Body.String(), "post by ada")

	// And undo it.
	w = app.get(t, "/profile/ada/unfollow/", bob)
	require.Equal(t, http.StatusFound, w.Code)

	w = app.get(t, "/profile/ada/", bob)
	assert.Contains(t, w.Body.String(), "following: false")

	w = app.get(t, "/follow/", bob)
	assert.NotContains(t, w.Body.String(), "post by ada")
}

func TestPagination(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")

	for i := 1; i <= 15; i++ {
		app.createPost(t, cookie, fmt.Sprintf("post number %d", i))
	}

	// 15 posts split into a full first page and a 5-item second page.
	w := app.get(t, "/profile/ada/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, articleCount(w.Body.String()))
	assert.Contains(t, w.Body.String(), "page 1/2")

	w = app.get(t, "/profile/ada/?page=2", nil)
	assert.Equal(t, 5, articleCount(w.Body.String()))
	assert.Contains(t, w.Body.String(), "page 2/2")

	// Out-of-range pages clamp to the last one, garbage falls back to the first.
	w = app.get(t, "/profile/ada/?page=99", nil)
	assert.Equal(t, 5, articleCount(w.Body.String()))
	assert.Contains(t, w.Body.String(), "page 2/2")

	w = app.get(t, "/profile/ada/?page=banana", nil)
	assert.Equal(t, 10, articleCount(w.Body.String()))
	assert.Contains(t, w.Body.String(), "page 1/2")
}

func TestHomeCacheFreshness(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")

	app.createPost(t, cookie, "before the cache")

	// Populate the cache.
	first := app.get(t, "/", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "before the cache")

	app.createPost(t, cookie, "after the cache")

	// Within the window the stale page is served byte for byte.
	second := app.get(t, "/", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.NotContains(t, second.Body.String(), "after the cache")

	// Explicit invalidation makes the new post visible.
	require.NoError(t, app.store.Erase(HomeCacheKey))
	third := app.get(t, "/", nil)
	assert.Contains(t, third.Body.String(), "after the cache")
}

func TestHomeCacheSkipsPaginatedRequests(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")

	app.createPost(t, cookie, "only post")

	// Prime the cache with the bare home page.
	app.get(t, "/", nil)
	app.createPost(t, cookie, "fresh post")

	// A paginated request bypasses the cache and sees the new post.
	w := app.get(t, "/?page=1", nil)
	assert.Contains(t, w.Body.String(), "fresh post")
}

func TestLoginLogout(t *testing.T) {
	app := setupWebApp(t)
	app.signup(t, "ada")

	// Wrong password re-renders the form.
	w := app.postForm(t, "/auth/login/", url.Values{
		"username": {"ada"},
		"password": {"wrong"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	// Correct credentials set a cookie and honor next.
	w = app.postForm(t, "/auth/login/", url.Values{
		"username": {"ada"},
		"password": {"hunter22"},
		"next":     {"/create/"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create/", w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies())

	// An external next is ignored.
	w = app.postForm(t, "/auth/login/", url.Values{
		"username": {"ada"},
		"password": {"hunter22"},
		"next":     {"https://evil.example/"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.get(t, "/auth/logout/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGroupFeedRoute(t *testing.T) {
	app := setupWebApp(t)
	cookie := app.signup(t, "ada")
	tech := app.addGroup(t, "Tech", "tech")

	w := app.postForm(t, "/create/", url.Values{
		"text":  {"grouped post"},
		"group": {fmt.Sprintf("%d", tech.ID)},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	app.createPost(t, cookie, "ungrouped post")

	// The group page shows only its own posts.
	w = app.get(t, "/group/tech/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tech")
	assert.Contains(t, w.Body.String(), "grouped post")
	assert.NotContains(t, w.Body.String(), "ungrouped post")
}
