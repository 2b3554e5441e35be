package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"plume/app/middleware"
	"plume/app/models"
	"plume/app/pagination"
	"plume/app/repositories"
	"plume/app/services"
	"plume/internal/logger"
)

// base carries what every controller needs: parsed templates, the viewer
// lookup and the shared logger.
type base struct {
	templates map[string]*template.Template
	users     *services.UserService
	log       *logger.Logger
}

// loadTemplates loads and parses all templates under viewsDir
func loadTemplates(viewsDir string) map[string]*template.Template {
	parse := func(files ...string) *template.Template {
		paths := make([]string, 0, len(files)+1)
		paths = append(paths, filepath.Join(viewsDir, "layout.html"))
		for _, f := range files {
			paths = append(paths, filepath.Join(viewsDir, f))
		}
		return template.Must(template.ParseFiles(paths...))
	}

	return map[string]*template.Template{
		"index":   parse("posts/index.html", "posts/feed.html"),
		"group":   parse("posts/group_list.html", "posts/feed.html"),
		"profile": parse("posts/profile.html", "posts/feed.html"),
		"detail":  parse("posts/post_detail.html"),
		"create":  parse("posts/create_post.html"),
		"follow":  parse("posts/follow.html", "posts/feed.html"),
		"login":   parse("users/login.html"),
		"signup":  parse("users/signup.html"),
	}
}

// viewer resolves the authenticated user for this request, nil if anonymous
func (b *base) viewer(r *http.Request) *models.User {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return nil
	}
	user, err := b.users.Get(id)
	if err != nil {
		return nil
	}
	return user
}

// render executes the named template through the layout
func (b *base) render(w http.ResponseWriter, name string, data interface{}) {
	tmpl, ok := b.templates[name]
	if !ok {
		b.log.Error("views", "unknown template "+name, nil)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		b.log.Error("views", "template error in "+name, err)
	}
}

// fail maps service errors onto HTTP responses: not-found becomes 404,
// anything else a 500.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	b.log.Error("http", "request failed: "+r.URL.Path, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// feedPage is the template payload for any paginated post listing.
type feedPage struct {
	Viewer    *models.User
	Items     []*services.FeedItem
	Page      pagination.Page
	Group     *models.Group
	Author    *models.User
	Following bool
}

// paginate slices a composed feed down to the requested page window
func paginate(items []*services.FeedItem, requested string) ([]*services.FeedItem, pagination.Page) {
	page := pagination.New(len(items), pagination.DefaultPageSize, requested)
	start, end := page.Bounds()
	return items[start:end], page
}
