package controllers

import (
	"net/http"

	"plume/app/middleware"
	"plume/app/services"
	"plume/internal/logger"

	"github.com/gorilla/mux"
)

// FeedController handles the post listings: global, group, profile and
// followed-authors feeds.
type FeedController struct {
	base
	feeds *services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feeds *services.FeedService, users *services.UserService, views string, log *logger.Logger) *FeedController {
	return &FeedController{
		base:  base{templates: loadTemplates(views), users: users, log: log},
		feeds: feeds,
	}
}

// Index renders the paginated global feed
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := fc.feeds.Global()
	if err != nil {
		fc.fail(w, r, err)
		return
	}

	window, page := paginate(items, r.URL.Query().Get("page"))
	fc.render(w, "index", feedPage{
		Viewer: fc.viewer(r),
		Items:  window,
		Page:   page,
	})
}

// GroupFeed renders the paginated feed of one group, 404 on unknown slug
func (fc *FeedController) GroupFeed(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	group, items, err := fc.feeds.Group(slug)
	if err != nil {
		fc.fail(w, r, err)
		return
	}

	window, page := paginate(items, r.URL.Query().Get("page"))
	fc.render(w, "group", feedPage{
		Viewer: fc.viewer(r),
		Items:  window,
		Page:   page,
		Group:  group,
	})
}

// Profile renders an author's paginated feed plus whether the viewer
// follows them, 404 on unknown username
func (fc *FeedController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, items, err := fc.feeds.Author(username)
	if err != nil {
		fc.fail(w, r, err)
		return
	}

	following := false
	if viewerID, ok := middleware.UserID(r.Context()); ok {
		following, err = fc.feeds.IsFollowing(viewerID, author.ID)
		if err != nil {
			fc.fail(w, r, err)
			return
		}
	}

	window, page := paginate(items, r.URL.Query().Get("page"))
	fc.render(w, "profile", feedPage{
		Viewer:    fc.viewer(r),
		Items:     window,
		Page:      page,
		Author:    author,
		Following: following,
	})
}

// FollowIndex renders the paginated feed of authors the viewer follows.
// The route is wrapped in RequireLogin, so the viewer is always set here.
func (fc *FeedController) FollowIndex(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserID(r.Context())

	items, err := fc.feeds.Followed(viewerID)
	if err != nil {
		fc.fail(w, r, err)
		return
	}

	window, page := paginate(items, r.URL.Query().Get("page"))
	fc.render(w, "follow", feedPage{
		Viewer: fc.viewer(r),
		Items:  window,
		Page:   page,
	})
}
