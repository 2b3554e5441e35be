package controllers

import (
	"net/http"

	"plume/app/middleware"
	"plume/app/services"
	"plume/internal/logger"

	"github.com/gorilla/mux"
)

// FollowController handles the follow/unfollow actions. Both redirect back
// to the author's profile; the feed of followed authors lives on the
// FeedController.
type FollowController struct {
	base
	follows *services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(follows *services.FollowService, users *services.UserService, views string, log *logger.Logger) *FollowController {
	return &FollowController{
		base:    base{templates: loadTemplates(views), users: users, log: log},
		follows: follows,
	}
}

// Follow makes the viewer follow the profiled author. Idempotent; 404 on
// unknown username.
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewerID, _ := middleware.UserID(r.Context())

	if err := fc.follows.Follow(viewerID, username); err != nil {
		fc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}

// Unfollow removes the viewer's follow of the profiled author. A no-op if
// no follow exists; 404 on unknown username.
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewerID, _ := middleware.UserID(r.Context())

	if err := fc.follows.Unfollow(viewerID, username); err != nil {
		fc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}
