package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"plume/app/middleware"
	"plume/app/models"
	"plume/app/services"
	"plume/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20

// PostController handles post detail, creation, editing and commenting.
type PostController struct {
	base
	posts      *services.PostService
	groupsFn   func() ([]*models.Group, error)
	uploadsDir string
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, users *services.UserService, listGroups func() ([]*models.Group, error), uploadsDir, views string, log *logger.Logger) *PostController {
	return &PostController{
		base:       base{templates: loadTemplates(views), users: users, log: log},
		posts:      posts,
		groupsFn:   listGroups,
		uploadsDir: uploadsDir,
	}
}

// postForm is the template payload for the create/edit form.
type postForm struct {
	Viewer *models.User
	Post   *models.Post
	Groups []*models.Group
	IsEdit bool
	Error  string
}

// detailPage is the template payload for the post detail view.
type detailPage struct {
	Viewer   *models.User
	Item     *services.FeedItem
	Comments []*services.CommentItem
}

// Show renders a post with its comments and the comment form
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, comments, err := pc.posts.Detail(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	pc.render(w, "detail", detailPage{
		Viewer:   pc.viewer(r),
		Item:     item,
		Comments: comments,
	})
}

// New renders the post creation form
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	groups, err := pc.groupsFn()
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, "create", postForm{
		Viewer: pc.viewer(r),
		Post:   &models.Post{},
		Groups: groups,
	})
}

// Create handles post submission; success redirects to the author's profile
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	viewer := pc.viewer(r)
	if viewer == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return
	}

	post := &models.Post{AuthorID: viewer.ID}
	if msg := pc.bindForm(r, post); msg != "" {
		pc.renderFormError(w, r, post, false, msg)
		return
	}

	if err := pc.posts.Create(post); err != nil {
		pc.renderFormError(w, r, post, false, "Could not save the post: "+err.Error())
		return
	}

	http.Redirect(w, r, "/profile/"+viewer.Username+"/", http.StatusFound)
}

// EditForm renders the edit form; non-authors are sent back to the detail
// view instead of an error page
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := pc.posts.Get(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	viewer := pc.viewer(r)
	if viewer == nil || viewer.ID != post.AuthorID {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
		return
	}

	groups, err := pc.groupsFn()
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, "create", postForm{
		Viewer: viewer,
		Post:   post,
		Groups: groups,
		IsEdit: true,
	})
}

// Edit handles the edit submission with the same soft authorization rule
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := pc.posts.Get(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	detailURL := fmt.Sprintf("/posts/%d/", id)
	viewer := pc.viewer(r)
	if viewer == nil || viewer.ID != post.AuthorID {
		http.Redirect(w, r, detailURL, http.StatusFound)
		return
	}

	if msg := pc.bindForm(r, post); msg != "" {
		pc.renderFormError(w, r, post, true, msg)
		return
	}

	if err := pc.posts.Update(post); err != nil {
		pc.renderFormError(w, r, post, true, "Could not save the post: "+err.Error())
		return
	}

	http.Redirect(w, r, detailURL, http.StatusFound)
}

// AddComment creates a comment and returns to the post detail view
func (pc *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	viewerID, _ := middleware.UserID(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	comment := &models.Comment{
		PostID:   id,
		AuthorID: viewerID,
		Text:     r.FormValue("text"),
	}
	if err := pc.posts.AddComment(comment); err != nil {
		pc.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
}

// bindForm fills a post's mutable fields from the submitted form, storing
// an uploaded image if one is attached. Returns a user-facing message on
// validation failure, empty string on success.
func (pc *PostController) bindForm(r *http.Request, post *models.Post) string {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			return "Failed to parse form"
		}
	}

	post.Text = r.FormValue("text")
	if post.Text == "" {
		return "Text is required"
	}

	post.GroupID = 0
	if groupStr := r.FormValue("group"); groupStr != "" {
		groupID, err := strconv.Atoi(groupStr)
		if err != nil || groupID < 0 {
			return "Invalid group"
		}
		post.GroupID = groupID
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		name, err := pc.saveUpload(file, header.Filename)
		if err != nil {
			pc.log.Error("uploads", "failed to store image", err)
			return "Could not store the uploaded image"
		}
		post.Image = name
	}

	return ""
}

// saveUpload stores an uploaded file under a fresh name, returning the name
func (pc *PostController) saveUpload(file io.Reader, original string) (string, error) {
	if err := os.MkdirAll(pc.uploadsDir, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(original)
	dst, err := os.Create(filepath.Join(pc.uploadsDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}

// renderFormError re-renders the submission form with an error attached
func (pc *PostController) renderFormError(w http.ResponseWriter, r *http.Request, post *models.Post, isEdit bool, msg string) {
	groups, err := pc.groupsFn()
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, "create", postForm{
		Viewer: pc.viewer(r),
		Post:   post,
		Groups: groups,
		IsEdit: isEdit,
		Error:  msg,
	})
}
