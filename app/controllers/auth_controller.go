package controllers

import (
	"errors"
	"net/http"
	"strings"

	"plume/app/auth"
	"plume/app/models"
	"plume/app/services"
	"plume/internal/logger"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	base
	accounts *services.UserService
	sessions *auth.Sessions
}

// NewAuthController creates a new AuthController
func NewAuthController(accounts *services.UserService, sessions *auth.Sessions, views string, log *logger.Logger) *AuthController {
	return &AuthController{
		base:     base{templates: loadTemplates(views), users: accounts, log: log},
		accounts: accounts,
		sessions: sessions,
	}
}

// authForm is the template payload for the login and signup forms.
type authForm struct {
	Viewer *models.User
	Next   string
	Error  string
}

// LoginForm renders the login page
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, "login", authForm{
		Viewer: ac.viewer(r),
		Next:   safeNext(r.URL.Query().Get("next")),
	})
}

// Login verifies credentials, sets the session cookie and returns the user
// to the page they originally asked for
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	next := safeNext(r.FormValue("next"))

	user, err := ac.accounts.Login(r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		ac.render(w, "login", authForm{Next: next, Error: "Invalid username or password"})
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	ac.startSession(w, r, user, next)
}

// SignupForm renders the signup page
func (ac *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, "signup", authForm{
		Viewer: ac.viewer(r),
		Next:   safeNext(r.URL.Query().Get("next")),
	})
}

// Signup registers an account and logs it in immediately
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	next := safeNext(r.FormValue("next"))

	user, err := ac.accounts.Signup(
		r.FormValue("username"),
		r.FormValue("display_name"),
		r.FormValue("password"),
	)
	if err != nil {
		msg := "Could not create the account"
		if errors.Is(err, services.ErrUsernameTaken) {
			msg = "That username is already taken"
		}
		ac.render(w, "signup", authForm{Next: next, Error: msg})
		return
	}

	ac.startSession(w, r, user, next)
}

// Logout clears the session cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// startSession issues the cookie and redirects to next or the home page
func (ac *AuthController) startSession(w http.ResponseWriter, r *http.Request, user *models.User, next string) {
	token, err := ac.sessions.Issue(user.ID)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.sessions.SetCookie(w, token)

	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// safeNext accepts only local paths as a post-login destination
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
