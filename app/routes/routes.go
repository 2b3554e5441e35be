package routes

import (
	"net/http"
	"time"

	"plume/app/auth"
	"plume/app/cache"
	"plume/app/controllers"
	"plume/app/middleware"
	"plume/app/repositories"
	"plume/app/services"
	"plume/internal/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// HomeCacheKey is the fixed key the rendered home page is cached under.
const HomeCacheKey = "page:index"

// Options carries everything Setup needs to assemble the router.
type Options struct {
	DB            *badger.DB
	Cache         cache.Store
	ViewsDir      string
	StaticDir     string
	UploadsDir    string
	SessionSecret string
	SessionTTL    time.Duration
	CacheWindow   time.Duration
	Log           *logger.Logger
}

// Setup builds the repositories, services and controllers and registers
// the application's routes, composing cross-cutting wrappers (auth
// requirement, page cache) at registration time.
func Setup(opts Options) *mux.Router {
	users := repositories.NewBadgerUserRepository(opts.DB)
	posts := repositories.NewBadgerPostRepository(opts.DB)
	groups := repositories.NewBadgerGroupRepository(opts.DB)
	comments := repositories.NewBadgerCommentRepository(opts.DB)
	follows := repositories.NewBadgerFollowRepository(opts.DB)

	feedService := services.NewFeedService(posts, users, groups, follows)
	postService := services.NewPostService(posts, comments, users, groups)
	followService := services.NewFollowService(follows, users)
	userService := services.NewUserService(users)

	sessions := auth.NewSessions(opts.SessionSecret, opts.SessionTTL)

	feedC := controllers.NewFeedController(feedService, userService, opts.ViewsDir, opts.Log)
	postC := controllers.NewPostController(postService, userService, groups.List, opts.UploadsDir, opts.ViewsDir, opts.Log)
	followC := controllers.NewFollowController(followService, userService, opts.ViewsDir, opts.Log)
	authC := controllers.NewAuthController(userService, sessions, opts.ViewsDir, opts.Log)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.Recoverer(opts.Log))
	router.Use(middleware.Authenticate(sessions))

	loginRequired := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireLogin(h)
	}

	// Static assets and uploaded images
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(opts.UploadsDir))))

	// Home page, wrapped in the whole-page cache
	cached := middleware.CachePage(opts.Cache, HomeCacheKey, opts.CacheWindow, opts.Log)
	router.Handle("/", cached(http.HandlerFunc(feedC.Index))).Methods("GET")

	// Feeds
	router.HandleFunc("/group/{slug}/", feedC.GroupFeed).Methods("GET")
	router.HandleFunc("/profile/{username}/", feedC.Profile).Methods("GET")
	router.Handle("/follow/", loginRequired(feedC.FollowIndex)).Methods("GET")

	// Posts
	router.HandleFunc("/posts/{id:[0-9]+}/", postC.Show).Methods("GET")
	router.Handle("/create/", loginRequired(postC.New)).Methods("GET")
	router.Handle("/create/", loginRequired(postC.Create)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/edit/", loginRequired(postC.EditForm)).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/edit/", loginRequired(postC.Edit)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/comment/", loginRequired(postC.AddComment)).Methods("POST")

	// Follow relations
	router.Handle("/profile/{username}/follow/", loginRequired(followC.Follow)).Methods("GET")
	router.Handle("/profile/{username}/unfollow/", loginRequired(followC.Unfollow)).Methods("GET")

	// Accounts
	router.HandleFunc("/auth/login/", authC.LoginForm).Methods("GET")
	router.HandleFunc("/auth/login/", authC.Login).Methods("POST")
	router.HandleFunc("/auth/signup/", authC.SignupForm).Methods("GET")
	router.HandleFunc("/auth/signup/", authC.Signup).Methods("POST")
	router.HandleFunc("/auth/logout/", authC.Logout).Methods("GET")

	return router
}
