package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/PrintSaud/scene-backend/internal/handler"
	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/repository"
	"github.com/PrintSaud/scene-backend/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Watchlist    *handler.WatchlistHandler
	Log          *handler.LogHandler
	List         *handler.ListHandler
	Poll         *handler.PollHandler
	Notification *handler.NotificationHandler
	Movie        *handler.MovieHandler
	Search       *handler.SearchHandler
	Home         *handler.HomeHandler
	SceneBot     *handler.SceneBotHandler
	Upload       *handler.UploadHandler
	Stats        *handler.StatsHandler
	Health       *handler.HealthHandler
	Realtime     *handler.RealtimeHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, tokens *service.TokenService, users *repository.UserRepo, corsOrigins string) {
	protect := middleware.Protect(tokens, users)
	optional := middleware.ProtectOptional(tokens, users)

	authLimiter := middleware.NewAuthRateLimiter()
	searchLimiter := middleware.NewSearchRateLimiter()
	botLimiter := middleware.NewSceneBotRateLimiter()
	uploadLimiter := middleware.NewUploadRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()

	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Realtime notifications
	app.Get("/ws", h.Realtime.Connect)

	// API routes
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", h.Auth.Register, authLimiter.Handler())
	auth.Post("/register", h.Auth.Register, authLimiter.Handler())
	auth.Post("/login", h.Auth.Login, authLimiter.Handler())
	auth.Post("/google", h.Auth.Google, authLimiter.Handler())
	auth.Post("/forgot-password", h.Auth.ForgotPassword, authLimiter.Handler())
	auth.Post("/verify-reset-code", h.Auth.VerifyResetCode, authLimiter.Handler())
	auth.Post("/reset-password", h.Auth.ResetPassword, authLimiter.Handler())
	auth.Get("/check-username", h.Auth.CheckUsername, authLimiter.Handler())
	auth.Get("/check-email", h.Auth.CheckEmail, authLimiter.Handler())
	auth.Get("/ping", h.Auth.Ping, protect)
	auth.Get("/me", h.Auth.Me, protect)
	auth.Put("/profile", h.Auth.UpdateProfile, protect)

	// User routes (static segments before :id)
	usersGrp := api.Group("/users")
	usersGrp.Get("/", h.User.List, protect)
	usersGrp.Post("/top-movies", h.User.SetTopMovies, protect)
	usersGrp.Get("/gifs/recent", h.User.RecentGifs, protect)
	usersGrp.Get("/username/:username", h.User.GetByUsername, optional)
	usersGrp.Get("/backdrop", h.User.Backdrop, protect)
	usersGrp.Put("/backdrop", h.User.SetBackdrop, protect)
	usersGrp.Put("/avatar", h.User.SetAvatar, protect)
	usersGrp.Post("/watchlist/:tmdbId", h.Watchlist.Toggle, protect)
	usersGrp.Put("/watchlist/:tmdbId", h.Watchlist.Add, protect)
	usersGrp.Delete("/watchlist/:tmdbId", h.Watchlist.Remove, protect)
	usersGrp.Get("/watchlist/:tmdbId", h.Watchlist.Status, protect)
	usersGrp.Post("/favorites/:tmdbId", h.Watchlist.AddFavorite, protect)
	usersGrp.Delete("/favorites/:tmdbId", h.Watchlist.RemoveFavorite, protect)
	usersGrp.Post("/poster/:tmdbId", h.Watchlist.SetPoster, protect)
	usersGrp.Get("/poster/:tmdbId", h.Watchlist.Poster, protect)
	usersGrp.Get("/:id", h.User.Get, optional)
	usersGrp.Post("/:id/follow", h.User.ToggleFollow, protect)
	usersGrp.Get("/:id/following", h.User.Following, optional)
	usersGrp.Get("/:id/followers", h.User.Followers, optional)
	usersGrp.Get("/:id/watchlist", h.Watchlist.Watchlist, optional)
	usersGrp.Get("/:id/favorites", h.Watchlist.Favorites, optional)
	usersGrp.Post("/:id/suggest", h.User.Suggest, protect)
	usersGrp.Post("/:id/share", h.User.Share, protect)

	// Diary log routes
	logs := api.Group("/logs")
	logs.Post("/", h.Log.Create, protect)
	logs.Get("/feed", h.Log.Feed, protect)
	logs.Get("/user/:id", h.Log.ByUser, optional)
	logs.Get("/movie/:tmdbId", h.Log.ByMovie, optional)
	logs.Delete("/reply/:replyId", h.Log.DeleteReply, protect)
	logs.Post("/reply/:replyId/like", h.Log.ToggleReplyLike, protect)
	logs.Get("/:id", h.Log.Get, optional)
	logs.Patch("/:id", h.Log.Update, protect)
	logs.Delete("/:id", h.Log.Delete, protect)
	logs.Post("/:id/like", h.Log.ToggleLike, protect)
	logs.Post("/:id/replies", h.Log.AddReply, protect)
	logs.Get("/:id/replies", h.Log.Replies, optional)

	// List routes
	lists := api.Group("/lists")
	lists.Post("/", h.List.Create, protect)
	lists.Get("/my", h.List.Mine, protect)
	lists.Get("/popular", h.List.Popular)
	lists.Get("/friends", h.List.Friends, protect)
	lists.Get("/saved", h.List.Saved, protect)
	lists.Get("/user/:id", h.List.ByUser, optional)
	lists.Get("/:id", h.List.Get, optional)
	lists.Patch("/:id", h.List.Update, protect)
	lists.Delete("/:id", h.List.Delete, protect)
	lists.Post("/:id/movies", h.List.AddMovie, protect)
	lists.Post("/:id/like", h.List.ToggleLike, protect)
	lists.Post("/:id/save", h.List.ToggleSave, protect)

	// Poll routes
	polls := api.Group("/polls")
	polls.Get("/", h.Poll.List)
	polls.Post("/", h.Poll.Create, protect)
	polls.Get("/:id", h.Poll.Get)
	polls.Delete("/:id", h.Poll.Delete, protect)
	polls.Post("/:id/vote", h.Poll.Vote, protect)
	polls.Post("/:id/replies", h.Poll.Reply, protect)

	// Notification routes
	notifications := api.Group("/notifications", protect)
	notifications.Get("/", h.Notification.List)
	notifications.Patch("/read", h.Notification.MarkAllRead)
	notifications.Post("/read", h.Notification.MarkAllRead)
	notifications.Post("/test", h.Notification.SendTest)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Delete("/:id", h.Notification.Delete)

	// Movie routes
	movies := api.Group("/movies")
	movies.Get("/trending", h.Movie.Trending)
	movies.Get("/daily", h.Movie.Daily)
	movies.Get("/search", h.Movie.Search, searchLimiter.Handler())
	movies.Get("/:tmdbId", h.Movie.Details, optional)
	movies.Get("/:tmdbId/poster", h.Movie.GlobalPoster)
	movies.Post("/:tmdbId/poster", h.Movie.SetGlobalPoster, protect)

	// Unified search
	api.Get("/search", h.Search.All, searchLimiter.Handler())

	// Home feed
	api.Get("/home", h.Home.Get, protect)

	// SceneBot routes
	scenebot := api.Group("/scenebot", protect)
	scenebot.Post("/chat", h.SceneBot.Chat, botLimiter.Handler())
	scenebot.Post("/translate", h.SceneBot.Translate, botLimiter.Handler())

	// Upload route
	api.Post("/upload", h.Upload.Upload, protect, uploadLimiter.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())
}
