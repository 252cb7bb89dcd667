package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"familyhub-backend/config"
	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/mw"
	"familyhub-backend/internal/store"
	"familyhub-backend/internal/upload"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, issuer *auth.TokenIssuer, saver *upload.Saver, notifier RefillNotifier) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, issuer, saver, notifier, cfg.Push.PublicKey)

	rateLimiter := mw.RateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public routes
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.GET("/push/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(auth.Middleware(issuer))
		{
			authed.GET("/auth/me", handler.Me)

			authed.GET("/family", handler.GetFamily)
			authed.GET("/family/members", caching, handler.ListMembers)
			authed.POST("/family/invite", handler.RotateInviteCode)

			authed.GET("/events", handler.ListEvents)
			authed.POST("/events", handler.CreateEvent)
			authed.GET("/events/:id", handler.GetEvent)
			authed.PUT("/events/:id", handler.UpdateEvent)
			authed.DELETE("/events/:id", handler.DeleteEvent)

			authed.GET("/shopping", handler.ListShoppingLists)
			authed.POST("/shopping", handler.CreateShoppingList)
			authed.GET("/shopping/:id", handler.GetShoppingList)
			authed.PUT("/shopping/:id", handler.RenameShoppingList)
			authed.DELETE("/shopping/:id", handler.DeleteShoppingList)
			authed.POST("/shopping/:id/items", handler.AddShoppingItem)
			authed.PUT("/shopping/:id/items/:item_id", handler.UpdateShoppingItem)
			authed.DELETE("/shopping/:id/items/:item_id", handler.DeleteShoppingItem)
			authed.POST("/shopping/:id/clear-checked", handler.ClearCheckedItems)

			authed.GET("/recipes", caching, handler.ListRecipes)
			authed.POST("/recipes", handler.CreateRecipe)
			authed.GET("/recipes/:id", handler.GetRecipe)
			authed.PUT("/recipes/:id", handler.UpdateRecipe)
			authed.DELETE("/recipes/:id", handler.DeleteRecipe)

			authed.GET("/meals", handler.ListMealPlans)
			authed.PUT("/meals", handler.UpsertMealPlan)
			authed.DELETE("/meals/:id", handler.DeleteMealPlan)

			authed.GET("/medications", handler.ListMedications)
			authed.POST("/medications", handler.CreateMedication)
			authed.GET("/medications/:id", handler.GetMedication)
			authed.PUT("/medications/:id", handler.UpdateMedication)
			authed.DELETE("/medications/:id", handler.DeleteMedication)
			authed.POST("/medications/:id/schedules", handler.AddSchedule)
			authed.PUT("/medications/:id/schedules/:schedule_id", handler.UpdateSchedule)
			authed.DELETE("/medications/:id/schedules/:schedule_id", handler.DeleteSchedule)
			authed.POST("/medications/:id/intake", handler.RecordIntake)
			authed.GET("/medications/:id/logs", handler.ListIntakeLogs)

			authed.GET("/reminders/today", handler.TodayReminders)
			authed.GET("/reminders/overview", handler.RemindersOverview)

			authed.GET("/documents", handler.ListDocuments)
			authed.POST("/documents", handler.UploadDocument)
			authed.GET("/documents/:id/download", handler.DownloadDocument)
			authed.DELETE("/documents/:id", handler.DeleteDocument)

			authed.GET("/push/subscription", handler.GetSubscription)
			authed.PUT("/push/subscription", handler.PutSubscription)
			authed.DELETE("/push/subscription", handler.DeleteSubscription)
		}
	}

	return r
}
