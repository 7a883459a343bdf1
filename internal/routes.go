package internal

import (
	"net/http"

	"blogd/internal/controllers"
	"blogd/internal/providers"
)

func InitRoutes(api *controllers.ApiController, admin *controllers.AdminController, backups *controllers.BackupController, auth providers.AuthProviderInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/posts", http.HandlerFunc(api.ListPosts))
	routers.Get("/api/posts/{slug}", http.HandlerFunc(api.GetPost))
	routers.Post("/api/posts/{id}/view", http.HandlerFunc(api.RecordView))
	routers.Get("/api/comments/{postId}", http.HandlerFunc(api.ListComments))
	routers.Post("/api/comments", http.HandlerFunc(api.CreateComment))
	routers.Get("/api/settings", http.HandlerFunc(api.GetSettings))

	gate := func(h http.HandlerFunc) http.Handler { return auth.Require(h) }

	routers.Get("/api/admin/verify", gate(admin.Verify))
	routers.Get("/api/admin/posts", gate(admin.ListPosts))
	routers.Post("/api/admin/posts", gate(admin.CreatePost))
	routers.Get("/api/admin/posts/{id}", gate(admin.GetPost))
	routers.Put("/api/admin/posts/{id}", gate(admin.UpdatePost))
	routers.Patch("/api/admin/posts/{id}", gate(admin.SetPostStatus))
	routers.Delete("/api/admin/posts/{id}", gate(admin.DeletePost))
	routers.Get("/api/admin/comments", gate(admin.ListComments))
	routers.Patch("/api/admin/comments/{id}", gate(admin.ModerateComment))
	routers.Delete("/api/admin/comments/{id}", gate(admin.DeleteComment))
	routers.Post("/api/admin/comments/cleanup", gate(admin.CleanupComments))
	routers.Get("/api/admin/settings", gate(admin.GetSettings))
	routers.Put("/api/admin/settings", gate(admin.UpdateSettings))
	routers.Get("/api/admin/analytics", gate(admin.Analytics))
	routers.Get("/api/admin/integrity", gate(admin.Integrity))
	routers.Post("/api/admin/upload", gate(admin.Upload))

	routers.Get("/api/admin/backup", gate(backups.List))
	routers.Post("/api/admin/backup", gate(backups.Create))
	routers.Delete("/api/admin/backup/{name}", gate(backups.Delete))
	routers.Post("/api/admin/backup/restore", gate(backups.Restore))
	routers.Post("/api/admin/backup/export", gate(backups.Export))
	return routers
}
