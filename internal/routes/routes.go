package routes

import (
	"github.com/atelierhub/atelier-backend/internal/handlers"
	"github.com/atelierhub/atelier-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler, auth *middleware.Auth, cronSecret string) {
	// Public routes
	r.Post("/api/auth/exchange-code", h.ExchangeCode)
	r.Post("/api/save-profile", h.SaveProfile)
	r.Post("/api/check-profile", h.CheckProfile)

	r.Get("/api/services", h.ListServices)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)

	r.Get("/api/blogs", h.ListBlogs)
	r.Get("/api/projects", h.ListProjects)
	r.Get("/api/content", h.ListContent)

	r.Post("/api/quotations", h.SubmitQuotation)
	r.Post("/api/visitors", h.HitVisitors)
	r.Get("/api/visitors", h.GetVisitors)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/api/auth/me", h.GetMe)
		r.Get("/api/cart", h.GetCart)
		r.Post("/api/cart", h.SaveCart)
		r.Get("/api/orders", h.ListOrders)
		r.Post("/api/orders", h.CreateOrder)
		r.Post("/api/products/stock", h.UpdateStock)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(auth.RequireAdmin)

		r.Post("/api/blogs", h.CreateBlog)
		r.Put("/api/blogs/{id}", h.UpdateBlog)
		r.Delete("/api/blogs/{id}", h.DeleteBlog)
		r.Post("/api/projects", h.CreateProject)
		r.Put("/api/projects/{id}", h.UpdateProject)
		r.Delete("/api/projects/{id}", h.DeleteProject)
		r.Post("/api/content", h.SaveContent)

		r.Get("/api/reports/summary", h.ReportSummary)
		r.Get("/api/reports/orders", h.ReportOrders)
		r.Get("/api/reports/stock", h.ReportStock)

		r.Get("/api/admin/users", h.ListUsers)
		r.Put("/api/admin/users", h.UpdateUser)
		r.Get("/api/admin/quotations", h.ListQuotations)
	})

	// Internal scheduled-job route, gated by the shared cron secret
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCronSecret(cronSecret))
		r.Post("/api/orders/cancel-expired", h.CancelExpiredOrders)
	})
}
