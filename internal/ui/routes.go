package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no session required).
	r.Get("/login", ui.HandleLoginPage)
	r.Post("/login", ui.HandleLoginPost)
	r.Get("/signup", ui.HandleSignupPage)
	r.Post("/signup", ui.HandleSignupPost)
	r.Get("/forgot-password", ui.HandleForgotPasswordPage)
	r.Post("/forgot-password", ui.HandleForgotPasswordPost)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	// Protected routes.
	r.Group(func(r chi.Router) {
		r.Use(ui.RequireSession)

		r.Get("/logout", ui.HandleLogout)
		r.Get("/dashboard", ui.HandleDashboard)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", ui.HandleProducts)
			r.Post("/", ui.HandleProductCreate)
			r.Post("/{id}/update", ui.HandleProductUpdate)
			r.Post("/{id}/delete", ui.HandleProductDelete)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", ui.HandleSales)
			r.Post("/", ui.HandleSaleRecord)
		})

		// User administration (admin role required).
		r.Route("/settings", func(r chi.Router) {
			r.Use(ui.RequireAdmin)
			r.Get("/", ui.HandleSettings)
			r.Post("/users", ui.HandleUserAdd)
			r.Post("/users/{id}/role", ui.HandleUserRole)
		})
	})
}
