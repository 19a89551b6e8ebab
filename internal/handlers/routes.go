package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collab-service/internal/domain"
)

// RouterConfig bundles everything route registration needs.
type RouterConfig struct {
	Users     domain.UserStore
	JWTSecret string

	Auth        *AuthHandler
	Projects    *ProjectHandler
	Memberships *MembershipHandler
	Todos       *TodoHandler
	Notes       *NoteHandler
}

// SetupRoutes registers all API routes under /api/v1. Everything except
// registration and login sits behind the auth middleware.
func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	authed := api.Group("", RequireAuth(cfg.Users, cfg.JWTSecret))
	authed.Get("/me", cfg.Auth.Me)

	authed.Get("/projects", cfg.Projects.ListProjects)
	authed.Post("/projects", cfg.Projects.CreateProject)
	authed.Get("/projects/:id", cfg.Projects.GetProject)
	authed.Put("/projects/:id", cfg.Projects.UpdateProject)
	authed.Delete("/projects/:id", cfg.Projects.DeleteProject)

	authed.Post("/projects/:id/join", cfg.Memberships.Join)
	authed.Post("/projects/:id/leave", cfg.Memberships.Leave)
	authed.Get("/projects/:id/members", cfg.Memberships.ListMembers)
	authed.Get("/projects/:id/requests", cfg.Memberships.ListRequests)
	authed.Post("/projects/:id/requests/:userID/approve", cfg.Memberships.Approve)
	authed.Post("/projects/:id/requests/:userID/reject", cfg.Memberships.Reject)

	authed.Get("/projects/:id/todos", cfg.Todos.ListTodos)
	authed.Post("/projects/:id/todos", cfg.Todos.CreateTodo)
	authed.Get("/projects/:id/todos/:todoID", cfg.Todos.GetTodo)
	authed.Put("/projects/:id/todos/:todoID", cfg.Todos.UpdateTodo)
	authed.Delete("/projects/:id/todos/:todoID", cfg.Todos.DeleteTodo)

	authed.Get("/projects/:id/notes", cfg.Notes.ListNotes)
	authed.Post("/projects/:id/notes", cfg.Notes.CreateNote)
	authed.Get("/projects/:id/notes/:noteID", cfg.Notes.GetNote)
	authed.Put("/projects/:id/notes/:noteID", cfg.Notes.UpdateNote)
	authed.Delete("/projects/:id/notes/:noteID", cfg.Notes.DeleteNote)
}
