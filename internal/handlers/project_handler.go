package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"collab-service/internal/domain"
	"collab-service/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	pageSize       int
}

func NewProjectHandler(projectService *services.ProjectService, pageSize int) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		pageSize:       pageSize,
	}
}

// ListProjects returns the projects visible to the authenticated user
// @Summary List projects
// @Description List projects the user owns or is an approved member of, newest first
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated projects"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	actor := currentUser(c)
	page := pageParam(c)

	projects, total, err := h.projectService.ListProjects(actor, (page-1)*h.pageSize, h.pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, projects, page, h.pageSize, total)
}

// CreateProject creates a new project
// @Summary Create a new project
// @Description Create a project; the creator becomes an approved member automatically
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body services.CreateProjectInput true "Project data"
// @Success 201 {object} models.Project "Project successfully created"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var in services.CreateProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	project, err := h.projectService.CreateProject(currentUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject returns a project by ID
// @Summary Get a project
// @Description Get a project with its members, todos and notes; the owner also sees pending join requests
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} services.ProjectDetail "Project found"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.projectService.GetProject(currentUser(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// UpdateProject updates a project
// @Summary Update a project
// @Description Patch project fields; only present fields overwrite stored values. Owner only.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param project body services.UpdateProjectInput true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in services.UpdateProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	project, err := h.projectService.UpdateProject(currentUser(c), projectID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject deletes a project
// @Summary Delete a project
// @Description Delete a project and all of its memberships, todos and notes. Owner only.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.projectService.DeleteProject(currentUser(c), projectID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted successfully."})
}

// parseProjectID reads the project id path param. An unparseable id can never
// name an existing project, so it is reported as not-found.
func parseProjectID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrProjectNotFound
	}
	return id, nil
}
