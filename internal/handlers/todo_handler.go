package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"collab-service/internal/domain"
	"collab-service/internal/services"
)

type TodoHandler struct {
	todoService *services.TodoService
	pageSize    int
}

func NewTodoHandler(todoService *services.TodoService, pageSize int) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		pageSize:    pageSize,
	}
}

// ListTodos returns a project's todos
// @Summary List todos
// @Description List a project's todos, newest first. Members and the owner only.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated todos"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/todos [get]
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}
	page := pageParam(c)

	todos, total, err := h.todoService.ListTodos(currentUser(c), projectID, (page-1)*h.pageSize, h.pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, todos, page, h.pageSize, total)
}

// CreateTodo creates a todo in a project
// @Summary Create a todo
// @Description Create a todo; the optional assignee must be an approved member or the owner
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param todo body services.CreateTodoInput true "Todo data"
// @Success 201 {object} models.Todo "Todo created"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects/{id}/todos [post]
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in services.CreateTodoInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	todo, err := h.todoService.CreateTodo(currentUser(c), projectID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

// GetTodo returns one todo of a project
// @Summary Get a todo
// @Description Get a todo with its creator and assignee
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param todoID path string true "Todo ID" Format(uuid)
// @Success 200 {object} models.Todo "Todo found"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Todo not found in this project"
// @Router /projects/{id}/todos/{todoID} [get]
func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	projectID, todoID, err := parseChildIDs(c, "todoID", domain.ErrTodoNotFound)
	if err != nil {
		return respondError(c, err)
	}

	todo, err := h.todoService.GetTodo(currentUser(c), projectID, todoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(todo)
}

// UpdateTodo updates a todo of a project
// @Summary Update a todo
// @Description Patch todo fields; only present fields overwrite stored values
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param todoID path string true "Todo ID" Format(uuid)
// @Param todo body services.UpdateTodoInput true "Fields to update"
// @Success 200 {object} models.Todo "Updated todo"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Todo not found in this project"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects/{id}/todos/{todoID} [put]
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	projectID, todoID, err := parseChildIDs(c, "todoID", domain.ErrTodoNotFound)
	if err != nil {
		return respondError(c, err)
	}
	var in services.UpdateTodoInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	todo, err := h.todoService.UpdateTodo(currentUser(c), projectID, todoID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(todo)
}

// DeleteTodo deletes a todo of a project
// @Summary Delete a todo
// @Description Delete a todo from a project
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param todoID path string true "Todo ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Todo not found in this project"
// @Router /projects/{id}/todos/{todoID} [delete]
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	projectID, todoID, err := parseChildIDs(c, "todoID", domain.ErrTodoNotFound)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.todoService.DeleteTodo(currentUser(c), projectID, todoID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Todo deleted successfully."})
}

// parseChildIDs reads the project and child id path params. An unparseable
// child id is reported with the entity's own not-found error.
func parseChildIDs(c *fiber.Ctx, param string, notFound error) (uuid.UUID, uuid.UUID, error) {
	projectID, err := parseProjectID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	childID, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, uuid.Nil, notFound
	}
	return projectID, childID, nil
}
