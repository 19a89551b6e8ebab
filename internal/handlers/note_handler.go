package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collab-service/internal/domain"
	"collab-service/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
	pageSize    int
}

func NewNoteHandler(noteService *services.NoteService, pageSize int) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		pageSize:    pageSize,
	}
}

// ListNotes returns a project's notes
// @Summary List notes
// @Description List a project's notes, newest first. Members and the owner only.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated notes"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/notes [get]
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}
	page := pageParam(c)

	notes, total, err := h.noteService.ListNotes(currentUser(c), projectID, (page-1)*h.pageSize, h.pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, notes, page, h.pageSize, total)
}

// CreateNote creates a note in a project
// @Summary Create a note
// @Description Create a note; content is required, title optional
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param note body services.CreateNoteInput true "Note data"
// @Success 201 {object} models.Note "Note created"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects/{id}/notes [post]
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in services.CreateNoteInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	note, err := h.noteService.CreateNote(currentUser(c), projectID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// GetNote returns one note of a project
// @Summary Get a note
// @Description Get a note with its creator and assignee
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param noteID path string true "Note ID" Format(uuid)
// @Success 200 {object} models.Note "Note found"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Note not found in this project"
// @Router /projects/{id}/notes/{noteID} [get]
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	projectID, noteID, err := parseChildIDs(c, "noteID", domain.ErrNoteNotFound)
	if err != nil {
		return respondError(c, err)
	}

	note, err := h.noteService.GetNote(currentUser(c), projectID, noteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// UpdateNote updates a note of a project
// @Summary Update a note
// @Description Patch note fields; only present fields overwrite stored values
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param noteID path string true "Note ID" Format(uuid)
// @Param note body services.UpdateNoteInput true "Fields to update"
// @Success 200 {object} models.Note "Updated note"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Note not found in this project"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /projects/{id}/notes/{noteID} [put]
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	projectID, noteID, err := parseChildIDs(c, "noteID", domain.ErrNoteNotFound)
	if err != nil {
		return respondError(c, err)
	}
	var in services.UpdateNoteInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	note, err := h.noteService.UpdateNote(currentUser(c), projectID, noteID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// DeleteNote deletes a note of a project
// @Summary Delete a note
// @Description Delete a note from a project
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param noteID path string true "Note ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Failure 404 {object} map[string]interface{} "Note not found in this project"
// @Router /projects/{id}/notes/{noteID} [delete]
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	projectID, noteID, err := parseChildIDs(c, "noteID", domain.ErrNoteNotFound)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.noteService.DeleteNote(currentUser(c), projectID, noteID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Note deleted successfully."})
}
