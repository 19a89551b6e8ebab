package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/domain"
	"collab-service/internal/models"
)

// NoteService implements the member-gated note operations of a project.
type NoteService struct {
	notes       domain.NoteStore
	projects    domain.ProjectStore
	memberships domain.MembershipStore
}

// NewNoteService creates a new NoteService with the given stores.
func NewNoteService(notes domain.NoteStore, projects domain.ProjectStore, memberships domain.MembershipStore) *NoteService {
	return &NoteService{notes: notes, projects: projects, memberships: memberships}
}

// CreateNoteInput carries the fields of a note creation request.
type CreateNoteInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

// UpdateNoteInput is an optional-field patch: only present fields overwrite
// stored values. An explicit assignee_id null unassigns the note.
type UpdateNoteInput struct {
	Title      *string             `json:"title"`
	Content    *string             `json:"content"`
	AssigneeID Optional[uuid.UUID] `json:"assignee_id"`
}

// ListNotes returns a page of the project's notes, newest first. Members and
// the owner only.
func (s *NoteService) ListNotes(actor *models.User, projectID uuid.UUID, offset, limit int) ([]models.Note, int64, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, 0, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, 0, err
	}
	notes, total, err := s.notes.ListNotes(projectID, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list notes")
	}
	return notes, total, nil
}

// CreateNote validates the input and creates a note in the project, recording
// the actor as its creator.
func (s *NoteService) CreateNote(actor *models.User, projectID uuid.UUID, in CreateNoteInput) (*models.Note, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}

	ve := domain.ValidationErrors{}
	in.Title = strings.TrimSpace(in.Title)
	if len(in.Title) > 255 {
		ve.Add("title", "The title may not be greater than 255 characters.")
	}
	if strings.TrimSpace(in.Content) == "" {
		ve.Add("content", "The content field is required.")
	}
	if in.AssigneeID != nil {
		if err := validateAssignee(s.memberships, project, *in.AssigneeID, ve); err != nil {
			return nil, err
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	note := &models.Note{
		ProjectID:  projectID,
		Title:      in.Title,
		Content:    in.Content,
		CreatedBy:  actor.ID,
		AssigneeID: in.AssigneeID,
	}
	if err := s.notes.CreateNote(note); err != nil {
		return nil, errors.Wrap(err, "create note")
	}
	return s.reload(note.ID)
}

// GetNote returns one note of the project with its creator and assignee.
func (s *NoteService) GetNote(actor *models.User, projectID, noteID uuid.UUID) (*models.Note, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	note, err := s.resolveNote(projectID, noteID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote applies an optional-field patch to a note of the project.
func (s *NoteService) UpdateNote(actor *models.User, projectID, noteID uuid.UUID, in UpdateNoteInput) (*models.Note, error) {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return nil, err
	}
	note, err := s.resolveNote(projectID, noteID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return nil, err
	}

	ve := domain.ValidationErrors{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) > 255 {
			ve.Add("title", "The title may not be greater than 255 characters.")
		} else {
			note.Title = title
		}
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			ve.Add("content", "The content field is required.")
		} else {
			note.Content = *in.Content
		}
	}
	if in.AssigneeID.Set {
		if in.AssigneeID.Value == nil {
			note.AssigneeID = nil
		} else {
			if err := validateAssignee(s.memberships, project, *in.AssigneeID.Value, ve); err != nil {
				return nil, err
			}
			note.AssigneeID = in.AssigneeID.Value
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if err := s.notes.UpdateNote(note); err != nil {
		return nil, errors.Wrap(err, "update note")
	}
	return s.reload(note.ID)
}

// DeleteNote removes a note of the project.
func (s *NoteService) DeleteNote(actor *models.User, projectID, noteID uuid.UUID) error {
	project, err := resolveProject(s.projects, projectID)
	if err != nil {
		return err
	}
	if _, err := s.resolveNote(projectID, noteID); err != nil {
		return err
	}
	if err := requireMember(s.memberships, project, actor); err != nil {
		return err
	}
	return errors.Wrap(s.notes.DeleteNote(noteID), "delete note")
}

// resolveNote loads a note and verifies it belongs to the stated project. A
// parent mismatch is a not-found condition, never an authorization one.
func (s *NoteService) resolveNote(projectID, noteID uuid.UUID) (*models.Note, error) {
	note, err := s.notes.GetNote(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, errors.Wrap(err, "load note")
	}
	if note.ProjectID != projectID {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) reload(id uuid.UUID) (*models.Note, error) {
	note, err := s.notes.GetNote(id)
	if err != nil {
		return nil, errors.Wrap(err, "reload note")
	}
	return note, nil
}
