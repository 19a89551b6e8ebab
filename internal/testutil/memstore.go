// Package testutil provides test doubles shared across package tests.
package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collab-service/internal/models"
)

// MemStore is an in-memory implementation of the domain store interfaces,
// mirroring the storage-level behavior the services rely on: record-not-found
// and duplicated-key errors, the composite membership key, and conditional
// responds.
type MemStore struct {
	seq         int
	users       map[uuid.UUID]*models.User
	projects    map[uuid.UUID]*models.Project
	memberships map[pairKey]*models.Membership
	todos       map[uuid.UUID]*models.Todo
	notes       map[uuid.UUID]*models.Note
}

type pairKey struct {
	projectID uuid.UUID
	userID    uuid.UUID
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:       map[uuid.UUID]*models.User{},
		projects:    map[uuid.UUID]*models.Project{},
		memberships: map[pairKey]*models.Membership{},
		todos:       map[uuid.UUID]*models.Todo{},
		notes:       map[uuid.UUID]*models.Note{},
	}
}

// AddUser inserts a user with a placeholder password hash.
func (f *MemStore) AddUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "x"}
	_ = f.CreateUser(user)
	return user
}

// nextTime yields strictly increasing creation timestamps so newest-first
// ordering is deterministic.
func (f *MemStore) nextTime() time.Time {
	f.seq++
	return time.Unix(0, 0).Add(time.Duration(f.seq) * time.Second)
}

// --- UserStore ---

func (f *MemStore) CreateUser(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = f.nextTime()
	f.users[user.ID] = user
	return nil
}

func (f *MemStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *MemStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *MemStore) EmailTaken(email string) (bool, error) {
	_, err := f.GetUserByEmail(email)
	return err == nil, nil
}

// --- ProjectStore ---

func (f *MemStore) CreateProject(project *models.Project, ownerMembership *models.Membership) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = f.nextTime()
	f.projects[project.ID] = project
	ownerMembership.ProjectID = project.ID
	f.memberships[pairKey{project.ID, ownerMembership.UserID}] = ownerMembership
	return nil
}

func (f *MemStore) GetProject(id uuid.UUID) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (f *MemStore) GetProjectDetail(id uuid.UUID) (*models.Project, error) {
	project, err := f.GetProject(id)
	if err != nil {
		return nil, err
	}
	detail := *project
	detail.Creator = f.users[project.CreatedBy]
	detail.Memberships = nil
	for key, m := range f.memberships {
		if key.projectID != id {
			continue
		}
		row := *m
		row.User = f.users[m.UserID]
		detail.Memberships = append(detail.Memberships, row)
	}
	return &detail, nil
}

func (f *MemStore) ListVisibleProjects(userID uuid.UUID, offset, limit int) ([]models.Project, int64, error) {
	var visible []models.Project
	for _, p := range f.projects {
		m := f.memberships[pairKey{p.ID, userID}]
		if p.CreatedBy == userID || (m != nil && m.Status == models.MembershipApproved) {
			visible = append(visible, *p)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	total := int64(len(visible))
	if offset >= len(visible) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(visible) {
		end = len(visible)
	}
	return visible[offset:end], total, nil
}

func (f *MemStore) UpdateProject(project *models.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *MemStore) DeleteProject(id uuid.UUID) error {
	delete(f.projects, id)
	for key := range f.memberships {
		if key.projectID == id {
			delete(f.memberships, key)
		}
	}
	for todoID, t := range f.todos {
		if t.ProjectID == id {
			delete(f.todos, todoID)
		}
	}
	for noteID, n := range f.notes {
		if n.ProjectID == id {
			delete(f.notes, noteID)
		}
	}
	return nil
}

// --- MembershipStore ---

func (f *MemStore) GetMembership(projectID, userID uuid.UUID) (*models.Membership, error) {
	m, ok := f.memberships[pairKey{projectID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *MemStore) CreateMembership(m *models.Membership) error {
	key := pairKey{m.ProjectID, m.UserID}
	if _, exists := f.memberships[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.memberships[key] = m
	return nil
}

func (f *MemStore) ResetToPending(projectID, userID uuid.UUID) error {
	m, ok := f.memberships[pairKey{projectID, userID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Status = models.MembershipPending
	m.RequestedAt = time.Now()
	m.RespondedAt = nil
	m.ApprovedBy = nil
	return nil
}

func (f *MemStore) Respond(projectID, userID uuid.UUID, status models.MembershipStatus, responderID uuid.UUID) (bool, error) {
	m, ok := f.memberships[pairKey{projectID, userID}]
	if !ok || m.Status != models.MembershipPending {
		return false, nil
	}
	now := time.Now()
	m.Status = status
	m.RespondedAt = &now
	m.ApprovedBy = &responderID
	return true, nil
}

func (f *MemStore) DeleteMembership(projectID, userID uuid.UUID) error {
	delete(f.memberships, pairKey{projectID, userID})
	return nil
}

func (f *MemStore) ListMembers(projectID uuid.UUID, status models.MembershipStatus) ([]models.Membership, error) {
	var rows []models.Membership
	for key, m := range f.memberships {
		if key.projectID == projectID && m.Status == status {
			row := *m
			row.User = f.users[m.UserID]
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].RequestedAt.Before(rows[j].RequestedAt)
	})
	return rows, nil
}

// --- TodoStore ---

func (f *MemStore) CreateTodo(todo *models.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	todo.CreatedAt = f.nextTime()
	f.todos[todo.ID] = todo
	return nil
}

func (f *MemStore) GetTodo(id uuid.UUID) (*models.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row := *todo
	if row.CreatedBy != nil {
		row.Creator = f.users[*row.CreatedBy]
	}
	if row.AssigneeID != nil {
		row.Assignee = f.users[*row.AssigneeID]
	}
	return &row, nil
}

func (f *MemStore) ListTodos(projectID uuid.UUID, offset, limit int) ([]models.Todo, int64, error) {
	var rows []models.Todo
	for _, t := range f.todos {
		if t.ProjectID == projectID {
			rows = append(rows, *t)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

func (f *MemStore) UpdateTodo(todo *models.Todo) error {
	stored := *todo
	stored.Creator = nil
	stored.Assignee = nil
	f.todos[todo.ID] = &stored
	return nil
}

func (f *MemStore) DeleteTodo(id uuid.UUID) error {
	delete(f.todos, id)
	return nil
}

// --- NoteStore ---

func (f *MemStore) CreateNote(note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	note.CreatedAt = f.nextTime()
	f.notes[note.ID] = note
	return nil
}

func (f *MemStore) GetNote(id uuid.UUID) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row := *note
	row.Creator = f.users[row.CreatedBy]
	if row.AssigneeID != nil {
		row.Assignee = f.users[*row.AssigneeID]
	}
	return &row, nil
}

func (f *MemStore) ListNotes(projectID uuid.UUID, offset, limit int) ([]models.Note, int64, error) {
	var rows []models.Note
	for _, n := range f.notes {
		if n.ProjectID == projectID {
			rows = append(rows, *n)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

func (f *MemStore) UpdateNote(note *models.Note) error {
	stored := *note
	stored.Creator = nil
	stored.Assignee = nil
	f.notes[note.ID] = &stored
	return nil
}

func (f *MemStore) DeleteNote(id uuid.UUID) error {
	delete(f.notes, id)
	return nil
}
