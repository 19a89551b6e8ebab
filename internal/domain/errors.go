package domain

import "errors"

// Not-found conditions. A child entity that does not belong to the stated
// project is reported with the same errors as a missing row.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTodoNotFound    = errors.New("todo not found in this project")
	ErrNoteNotFound    = errors.New("note not found in this project")
	ErrUserNotFound    = errors.New("user not found")

	// Approve/reject target has no pending record.
	ErrNoPendingRequest = errors.New("no pending request found for this user")

	// Leave by a user without an approved membership.
	ErrNotMember = errors.New("you are not an approved member")
)

// Authorization failures.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotOwner       = errors.New("only the project owner may perform this action")
	ErrOwnerLeave     = errors.New("creator cannot leave; delete the project instead")
	ErrBadCredentials = errors.New("invalid email or password")
)

// Conflicting membership state transitions.
var (
	ErrAlreadyMember  = errors.New("you are already a member")
	ErrRequestPending = errors.New("your request is already pending")
	ErrOwnerJoin      = errors.New("you are the creator of this project")
	ErrDuplicateJoin  = errors.New("a join request for this project already exists")
)

// ValidationErrors maps a field name to its failure messages, mirroring the
// per-field error payload of the HTTP API.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	return "validation failed"
}

// Add appends a failure message for a field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// HasErrors reports whether any field failed.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}
