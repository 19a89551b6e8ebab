package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"collab-service/internal/domain"
	"collab-service/internal/services"
)

type MembershipHandler struct {
	membershipService *services.MembershipService
}

func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Join requests to join a project
// @Summary Request to join a project
// @Description File a join request, or re-file it after a rejection
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Request filed"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 409 {object} map[string]interface{} "Already a member or request pending"
// @Router /projects/{id}/join [post]
func (h *MembershipHandler) Join(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.membershipService.Join(currentUser(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	message := "Request to join project sent. Waiting for approval."
	if result.Resubmitted {
		message = "Request to join re-submitted."
	}
	return c.JSON(fiber.Map{"message": message})
}

// Leave leaves a project
// @Summary Leave a project
// @Description Remove the caller's approved membership; the owner can never leave
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Left the project"
// @Failure 403 {object} map[string]interface{} "Owner cannot leave"
// @Failure 404 {object} map[string]interface{} "Not an approved member"
// @Router /projects/{id}/leave [post]
func (h *MembershipHandler) Leave(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.membershipService.Leave(currentUser(c), projectID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully left the project."})
}

// ListMembers returns the approved members of a project
// @Summary List project members
// @Description List approved members; visible to the owner and approved members
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} models.UserRef "Approved members"
// @Failure 403 {object} map[string]interface{} "Not a member"
// @Router /projects/{id}/members [get]
func (h *MembershipHandler) ListMembers(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	members, err := h.membershipService.Members(currentUser(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(members)
}

// ListRequests returns the pending join requests of a project
// @Summary List pending join requests
// @Description List pending join requests. Owner only.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} services.JoinRequest "Pending requests"
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Router /projects/{id}/requests [get]
func (h *MembershipHandler) ListRequests(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return respondError(c, err)
	}

	requests, err := h.membershipService.Requests(currentUser(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

// Approve approves a pending join request
// @Summary Approve a join request
// @Description Approve a user's pending join request. Owner only.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param userID path string true "User ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Approved"
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Failure 404 {object} map[string]interface{} "No pending request"
// @Router /projects/{id}/requests/{userID}/approve [post]
func (h *MembershipHandler) Approve(c *fiber.Ctx) error {
	projectID, userID, err := parseMembershipIDs(c)
	if err != nil {
		return respondError(c, err)
	}

	target, err := h.membershipService.Approve(currentUser(c), projectID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + target.Name + " approved to join."})
}

// Reject rejects a pending join request
// @Summary Reject a join request
// @Description Reject a user's pending join request; the user may re-request later. Owner only.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param userID path string true "User ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Rejected"
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Failure 404 {object} map[string]interface{} "No pending request"
// @Router /projects/{id}/requests/{userID}/reject [post]
func (h *MembershipHandler) Reject(c *fiber.Ctx) error {
	projectID, userID, err := parseMembershipIDs(c)
	if err != nil {
		return respondError(c, err)
	}

	target, err := h.membershipService.Reject(currentUser(c), projectID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + target.Name + " request rejected."})
}

func parseMembershipIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	projectID, err := parseProjectID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	userID, err := uuid.Parse(c.Params("userID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUserNotFound
	}
	return projectID, userID, nil
}
