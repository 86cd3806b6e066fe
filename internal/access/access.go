// Package access is the role gate. It decides, per operation, whether a
// caller's role may invoke it at all. It knows nothing about any
// particular video's state, that's the workflow engine's job.
package access

import (
	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"
)

// Operation names every gated action in the system
type Operation string

const (
	OpListAllUsers        Operation = "list_all_users"
	OpListAllVideos       Operation = "list_all_videos"
	OpSetUserRole         Operation = "set_user_role"
	OpSetUserSubscription Operation = "set_user_subscription"
	OpFetchAnyUser        Operation = "fetch_any_user"
	OpSetVideoStatus      Operation = "set_video_status"
	OpAssignEditor        Operation = "assign_editor"
	OpPublishVideo        Operation = "publish_video"
	OpRejectVideo         Operation = "reject_video"

	OpViewQueue    Operation = "view_queue"
	OpViewAssigned Operation = "view_assigned"
	OpClaimVideo   Operation = "claim_video"
	OpUploadEdited Operation = "upload_edited"
	OpUpdateNotes  Operation = "update_notes"
	OpMarkReady    Operation = "mark_ready"

	OpCreateVideo    Operation = "create_video"
	OpListOwnVideos  Operation = "list_own_videos"
	OpDeleteOwnVideo Operation = "delete_own_video"

	OpAcceptContract Operation = "accept_contract"
	OpFetchOwnUser   Operation = "fetch_own_user"
)

// adminOnly < editorOrAdmin < anyAuthenticated, matching the gate
// rules. Owner checks (does this video belong to the caller) happen
// in the workflow engine where the record is at hand.
var adminOnly = map[Operation]bool{
	OpListAllUsers:        true,
	OpListAllVideos:       true,
	OpSetUserRole:         true,
	OpSetUserSubscription: true,
	OpFetchAnyUser:        true,
	OpSetVideoStatus:      true,
	OpAssignEditor:        true,
	OpPublishVideo:        true,
	OpRejectVideo:         true,
}

var editorOrAdmin = map[Operation]bool{
	OpViewQueue:    true,
	OpViewAssigned: true,
	OpClaimVideo:   true,
	OpUploadEdited: true,
	OpUpdateNotes:  true,
	OpMarkReady:    true,
}

var anyAuthenticated = map[Operation]bool{
	OpCreateVideo:    true,
	OpListOwnVideos:  true,
	OpDeleteOwnVideo: true,
	OpAcceptContract: true,
	OpFetchOwnUser:   true,
}

// Allowed is a pure predicate over (role, operation). No side effects,
// no store access
func Allowed(role model.Role, op Operation) bool {
	switch {
	case adminOnly[op]:
		return role == model.RoleAdmin
	case editorOrAdmin[op]:
		return role == model.RoleEditor || role == model.RoleAdmin
	case anyAuthenticated[op]:
		return role == model.RoleUser || role == model.RoleEditor || role == model.RoleAdmin
	default:
		return false
	}
}

// Check wraps Allowed into the error taxonomy so handlers and the
// engine report a proper forbidden instead of a generic failure
func Check(role model.Role, op Operation) error {
	if !Allowed(role, op) {
		return apperr.Newf(apperr.Forbidden, "role %s may not perform %s", role, op)
	}
	return nil
}
