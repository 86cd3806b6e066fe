// Package workflow is the video state machine. It owns every write to a
// video's status, editor assignment and edited locator. Handlers never
// touch those fields directly.
package workflow

import (
	"errors"
	"strings"
	"time"

	"reelup/review-api/internal/access"
	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Caller is the authenticated identity the session layer hands us.
// The engine trusts it completely
type Caller struct {
	ID   string
	Role model.Role
}

// Engine runs all video mutations against an injected store handle.
// No package-level state
type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

type CreateInput struct {
	OriginalURL string
	Caption     string
	Platform    string
}

// Create submits a new video in PENDING with no editor. Non-admin
// owners need an ACTIVE subscription
func (e *Engine) Create(caller Caller, in CreateInput) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpCreateVideo); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.OriginalURL) == "" {
		return nil, apperr.New(apperr.InvalidInput, "video locator can't be empty")
	}

	owner, err := e.loadUser(caller.ID)
	if err != nil {
		return nil, err
	}

	if !owner.CanUpload() {
		return nil, apperr.New(apperr.Forbidden, "an active subscription is required to submit videos")
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate video ID", err)
	}

	now := time.Now().UnixMilli()
	v := &model.Video{
		ID:          id,
		UserID:      owner.ID,
		EditorID:    nil,
		OriginalURL: in.OriginalURL,
		Caption:     in.Caption,
		Platform:    in.Platform,
		Status:      model.StatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.db.Create(v).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to save video", err)
	}

	return v, nil
}

// Get returns a single video. Readable by its owner, its assigned
// editor and admins
func (e *Engine) Get(caller Caller, videoID string) (*model.Video, error) {
	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if !e.canRead(caller, v) {
		return nil, apperr.New(apperr.Forbidden, "you don't have access to this video")
	}

	return v, nil
}

// Claim moves a PENDING video to EDITING and assigns the calling
// editor. The write is conditional on (status, version) so two
// concurrent claims can't both win
func (e *Engine) Claim(caller Caller, videoID string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpClaimVideo); err != nil {
		return nil, err
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusPending {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, only PENDING videos can be claimed", v.Status)
	}

	err = e.transition(v, model.StatusPending, map[string]any{
		"status":    model.StatusEditing,
		"editor_id": caller.ID,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// AssignEditor is the admin path onto the editing desk. The target
// account must actually be an editor
func (e *Engine) AssignEditor(caller Caller, videoID, editorID string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpAssignEditor); err != nil {
		return nil, err
	}

	editor, err := e.loadUser(editorID)
	if err != nil {
		return nil, err
	}

	if editor.Role != model.RoleEditor {
		return nil, apperr.Newf(apperr.InvalidInput, "account %s is not an editor", editorID)
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusPending {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, only PENDING videos can be assigned", v.Status)
	}

	err = e.transition(v, model.StatusPending, map[string]any{
		"status":    model.StatusEditing,
		"editor_id": editor.ID,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// UploadEdited replaces the edited-cut locator. Only valid while the
// video is on the editing desk
func (e *Engine) UploadEdited(caller Caller, videoID, editedURL string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpUploadEdited); err != nil {
		return nil, err
	}

	if strings.TrimSpace(editedURL) == "" {
		return nil, apperr.New(apperr.InvalidInput, "edited locator can't be empty")
	}

	v, err := e.loadAssigned(caller, videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusEditing {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, edited cuts can only be attached while EDITING", v.Status)
	}

	err = e.transition(v, model.StatusEditing, map[string]any{
		"edited_url": editedURL,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// UpdateNotes sets the free-text editor notes
func (e *Engine) UpdateNotes(caller Caller, videoID, notes string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpUpdateNotes); err != nil {
		return nil, err
	}

	v, err := e.loadAssigned(caller, videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusEditing {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, notes can only be updated while EDITING", v.Status)
	}

	err = e.transition(v, model.StatusEditing, map[string]any{
		"editor_notes": notes,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// MarkReady hands an EDITING video back for publication
func (e *Engine) MarkReady(caller Caller, videoID string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpMarkReady); err != nil {
		return nil, err
	}

	v, err := e.loadAssigned(caller, videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusEditing {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, only EDITING videos can be marked ready", v.Status)
	}

	err = e.transition(v, model.StatusEditing, map[string]any{
		"status": model.StatusReady,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// Publish releases a READY video
func (e *Engine) Publish(caller Caller, videoID string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpPublishVideo); err != nil {
		return nil, err
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if v.Status != model.StatusReady {
		return nil, apperr.Newf(apperr.InvalidState, "video is %s, only READY videos can be published", v.Status)
	}

	err = e.transition(v, model.StatusReady, map[string]any{
		"status": model.StatusPublished,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// Reject is the admin escape hatch, reachable from any non-terminal
// state. The editor assignment, if any, stays on the record
func (e *Engine) Reject(caller Caller, videoID string) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpRejectVideo); err != nil {
		return nil, err
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if v.Status == model.StatusPublished || v.Status == model.StatusRejected {
		return nil, apperr.Newf(apperr.InvalidState, "video is already %s", v.Status)
	}

	err = e.transition(v, v.Status, map[string]any{
		"status": model.StatusRejected,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// SetStatus is the unconstrained admin override. It bypasses the
// transition table for operational recovery, only the enum itself is
// enforced
func (e *Engine) SetStatus(caller Caller, videoID string, target model.Status) (*model.Video, error) {
	if err := access.Check(caller.Role, access.OpSetVideoStatus); err != nil {
		return nil, err
	}

	if _, ok := model.ParseStatus(string(target)); !ok {
		return nil, apperr.Newf(apperr.InvalidInput, "invalid status %q", target)
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	err = e.transition(v, v.Status, map[string]any{
		"status": target,
	})
	if err != nil {
		return nil, err
	}

	return e.loadVideo(videoID)
}

// Delete removes a video that hasn't entered the pipeline yet. Owners
// can withdraw their own PENDING submissions, admins any PENDING one
func (e *Engine) Delete(caller Caller, videoID string) error {
	if err := access.Check(caller.Role, access.OpDeleteOwnVideo); err != nil {
		return err
	}

	v, err := e.loadVideo(videoID)
	if err != nil {
		return err
	}

	if v.UserID != caller.ID && caller.Role != model.RoleAdmin {
		return apperr.New(apperr.Forbidden, "you don't own this video")
	}

	if v.Status != model.StatusPending {
		return apperr.Newf(apperr.InvalidState, "video is %s, only PENDING videos can be withdrawn", v.Status)
	}

	res := e.db.
		Where("id = ? AND status = ? AND version = ?", v.ID, model.StatusPending, v.Version).
		Delete(&model.Video{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete video", res.Error)
	}

	if res.RowsAffected != 1 {
		return apperr.New(apperr.Conflict, "video was modified concurrently")
	}

	return nil
}

// transition performs the single guarded write every mutation funnels
// through. The WHERE clause re-checks status and version so the guard
// evaluated above still holds at write time. Exactly one row affected
// or the caller lost a race
func (e *Engine) transition(v *model.Video, expect model.Status, fields map[string]any) error {
	fields["updated_at"] = time.Now().UnixMilli()
	fields["version"] = v.Version + 1

	res := e.db.
		Model(&model.Video{}).
		Where("id = ? AND status = ? AND version = ?", v.ID, expect, v.Version).
		Updates(fields)
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to update video", res.Error)
	}

	if res.RowsAffected != 1 {
		return apperr.New(apperr.Conflict, "video was modified concurrently")
	}

	return nil
}

func (e *Engine) canRead(caller Caller, v *model.Video) bool {
	if caller.Role == model.RoleAdmin {
		return true
	}
	if v.UserID == caller.ID {
		return true
	}
	return v.EditorID != nil && *v.EditorID == caller.ID
}

// loadAssigned fetches a video and verifies the caller is its assigned
// editor, admins pass through
func (e *Engine) loadAssigned(caller Caller, videoID string) (*model.Video, error) {
	v, err := e.loadVideo(videoID)
	if err != nil {
		return nil, err
	}

	if caller.Role == model.RoleAdmin {
		return v, nil
	}

	if v.EditorID == nil || *v.EditorID != caller.ID {
		return nil, apperr.New(apperr.Forbidden, "video is assigned to a different editor")
	}

	return v, nil
}

func (e *Engine) loadVideo(id string) (*model.Video, error) {
	var v model.Video

	err := e.db.Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "video not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load video", err)
	}

	return &v, nil
}

func (e *Engine) loadUser(id string) (*model.User, error) {
	var u model.User

	err := e.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "account not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load account", err)
	}

	return &u, nil
}
