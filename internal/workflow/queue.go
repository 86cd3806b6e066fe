package workflow

import (
	"reelup/review-api/internal/access"
	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"
)

// ListQueue returns the claimable work list: every PENDING video,
// oldest submission first. The ordering is a fairness policy, ties
// break on ID so the result is deterministic
func (e *Engine) ListQueue(caller Caller) ([]model.Video, error) {
	if err := access.Check(caller.Role, access.OpViewQueue); err != nil {
		return nil, err
	}

	var videos []model.Video

	err := e.db.
		Where("status = ?", model.StatusPending).
		Order("created_at asc, id asc").
		Find(&videos).
		Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list queue", err)
	}

	return videos, nil
}

// ListAssigned returns the videos on the calling editor's desk, most
// recently touched first
func (e *Engine) ListAssigned(caller Caller) ([]model.Video, error) {
	if err := access.Check(caller.Role, access.OpViewAssigned); err != nil {
		return nil, err
	}

	var videos []model.Video

	err := e.db.
		Where("editor_id = ?", caller.ID).
		Order("updated_at desc").
		Find(&videos).
		Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list assigned videos", err)
	}

	return videos, nil
}

// ListAll is the admin overview of every submission
func (e *Engine) ListAll(caller Caller) ([]model.Video, error) {
	if err := access.Check(caller.Role, access.OpListAllVideos); err != nil {
		return nil, err
	}

	var videos []model.Video

	err := e.db.
		Order("created_at desc").
		Find(&videos).
		Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list videos", err)
	}

	return videos, nil
}
