package model

// Status is a video's pipeline stage. The enum is closed, the database
// never stores anything outside of it.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusEditing   Status = "EDITING"
	StatusReady     Status = "READY"
	StatusPublished Status = "PUBLISHED"
	StatusRejected  Status = "REJECTED"
)

// ParseStatus validates a wire value against the closed status set
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusEditing, StatusReady, StatusPublished, StatusRejected:
		return Status(s), true
	}
	return "", false
}

type Video struct {
	ID string `gorm:"primaryKey" json:"id"`
	// Owner, fixed at creation
	UserID string `gorm:"index;not null" json:"user_id"`
	// Nil until an editor claims the video or an admin assigns one.
	// Stays populated after a reject or an admin status override
	EditorID *string `gorm:"index" json:"editor_id,omitempty"`

	// Opaque locators into the external media store. Never inspected
	// beyond non-emptiness
	OriginalURL string `gorm:"not null" json:"original_url"`
	EditedURL   string `json:"edited_url,omitempty"`

	Status      Status `gorm:"index;default:PENDING" json:"status"`
	Caption     string `json:"caption"`
	Platform    string `json:"platform"`
	EditorNotes string `json:"editor_notes,omitempty"`

	// Bumped on every mutation. All status writes are conditional on it
	// so concurrent claims can't both win
	Version int `gorm:"default:1" json:"version"`

	// Unix millisecond timestamps
	CreatedAt int64 `gorm:"not null;index" json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
