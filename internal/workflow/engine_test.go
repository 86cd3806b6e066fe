package workflow

import (
	"sync"
	"testing"
	"time"

	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: is per connection, keep the pool at one so every query
	// sees the same database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Video{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, role model.Role, subscription string) Caller {
	t.Helper()

	require.NoError(t, db.Create(&model.User{
		ID:           id,
		Email:        id + "@example.com",
		Role:         role,
		Subscription: subscription,
		Verified:     true,
	}).Error)

	return Caller{ID: id, Role: role}
}

func TestCreate(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4", Caption: "dunk"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, v.Status)
	assert.Nil(t, v.EditorID)
	assert.Equal(t, "owner1", v.UserID)
	assert.Equal(t, 1, v.Version)
}

func TestCreate_InactiveSubscription(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, "CANCELED")

	_, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestCreate_AdminBypassesSubscription(t *testing.T) {
	db := testDB(t)
	e := New(db)

	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(admin, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, v.Status)
}

func TestCreate_EmptyLocator(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)

	_, err := e.Create(owner, CreateInput{OriginalURL: "   "})
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestClaim(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	claimed, err := e.Claim(editor, v.ID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusEditing, claimed.Status)
	require.NotNil(t, claimed.EditorID)
	assert.Equal(t, "editor1", *claimed.EditorID)
	assert.Greater(t, claimed.Version, v.Version)
}

func TestClaim_UserRoleForbidden(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Claim(owner, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestClaim_AlreadyClaimed(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	e1 := seedUser(t, db, "editor1", model.RoleEditor, "")
	e2 := seedUser(t, db, "editor2", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Claim(e1, v.ID)
	require.NoError(t, err)

	_, err = e.Claim(e2, v.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidState))

	// The assignment didn't move
	got, err := e.Get(Caller{ID: "admin", Role: model.RoleAdmin}, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor1", *got.EditorID)
}

func TestClaim_NotFoundDistinguishable(t *testing.T) {
	db := testDB(t)
	e := New(db)

	editor := seedUser(t, db, "editor1", model.RoleEditor, "")

	_, err := e.Claim(editor, "nope")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestClaim_Concurrent(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	e1 := seedUser(t, db, "editor1", model.RoleEditor, "")
	e2 := seedUser(t, db, "editor2", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, ed := range []Caller{e1, e2} {
		wg.Add(1)
		go func(i int, ed Caller) {
			defer wg.Done()
			_, errs[i] = e.Claim(ed, v.ID)
		}(i, ed)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}

		lost++
		k := apperr.KindOf(err)
		assert.Contains(t, []apperr.Kind{apperr.InvalidState, apperr.Conflict}, k)
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	got, err := e.Get(Caller{ID: "admin", Role: model.RoleAdmin}, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEditing, got.Status)
	require.NotNil(t, got.EditorID)
	assert.Contains(t, []string{"editor1", "editor2"}, *got.EditorID)
}

func TestAssignEditor(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	assigned, err := e.AssignEditor(admin, v.ID, "editor1")
	require.NoError(t, err)

	assert.Equal(t, model.StatusEditing, assigned.Status)
	assert.Equal(t, "editor1", *assigned.EditorID)
}

func TestAssignEditor_TargetNotEditor(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.AssignEditor(admin, v.ID, "owner1")
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestUploadEdited_WrongEditor(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	e1 := seedUser(t, db, "editor1", model.RoleEditor, "")
	e2 := seedUser(t, db, "editor2", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Claim(e1, v.ID)
	require.NoError(t, err)

	_, err = e.UploadEdited(e2, v.ID, "http://x/b.mp4")
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestMarkReady_OnlyFromEditing(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	// PENDING, nobody assigned yet
	_, err = e.MarkReady(editor, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = e.Claim(editor, v.ID)
	require.NoError(t, err)

	ready, err := e.MarkReady(editor, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, ready.Status)

	// Already READY, even the admin path hits the state guard
	_, err = e.MarkReady(admin, v.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidState))
}

func TestMarkReady_UnassignedEditorForbidden(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	e1 := seedUser(t, db, "editor1", model.RoleEditor, "")
	e2 := seedUser(t, db, "editor2", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Claim(e1, v.ID)
	require.NoError(t, err)

	_, err = e.MarkReady(e2, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	got, err := e.Get(e1, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEditing, got.Status)
	assert.Equal(t, "editor1", *got.EditorID)
}

func TestPublish_OnlyFromReady(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Publish(admin, v.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidState))

	_, err = e.Claim(editor, v.ID)
	require.NoError(t, err)
	_, err = e.MarkReady(editor, v.ID)
	require.NoError(t, err)

	_, err = e.Publish(editor, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	published, err := e.Publish(admin, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)
}

func TestReject(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	// Reject straight from PENDING works and leaves no editor behind
	rejected, err := e.Reject(admin, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.Nil(t, rejected.EditorID)

	// Terminal states refuse another reject
	_, err = e.Reject(admin, v.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidState))

	// Reject after assignment keeps the editor on the record
	v2, err := e.Create(owner, CreateInput{OriginalURL: "http://x/b.mp4"})
	require.NoError(t, err)
	_, err = e.Claim(editor, v2.ID)
	require.NoError(t, err)

	rejected2, err := e.Reject(admin, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected2.Status)
	require.NotNil(t, rejected2.EditorID)
	assert.Equal(t, "editor1", *rejected2.EditorID)
}

func TestReject_EditorForbidden(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Reject(editor, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestSetStatus_Override(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	// The override skips the table, PENDING straight to PUBLISHED
	got, err := e.SetStatus(admin, v.ID, model.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, got.Status)

	// And back again
	got, err = e.SetStatus(admin, v.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	_, err = e.SetStatus(admin, v.ID, model.Status("BOGUS"))
	assert.True(t, apperr.Is(err, apperr.InvalidInput))

	_, err = e.SetStatus(owner, v.ID, model.StatusReady)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	other := seedUser(t, db, "owner2", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	err = e.Delete(other, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	// Claimed videos can't be withdrawn anymore
	_, err = e.Claim(editor, v.ID)
	require.NoError(t, err)
	err = e.Delete(owner, v.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidState))

	v2, err := e.Create(owner, CreateInput{OriginalURL: "http://x/b.mp4"})
	require.NoError(t, err)
	require.NoError(t, e.Delete(owner, v2.ID))

	_, err = e.Get(owner, v2.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestGet_OwnerEditorAdminOnly(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	stranger := seedUser(t, db, "owner2", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	_, err = e.Get(stranger, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	// Unassigned editors don't see it either, only the queue does
	_, err = e.Get(editor, v.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = e.Get(owner, v.ID)
	assert.NoError(t, err)
	_, err = e.Get(admin, v.ID)
	assert.NoError(t, err)

	_, err = e.Claim(editor, v.ID)
	require.NoError(t, err)
	_, err = e.Get(editor, v.ID)
	assert.NoError(t, err)
}

// The happy path end to end: submit, claim, edit, ready, publish
func TestPipeline(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "athlete", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")
	admin := seedUser(t, db, "admin1", model.RoleAdmin, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4", Caption: "buzzer beater"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, v.Status)
	assert.Nil(t, v.EditorID)

	v, err = e.Claim(editor, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEditing, v.Status)
	assert.Equal(t, "editor1", *v.EditorID)

	v, err = e.UploadEdited(editor, v.ID, "http://x/b.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://x/b.mp4", v.EditedURL)
	assert.Equal(t, model.StatusEditing, v.Status)

	v, err = e.UpdateNotes(editor, v.ID, "trimmed intro, added slow-mo")
	require.NoError(t, err)
	assert.Equal(t, "trimmed intro, added slow-mo", v.EditorNotes)

	v, err = e.MarkReady(editor, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, v.Status)

	v, err = e.Publish(admin, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, v.Status)
}

func TestUpdatedAtBumps(t *testing.T) {
	db := testDB(t)
	e := New(db)

	owner := seedUser(t, db, "owner1", model.RoleUser, model.SubscriptionActive)
	editor := seedUser(t, db, "editor1", model.RoleEditor, "")

	v, err := e.Create(owner, CreateInput{OriginalURL: "http://x/a.mp4"})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	claimed, err := e.Claim(editor, v.ID)
	require.NoError(t, err)
	assert.Greater(t, claimed.UpdatedAt, v.UpdatedAt)
}
