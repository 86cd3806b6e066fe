package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "EDITING", "READY", "PUBLISHED", "REJECTED"} {
		got, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, string(got))
	}

	_, ok := ParseStatus("pending")
	assert.False(t, ok, "wire values are case sensitive")
	_, ok = ParseStatus("DELETED")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"USER", "EDITOR", "ADMIN"} {
		got, ok := ParseRole(r)
		assert.True(t, ok, r)
		assert.Equal(t, r, string(got))
	}

	_, ok := ParseRole("ROOT")
	assert.False(t, ok)
}

func TestCanUpload(t *testing.T) {
	assert.True(t, (&User{Role: RoleUser, Subscription: SubscriptionActive}).CanUpload())
	assert.False(t, (&User{Role: RoleUser, Subscription: "CANCELED"}).CanUpload())
	assert.False(t, (&User{Role: RoleEditor, Subscription: ""}).CanUpload())
	assert.True(t, (&User{Role: RoleAdmin, Subscription: ""}).CanUpload())
}
