package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser() *User {
	return &User{
		ID:           "u1",
		Email:        "ann@example.com",
		PasswordHash: "$2a$12$hash",
		Name:         "Ann",
		Sessions:     []Session{{ID: "s1", Token: "t1"}, {ID: "s2", Token: "t2"}},
	}
}

func TestUser_Public(t *testing.T) {
	assert.Equal(t, PublicUser{ID: "u1", Name: "Ann", Email: "ann@example.com"}, sampleUser().Public())
}

func TestUser_HasSession(t *testing.T) {
	u := sampleUser()
	assert.True(t, u.HasSession("t1"))
	assert.True(t, u.HasSession("t2"))
	assert.False(t, u.HasSession("t3"))
	assert.False(t, (&User{}).HasSession(""))
}

func TestUser_CloneDoesNotShareSessions(t *testing.T) {
	u := sampleUser()
	c := u.Clone()
	c.Sessions[0].Token = "changed"
	c.Sessions = append(c.Sessions, Session{Token: "t3"})

	assert.Equal(t, "t1", u.Sessions[0].Token)
	assert.Len(t, u.Sessions, 2)
}

func TestUser_JSONOmitsSecrets(t *testing.T) {
	b, err := json.Marshal(sampleUser())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "t1")
}
