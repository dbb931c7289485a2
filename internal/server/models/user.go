// Package models holds the persisted server-side entities.
package models

import "time"

// User is a registered identity. Email is unique across all users and is
// the login identifier. PasswordHash is never serialized to clients.
type User struct {
	ID           string    `json:"id" bson:"-"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	Sessions     []Session `json:"-" bson:"sessions"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// PublicUser is the client-facing projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips credentials and sessions.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// HasSession reports whether token is one of the user's live sessions.
func (u *User) HasSession(token string) bool {
	for _, s := range u.Sessions {
		if s.Token == token {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so stores can hand out users without sharing
// the sessions slice.
func (u *User) Clone() *User {
	c := *u
	c.Sessions = append(make([]Session, 0, len(u.Sessions)), u.Sessions...)
	return &c
}
