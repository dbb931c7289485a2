package models

import "time"

// Session is one issued token embedded in its owner's User record.
// Its presence is what makes the token usable.
type Session struct {
	ID        string     `json:"id" bson:"id"`
	Token     string     `json:"token" bson:"token"`
	Client    ClientInfo `json:"client" bson:"client"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// ClientInfo records where a session was opened from.
type ClientInfo struct {
	UserAgent string `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	IP        string `json:"ip,omitempty" bson:"ip,omitempty"`
}
