package model

import "time"

type MembershipLevel string

const (
	MembershipNormal MembershipLevel = "normal"
	MembershipVIP    MembershipLevel = "vip"
)

type UserProfile struct {
	ID              int64           `json:"id,omitempty"`
	Username        string          `json:"username"`
	MembershipLevel MembershipLevel `json:"membership_level"`
}

// Session is the token/profile pair of the logged-in user. A zero Session is
// anonymous.
type Session struct {
	Token string
	User  *UserProfile
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// SessionEntry is a row of the durable key/value store backing the session.
type SessionEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:64;not null"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
