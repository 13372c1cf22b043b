package client

import "time"

// User mirrors the server's public user shape.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Entry mirrors the server's impulse entry shape.
type Entry struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	ImpulseText string     `json:"impulseText"`
	Trigger     string     `json:"trigger,omitempty"`
	Emotion     string     `json:"emotion,omitempty"`
	DidAct      string     `json:"didAct"`
	Notes       string     `json:"notes,omitempty"`
}

// AuthResult is the register/login response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// EntryDraft is the create-entry request body. Zero didAct lets the server
// default it to "unknown".
type EntryDraft struct {
	ImpulseText string `json:"impulseText"`
	Trigger     string `json:"trigger,omitempty"`
	Emotion     string `json:"emotion,omitempty"`
	DidAct      string `json:"didAct,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// EntryPatch is the partial-update body; nil fields are omitted from the
// JSON and left unchanged by the server.
type EntryPatch struct {
	ImpulseText *string `json:"impulseText,omitempty"`
	Trigger     *string `json:"trigger,omitempty"`
	Emotion     *string `json:"emotion,omitempty"`
	DidAct      *string `json:"didAct,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// UserPatch is the self-update body. Empty fields are ignored server-side.
type UserPatch struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Password string `json:"password,omitempty"`
}

// ListFilter narrows ListEntries. Zero values mean "no filter".
type ListFilter struct {
	StartDate string
	EndDate   string
	DidAct    string
}
