package repo

import "AtlasAdmin/internal/cli/model"

// SessionState is the part of the session persisted across program runs:
// the authenticated flag and, when known, the staff identity.
type SessionState struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user,omitempty"`
}

// SessionStore абстракция для хранения состояния сессии между запусками.
type SessionStore interface {
	Save(SessionState) error
	Load() (SessionState, error)
	Clear() error
}
