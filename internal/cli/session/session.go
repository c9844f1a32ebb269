package session

import (
	"context"
	"errors"

	"AtlasAdmin/internal/cli/api"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/repo"
)

// Session holds the staff authentication state: anonymous → authenticating →
// authenticated, back to anonymous on logout or a server-signalled 401.
// The authenticated flag is persisted together with the token so both survive
// program restarts.
type Session struct {
	client *api.Client
	tokens repo.TokenStore
	states repo.SessionStore

	Authenticated  bool
	Authenticating bool
	User           *model.User
	Err            string
}

func New(client *api.Client, tokens repo.TokenStore, states repo.SessionStore) *Session {
	s := &Session{client: client, tokens: tokens, states: states}
	client.OnUnauthorized(s.invalidated)
	return s
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Data struct {
		AccessToken string      `json:"accessToken"`
		User        *model.User `json:"user"`
	} `json:"data"`
}

// Login authenticates against the platform and persists the returned token
// and session state. On failure the session stays anonymous and Err carries
// a human-readable message.
func (s *Session) Login(ctx context.Context, phoneNumber, password string) error {
	s.Authenticating = true
	s.Err = ""
	defer func() { s.Authenticating = false }()

	var resp loginResponse
	err := s.client.PostJSON(ctx, "/api/auth/login", loginRequest{PhoneNumber: phoneNumber, Password: password}, &resp)
	if err != nil {
		s.Authenticated = false
		s.Err = loginErrMessage(err)
		return err
	}
	if resp.Data.AccessToken == "" {
		s.Authenticated = false
		s.Err = "login response carried no token"
		return errors.New(s.Err)
	}
	if err := s.tokens.Save(resp.Data.AccessToken); err != nil {
		s.Err = err.Error()
		return err
	}
	s.Authenticated = true
	s.User = resp.Data.User
	_ = s.states.Save(repo.SessionState{Authenticated: true, User: s.User})
	return nil
}

// Logout clears the persisted token and session state.
func (s *Session) Logout() {
	_ = s.tokens.Clear()
	_ = s.states.Clear()
	s.Authenticated = false
	s.User = nil
	s.Err = ""
}

// CheckAuth resynchronizes the flag from the mere presence of a persisted
// token. Known limitation: the token is not validated against the server,
// so a stale token reads as authenticated until the first 401.
func (s *Session) CheckAuth() {
	tok, err := s.tokens.Load()
	s.Authenticated = err == nil && tok != ""
	if st, err := s.states.Load(); err == nil {
		s.User = st.User
	}
}

// ProfileUpdate is a partial patch of the staff profile. Zero-valued fields
// are left untouched server-side.
type ProfileUpdate struct {
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password,omitempty"`
}

// UpdateProfile patches the identity fields for the given staff id and
// merges the returned identity into the session.
func (s *Session) UpdateProfile(ctx context.Context, fields ProfileUpdate, userID string) error {
	s.Err = ""
	var resp struct {
		Data struct {
			User *model.User `json:"user"`
		} `json:"data"`
	}
	if err := s.client.PatchJSON(ctx, "/api/auth/profile/"+userID, fields, &resp); err != nil {
		s.Err = err.Error()
		return err
	}
	if resp.Data.User != nil {
		s.User = resp.Data.User
		_ = s.states.Save(repo.SessionState{Authenticated: s.Authenticated, User: s.User})
	}
	return nil
}

// ClearError resets the stored error message.
func (s *Session) ClearError() { s.Err = "" }

// invalidated is wired as the client's 401 hook: persisted state is already
// gone, so only the in-memory flags need flipping.
func (s *Session) invalidated() {
	s.Authenticated = false
	s.User = nil
}

func loginErrMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "invalid phone number or password"
	}
	return "Login failed. Please try again."
}
