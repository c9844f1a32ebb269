package fs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"AtlasAdmin/internal/cli/repo"
)

// AuthFSStore — файловое хранилище токена и состояния сессии для CLI.
// Files live wherever the config points (user config dir by default) and
// are created with owner-only permissions.
type AuthFSStore struct {
	TokenPath   string
	SessionPath string
}

func New(tokenPath, sessionPath string) *AuthFSStore {
	return &AuthFSStore{TokenPath: tokenPath, SessionPath: sessionPath}
}

// Save сохраняет access-токен в файл.
func (s *AuthFSStore) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := ensureDir(s.TokenPath); err != nil {
		return err
	}
	return os.WriteFile(s.TokenPath, []byte(token), 0o600)
}

// Load читает access-токен из файла.
func (s *AuthFSStore) Load() (string, error) {
	b, err := os.ReadFile(s.TokenPath)
	if err != nil {
		return "", err
	}
	b = trimTrailingSpace(b)
	if len(b) == 0 {
		return "", errors.New("empty token file")
	}
	return string(b), nil
}

// Clear удаляет файл токена. Отсутствующий файл не считается ошибкой.
func (s *AuthFSStore) Clear() error {
	err := os.Remove(s.TokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveState persists the session flag and identity as JSON.
func (s *AuthFSStore) SaveState(state repo.SessionState) error {
	if err := ensureDir(s.SessionPath); err != nil {
		return err
	}
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.SessionPath, b, 0o600)
}

// LoadState reads the persisted session state. A missing file reads as an
// anonymous session, not an error.
func (s *AuthFSStore) LoadState() (repo.SessionState, error) {
	b, err := os.ReadFile(s.SessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return repo.SessionState{}, nil
		}
		return repo.SessionState{}, err
	}
	var state repo.SessionState
	if err := json.Unmarshal(b, &state); err != nil {
		return repo.SessionState{}, err
	}
	return state, nil
}

// ClearState удаляет файл состояния сессии.
func (s *AuthFSStore) ClearState() error {
	err := os.Remove(s.SessionPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}

func trimTrailingSpace(b []byte) []byte {
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return b
}

// sessionStateAdapter exposes the state half of the store under the
// repo.SessionStore contract.
type sessionStateAdapter struct{ fs *AuthFSStore }

func (a sessionStateAdapter) Save(st repo.SessionState) error  { return a.fs.SaveState(st) }
func (a sessionStateAdapter) Load() (repo.SessionState, error) { return a.fs.LoadState() }
func (a sessionStateAdapter) Clear() error                     { return a.fs.ClearState() }

// States returns the store viewed as a repo.SessionStore.
func (s *AuthFSStore) States() repo.SessionStore { return sessionStateAdapter{fs: s} }
