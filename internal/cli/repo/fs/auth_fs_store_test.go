package fs

import (
	"os"
	"path/filepath"
	"testing"

	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/repo"
)

// newTempStore создаёт хранилище в изолированном temp-каталоге теста.
func newTempStore(t *testing.T) *AuthFSStore {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "access_token"), filepath.Join(dir, "session.json"))
}

func TestAuthFSStore_SaveLoad_Token_TrimsWhitespace(t *testing.T) {
	st := newTempStore(t)
	if err := st.Save("tok-123"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	f, _ := os.OpenFile(st.TokenPath, os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	tok, err := st.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token not trimmed, got %q", tok)
	}
}

func TestAuthFSStore_Load_TokenMissingOrEmpty(t *testing.T) {
	st := newTempStore(t)
	// отсутствует файл
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for missing token file")
	}
	// пустой файл
	_ = os.MkdirAll(filepath.Dir(st.TokenPath), 0o700)
	_ = os.WriteFile(st.TokenPath, []byte("\n"), 0o600)
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for empty token file")
	}
}

func TestAuthFSStore_Save_EmptyTokenError(t *testing.T) {
	st := newTempStore(t)
	if err := st.Save(""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestAuthFSStore_Clear_MissingFileOK(t *testing.T) {
	st := newTempStore(t)
	if err := st.Clear(); err != nil {
		t.Fatalf("clear on missing token file: %v", err)
	}
	if err := st.ClearState(); err != nil {
		t.Fatalf("clear on missing session file: %v", err)
	}
}

func TestAuthFSStore_SessionState_RoundTrip(t *testing.T) {
	st := newTempStore(t)
	in := repo.SessionState{
		Authenticated: true,
		User:          &model.User{ID: "u-1", PhoneNumber: "+998901234567"},
	}
	if err := st.SaveState(in); err != nil {
		t.Fatalf("save state: %v", err)
	}
	out, err := st.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !out.Authenticated || out.User == nil || out.User.ID != "u-1" {
		t.Fatalf("state round trip mismatch: %+v", out)
	}
}

func TestAuthFSStore_LoadState_MissingFileIsAnonymous(t *testing.T) {
	st := newTempStore(t)
	state, err := st.LoadState()
	if err != nil {
		t.Fatalf("load missing state: %v", err)
	}
	if state.Authenticated || state.User != nil {
		t.Fatalf("missing file must read as anonymous, got %+v", state)
	}
}

func TestAuthFSStore_States_SameFiles(t *testing.T) {
	st := newTempStore(t)
	states := st.States()
	if err := states.Save(repo.SessionState{Authenticated: true}); err != nil {
		t.Fatalf("save via adapter: %v", err)
	}
	direct, err := st.LoadState()
	if err != nil {
		t.Fatalf("load direct: %v", err)
	}
	if !direct.Authenticated {
		t.Fatalf("adapter and store must share the session file")
	}
	if err := states.Clear(); err != nil {
		t.Fatalf("clear via adapter: %v", err)
	}
	if _, err := os.Stat(st.SessionPath); !os.IsNotExist(err) {
		t.Fatalf("session file should be removed")
	}
}
