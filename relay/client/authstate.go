package client

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// authStorageFile is the fixed storage key for the persisted auth blob,
// matching the browser app's "auth-storage" localStorage entry.
const authStorageFile = "auth-storage.json"

type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Email           string `json:"email,omitempty"`
	Token           string `json:"token,omitempty"`
}

// SaveAuthState persists the auth blob under dir. The file is created with
// owner-only permissions since it carries a credential.
func SaveAuthState(dir string, state AuthState) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, authStorageFile), data, 0o600)
}

// LoadAuthState reads the persisted auth blob. A missing file yields the
// zero state, not an error.
func LoadAuthState(dir string) (AuthState, error) {
	data, err := os.ReadFile(filepath.Join(dir, authStorageFile))
	if os.IsNotExist(err) {
		return AuthState{}, nil
	}
	if err != nil {
		return AuthState{}, err
	}
	var state AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		return AuthState{}, err
	}
	return state, nil
}
