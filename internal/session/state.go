package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockForecaster/internal/model"
)

// LoadState reads the session state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*model.SessionState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SessionState{}, nil
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}
	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

// SaveState writes the session state to a JSON file via a temp file and rename.
func SaveState(filePath string, state *model.SessionState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
