package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
)

// resolveCharacterID resolves the character from flags or user defaults
// Priority: --character flag > user config default
func resolveCharacterID() (int32, error) {
	if characterID > 0 {
		return characterID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no character specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no character specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultCharacterID != nil {
		return *userCfg.DefaultCharacterID, nil
	}

	return 0, fmt.Errorf("no character specified: use --character, or set a default with 'colonysim config set-character'")
}

func parseColonyID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid colony id %q", arg)
	}
	return id, nil
}

func parseTypeID(arg string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid type id %q", arg)
	}
	return int32(id), nil
}

// printJSON writes v as indented JSON
func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
