package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable ID for one colony operation.
// Format: {operation}-{colonyID}-{8charHexUUID}, e.g. "simulate-101-a3f8e2b1"
func GenerateRunID(operation string, colonyID int64) string {
	return operation + "-" + strconv.FormatInt(colonyID, 10) + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
