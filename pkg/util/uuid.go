package util

import (
	"crypto/md5"
	"encoding/json"

	"github.com/google/uuid"
)

// HashUUID derives a stable UUID from any JSON-serializable value.
// Used to fingerprint a run configuration so repeated runs with the
// same settings log the same identifier.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	hash := md5.Sum(raw)
	id, err := uuid.FromBytes(hash[:])
	if err != nil {
		return ""
	}
	return id.String()
}

// RunID returns a fresh random identifier for a single pipeline run
func RunID() string {
	return uuid.NewString()
}
