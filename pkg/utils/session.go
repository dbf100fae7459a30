package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateSessionID mirrors the id shape the landing pages generate client
// side: session_<unix ms>_<random suffix>.
func GenerateSessionID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("session_%d_fallback", time.Now().UnixMilli())
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
