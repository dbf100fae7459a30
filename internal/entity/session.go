package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// VisitorSession tracks when a browser session was last seen. Stale rows
// are swept by the admin cleanup endpoint, not by the engine.
type VisitorSession struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProjectID  string    `json:"projectId" db:"project_id"`
	SessionID  string    `json:"sessionId" db:"session_id"`
	UserID     string    `json:"userId" db:"user_id"`
	StartedAt  time.Time `json:"startedAt" db:"started_at"`
	LastSeenAt time.Time `json:"lastSeenAt" db:"last_seen_at"`
}
