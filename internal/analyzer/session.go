package analyzer

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session identifies one analysis run. The symbol table lives exactly as
// long as its session; Reset starts a new one.
type Session struct {
	ID      uuid.UUID
	Project string
	Started time.Time
}

func newSession(project string) Session {
	return Session{ID: uuid.New(), Project: project, Started: time.Now()}
}

// LogValue makes a session loggable as a group.
func (s Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", s.ID.String()),
		slog.String("project", s.Project),
	)
}
