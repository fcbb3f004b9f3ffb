package cmdmetrics

import (
	"errors"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
)

// Record files one command outcome. A nil recorder is allowed.
func Record(m ports.CommandMetrics, command string, out rejection.Outcome, err error) {
	if m == nil {
		return
	}
	switch {
	case errors.Is(err, ports.ErrConflict):
		m.RecordConflict(command)
	case err != nil:
		m.RecordFailure(command)
	case !out.Success:
		m.RecordRejection(command, string(out.Code))
	default:
		m.RecordSuccess(command)
	}
}
