package idgen

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// RunID identifies one sync run. It sorts by start time, so audit lines and
// log records of consecutive runs can be told apart and ordered.
type RunID struct {
	id ulid.ULID
}

// NewRunID stamps a run started at startedAt.
func NewRunID(startedAt time.Time) RunID {
	return RunID{id: ulid.MustNew(ulid.Timestamp(startedAt), ulid.DefaultEntropy())}
}

// ParseRunID reads back an ID previously rendered by String.
func ParseRunID(s string) (RunID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return RunID{}, err
	}
	return RunID{id: id}, nil
}

func (r RunID) String() string {
	return r.id.String()
}

// StartedAt returns the start time encoded in the ID, at millisecond precision.
func (r RunID) StartedAt() time.Time {
	return ulid.Time(r.id.Time())
}

// Before reports whether r was started before other.
func (r RunID) Before(other RunID) bool {
	return r.id.Compare(other.id) < 0
}
