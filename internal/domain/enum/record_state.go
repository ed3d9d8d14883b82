package enum

import "strings"

// RecordState selects one side of the soft-delete partition
type RecordState string

const (
	RecordStateActive  RecordState = "active"
	RecordStateDeleted RecordState = "deleted"
)

// ParseRecordState maps a query value to a state; anything unknown is active.
func ParseRecordState(s string) RecordState {
	if strings.EqualFold(strings.TrimSpace(s), string(RecordStateDeleted)) {
		return RecordStateDeleted
	}
	return RecordStateActive
}
