package model

// Priority is the clinical urgency assigned by an administrator at
// confirmation time.
type Priority string

const (
	PriorityEmergency Priority = "EMERGENCY"
	PriorityUrgent    Priority = "URGENT"
	PriorityNormal    Priority = "NORMAL"
)

// priorityRank makes the ordering contract explicit instead of relying on
// declaration order. Unknown values rank below NORMAL.
var priorityRank = map[Priority]int{
	PriorityEmergency: 2,
	PriorityUrgent:    1,
	PriorityNormal:    0,
}

// Rank returns the urgency rank of p; higher means more urgent.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}
