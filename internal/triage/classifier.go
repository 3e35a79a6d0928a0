package triage

import (
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/taxonomy"
)

// Escalate folds one newly selected bucket into the current aggregate
// urgency. Priority: emergency > urgent > routine. Emergency is
// absorbing; the aggregate never downgrades. An empty current adopts
// the new bucket. Total for all well-typed inputs.
func Escalate(current, next model.Urgency) model.Urgency {
	if current == "" {
		return next
	}
	if next == "" {
		return current
	}
	if next.Rank() > current.Rank() {
		return next
	}
	return current
}

// Aggregate recomputes the urgency from scratch over a full selection
// set. Used on deselection, where the aggregate is allowed to downgrade.
// Phrases outside the catalog contribute nothing.
func Aggregate(phrases []string) model.Urgency {
	var urgency model.Urgency
	for _, phrase := range phrases {
		if bucket, ok := taxonomy.Lookup(phrase); ok {
			urgency = Escalate(urgency, bucket)
		}
	}
	return urgency
}
