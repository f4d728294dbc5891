// Package jtbd holds the pure domain rules of the Jobs To Be Done model:
// story completeness, force/group compatibility, and matrix progress. These
// are recomputed on every read and never stored.
package jtbd

import "github.com/forceboard-dev/forceboard/internal/models"

// IsComplete reports whether a story has at least one push and one pull
// force. Habit and anxiety forces do not count either way.
func IsComplete(forces []models.Force) bool {
	var hasPush, hasPull bool

	for _, force := range forces {
		switch force.Type {
		case models.ForceTypePush:
			hasPush = true
		case models.ForceTypePull:
			hasPull = true
		}
	}

	return hasPush && hasPull
}

// CanAssign reports whether a force may be placed in a group. Leftover
// groups are catch-all buckets and accept any type; everything else requires
// an exact type match.
func CanAssign(forceType string, group models.ForceGroup) bool {
	if group.IsLeftover {
		return true
	}
	return forceType == group.Type
}

// Progress returns the fraction of answered matrix cells over the full
// story-by-group grid, in percent. An empty grid counts as zero, not NaN.
func Progress(answered, stories, groups int) float64 {
	total := stories * groups
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}
