package core

import "glink/internal/domain"

// Plan decides what to do given which legs of an operation exist.
// It is pure: every combination maps to exactly one action or error.
func Plan(sourceExists, targetExists bool, direction domain.Direction) (domain.Action, error) {
	if !sourceExists && !targetExists {
		return domain.ActionNone, domain.ErrNeitherLocation
	}

	if direction == domain.DirectionUnlink {
		switch {
		case sourceExists && targetExists:
			return domain.ActionUnlinkAndRestore, nil
		case !targetExists:
			return domain.ActionNone, domain.ErrTargetMissing
		default:
			return domain.ActionRestore, nil
		}
	}

	switch {
	case sourceExists && targetExists:
		return domain.ActionNone, domain.ErrBothLocations
	case sourceExists:
		return domain.ActionMoveAndLink, nil
	default:
		return domain.ActionLinkOnly, nil
	}
}
