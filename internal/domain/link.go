package domain

import "time"

// Direction is the way a game moves between its locations
type Direction int

const (
	DirectionLink   Direction = iota // source -> target, junction left at source
	DirectionUnlink                  // target -> source, junction removed
)

func (d Direction) String() string {
	if d == DirectionUnlink {
		return "unlink"
	}
	return "link"
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) Direction {
	if s == "unlink" {
		return DirectionUnlink
	}
	return DirectionLink
}

// LinkOperation is the resolved unit of work for one invocation
type LinkOperation struct {
	Game       string
	SourcePath string // Original location; holds the junction after linking
	TargetPath string // Final location of the game data
	Direction  Direction
}

// Action is what the engine decided to do for a LinkOperation
type Action int

const (
	ActionNone             Action = iota
	ActionMoveAndLink             // Move source to target, then create the junction
	ActionLinkOnly                // Target already holds the game; only create the junction
	ActionUnlinkAndRestore        // Remove the junction, then move target back to source
	ActionRestore                 // No junction left; move target back to source
)

func (a Action) String() string {
	switch a {
	case ActionMoveAndLink:
		return "move+link"
	case ActionLinkOnly:
		return "link"
	case ActionUnlinkAndRestore:
		return "unlink+restore"
	case ActionRestore:
		return "restore"
	default:
		return "none"
	}
}

// ParseAction converts a string produced by Action.String back to an Action
func ParseAction(s string) Action {
	for _, a := range []Action{ActionMoveAndLink, ActionLinkOnly, ActionUnlinkAndRestore, ActionRestore} {
		if a.String() == s {
			return a
		}
	}
	return ActionNone
}

// TransferProgress reports how far a move has come
type TransferProgress struct {
	Total       int64
	Transferred int64
	CurrentFile string // Empty until the first file is in flight
}

// ProgressFunc receives progress updates during a transfer.
// Called once before any byte moves: ({Total, 0, ""}), then after every chunk.
type ProgressFunc func(TransferProgress)

// HistoryEntry is a journal record of a completed operation
type HistoryEntry struct {
	ID         int64
	Platform   string
	Game       string
	SourcePath string
	TargetPath string
	Direction  Direction
	Action     Action
	Bytes      int64
	CreatedAt  time.Time
}
