package schedule

// State names the three possible outcomes of resolving "now".
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
	StateWaiting  State = "waiting"
)

// DayCompleteNow is shown once every block is checked off.
func DayCompleteNow() Now {
	return Now{
		Block:    "Day Complete",
		Task:     "All blocks finished",
		Icon:     "✔",
		Color:    "#2ecc71",
		Label:    "COMPLETE",
		Details:  []string{},
		Category: CategoryHealth,
	}
}

// WaitingNow is shown when there is no schedule to follow.
func WaitingNow() Now {
	return Now{
		Task:     "Waiting for schedule",
		Icon:     "◌",
		Color:    "#555555",
		Label:    "WAITING",
		Details:  []string{},
		Category: CategoryWork,
	}
}

// ResolveCurrent marks the first incomplete block as current and builds the
// "now" section from it. It returns a new slice; at most one block in it has
// IsCurrent set.
func ResolveCurrent(blocks []Block) ([]Block, Now, State) {
	out := make([]Block, len(blocks))
	copy(out, blocks)

	for i := range out {
		out[i].IsCurrent = false
	}
	for i := range out {
		if out[i].Done {
			continue
		}
		out[i].IsCurrent = true
		b := out[i]
		return out, Now{
			Block:    b.Name,
			Task:     b.Task,
			File:     b.File,
			Source:   b.Source,
			Icon:     b.Icon,
			Color:    b.Color,
			Label:    b.Label,
			Details:  append([]string{}, b.Details...),
			Category: b.Category,
		}, StateActive
	}

	if len(out) > 0 {
		return out, DayCompleteNow(), StateComplete
	}
	return out, WaitingNow(), StateWaiting
}

// AllDone reports whether there is at least one block and all are done.
func AllDone(blocks []Block) bool {
	if len(blocks) == 0 {
		return false
	}
	for _, b := range blocks {
		if !b.Done {
			return false
		}
	}
	return true
}
