package modifier

import (
	"time"

	"github.com/google/uuid"
)

// JournalAction is what the Core did.
type JournalAction string

const (
	ActionActivated   JournalAction = "activated"
	ActionDeactivated JournalAction = "deactivated"
	ActionRolled      JournalAction = "rolled"
	ActionCleared     JournalAction = "cleared"
)

// JournalReason is why the Core did it.
type JournalReason string

const (
	ReasonCommand    JournalReason = "command"
	ReasonRoundStart JournalReason = "round_start"
	ReasonRoundEnd   JournalReason = "round_end"
	ReasonReroll     JournalReason = "reroll"
	ReasonReload     JournalReason = "reload"
	ReasonUnload     JournalReason = "unload"
)

// JournalEvent is one audit record.
type JournalEvent struct {
	RoundID   uuid.UUID
	Round     int
	Action    JournalAction
	Reason    JournalReason
	Modifiers []string
	At        time.Time
}

// Journal receives audit records. Record must not block the host loop.
type Journal interface {
	Record(e JournalEvent)
}

// NopJournal discards records.
type NopJournal struct{}

func (NopJournal) Record(JournalEvent) {}
