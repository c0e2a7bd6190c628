// Package admin dispatches operator commands to registered handlers.
package admin

// Access levels. Listing needs User, changing modifier state needs Root.
const (
	AccessUser     int32 = 0
	AccessOperator int32 = 1
	AccessRoot     int32 = 100
)

// AccessLevel describes what a caller at a given level may do.
type AccessLevel struct {
	Level      int32
	Name       string
	CanUseCmds bool
}

var defaultAccessLevels = map[int32]*AccessLevel{
	AccessUser: {
		Level:      AccessUser,
		Name:       "User",
		CanUseCmds: true,
	},
	AccessOperator: {
		Level:      AccessOperator,
		Name:       "Operator",
		CanUseCmds: true,
	},
	AccessRoot: {
		Level:      AccessRoot,
		Name:       "Root",
		CanUseCmds: true,
	},
}

// GetAccessLevel returns AccessLevel for the given level value.
// Unknown levels inherit from the highest known level below them.
// Negative levels (banned) return nil.
func GetAccessLevel(level int32) *AccessLevel {
	if level < 0 {
		return nil
	}

	if al, ok := defaultAccessLevels[level]; ok {
		return al
	}

	var best *AccessLevel
	for _, al := range defaultAccessLevels {
		if al.Level <= level && (best == nil || al.Level > best.Level) {
			best = al
		}
	}
	return best
}
