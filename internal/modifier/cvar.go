package modifier

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/roundmods/internal/model"
)

// CvarDir is the directory, under the plugin and config dirs, holding
// config-defined modifiers.
const CvarDir = "ConVarModifiers"

// UnnamedModifier is the placeholder name for config files without modifier_name.
const UnnamedModifier = "Unnamed"

// Reserved metadata keys of a config-defined modifier.
const (
	keyName         = "modifier_name"
	keyDescription  = "modifier_description"
	keyRandomRounds = "supports_random_rounds"
	keyIncompatible = "incompatible_modifiers"
)

// CvarModifier is a modifier whose identity and directives come from a file.
type CvarModifier struct {
	Base
}

// LoadCvarModifier parses a config-defined modifier from path.
func LoadCvarModifier(path string) (*CvarModifier, error) {
	m := &CvarModifier{}

	cfg, err := ParseConfig(path, m.parseMetadata)
	if err != nil {
		return nil, fmt.Errorf("loading modifier config: %w", err)
	}

	if m.name == "" {
		m.name = UnnamedModifier
		slog.Warn("empty or missing modifier_name", "path", path)
	}
	m.config = cfg
	m.ownsConfig = true
	return m, nil
}

func (m *CvarModifier) parseMetadata(key, value string) bool {
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case keyName:
		m.name = value
	case keyDescription:
		m.description = value
	case keyRandomRounds:
		if value == "" {
			return true
		}
		b, err := model.ParseBool(value)
		if err != nil {
			slog.Warn("invalid supports_random_rounds value", "value", value)
			return true
		}
		m.random = b
	case keyIncompatible:
		m.incompatible = parseNameList(value)
	default:
		return false
	}
	return true
}

// parseNameList parses "[a, b, c]" into its trimmed, non-empty names.
func parseNameList(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")

	var names []string
	for part := range strings.SplitSeq(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
