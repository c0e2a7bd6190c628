package model

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// SettingKind is the value type of a console setting.
type SettingKind uint8

const (
	KindBool SettingKind = iota
	KindInt
	KindFloat
	KindString
	KindVector2
	KindVector3
	KindAngle
	KindColor
)

// components returns number of numeric components for vector-like kinds.
func (k SettingKind) components() int {
	switch k {
	case KindVector2:
		return 2
	case KindVector3, KindAngle:
		return 3
	case KindColor:
		return 4
	default:
		return 0
	}
}

func (k SettingKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVector2:
		return "vector2"
	case KindVector3:
		return "vector3"
	case KindAngle:
		return "angle"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// SettingFlags describe how a setting reaches clients.
type SettingFlags uint32

const (
	// FlagReplicated settings are mirrored to each client and can be overridden per client.
	FlagReplicated SettingFlags = 1 << iota
	// FlagClientCanExecute settings may be executed directly by the client.
	FlagClientCanExecute
	// FlagCheat settings are only honoured with cheats enabled (informational).
	FlagCheat
)

// Setting is a named server console variable.
// Thread-safe: value access is guarded by mu.
type Setting struct {
	name  string
	kind  SettingKind
	flags SettingFlags

	mu  sync.RWMutex
	b   bool
	i   int64
	f   float64
	s   string
	vec [4]float64
}

// NewSetting creates a setting and parses its initial value.
func NewSetting(name string, kind SettingKind, flags SettingFlags, value string) (*Setting, error) {
	if name == "" {
		return nil, fmt.Errorf("setting name is empty")
	}
	s := &Setting{name: name, kind: kind, flags: flags}
	if err := s.Set(value); err != nil {
		return nil, fmt.Errorf("initial value of %s: %w", name, err)
	}
	return s, nil
}

// MustSetting is NewSetting for static tables. Panics on invalid input.
func MustSetting(name string, kind SettingKind, flags SettingFlags, value string) *Setting {
	s, err := NewSetting(name, kind, flags, value)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Setting) Name() string        { return s.name }
func (s *Setting) Kind() SettingKind   { return s.kind }
func (s *Setting) Flags() SettingFlags { return s.flags }

// Has reports whether all bits of flag are set.
func (s *Setting) Has(flag SettingFlags) bool {
	return s.flags&flag == flag
}

// String returns the current value in a locale-invariant form that Set accepts back.
// Vector-like values are space-separated with two decimals per component.
func (s *Setting) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.kind {
	case KindBool:
		return strconv.FormatBool(s.b)
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return FormatFloat(s.f)
	case KindString:
		return s.s
	case KindColor:
		parts := make([]string, 4)
		for i := range 4 {
			parts[i] = strconv.FormatInt(int64(s.vec[i]), 10)
		}
		return strings.Join(parts, " ")
	default:
		n := s.kind.components()
		parts := make([]string, n)
		for i := range n {
			parts[i] = strconv.FormatFloat(s.vec[i], 'f', 2, 64)
		}
		return strings.Join(parts, " ")
	}
}

// Literal returns the value as written in a directive. String values are
// quoted so an empty value still forms a two-token directive.
func (s *Setting) Literal() string {
	v := s.String()
	if s.kind == KindString {
		return `"` + v + `"`
	}
	return v
}

// Set parses raw according to the setting kind.
// Bool accepts true/false and 1/0; numbers use '.' as decimal separator.
func (s *Setting) Set(raw string) error {
	raw = strings.TrimSpace(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.kind {
	case KindBool:
		b, err := ParseBool(raw)
		if err != nil {
			return err
		}
		s.b = b
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Consoles routinely accept "2.0" for integer variables.
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil {
				return fmt.Errorf("parsing int %q: %w", raw, err)
			}
			i = int64(f)
		}
		s.i = i
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing float %q: %w", raw, err)
		}
		s.f = f
	case KindString:
		s.s = strings.Trim(raw, `"`)
	default:
		fields := strings.Fields(raw)
		n := s.kind.components()
		if len(fields) != n {
			return fmt.Errorf("%s value %q: want %d components, got %d", s.kind, raw, n, len(fields))
		}
		var vec [4]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("parsing %s component %q: %w", s.kind, field, err)
			}
			vec[i] = v
		}
		s.vec = vec
	}
	return nil
}

// Bool returns the value of a KindBool setting.
func (s *Setting) Bool() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b
}

// Int returns the value of a KindInt setting.
func (s *Setting) Int() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.i
}

// Float returns the value of a KindFloat setting.
func (s *Setting) Float() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f
}

// FormatFloat formats f without locale and without trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseBool accepts the spellings a console directive may use.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("parsing bool %q", raw)
}

// SplitDirective splits "<name> <value...>" into its two tokens.
// ok is false if the line does not have both parts.
func SplitDirective(line string) (name, value string, ok bool) {
	line = strings.TrimSpace(line)
	idx := strings.IndexAny(line, " \t")
	if idx <= 0 {
		return "", "", false
	}
	name = line[:idx]
	value = strings.TrimSpace(line[idx+1:])
	if value == "" {
		return "", "", false
	}
	return name, value, true
}
