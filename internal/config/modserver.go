package config

import "time"

// EnvConfigPath names the variable that overrides the config file path.
const EnvConfigPath = "ROUNDMODS_CONFIG"

// DefaultPath is where the server looks for its config file.
const DefaultPath = "config/modserver.yaml"

// Modifiers controls the modifier engine.
type Modifiers struct {
	// PluginDir and ConfigDir are the parents of ConVarModifiers/ and ModifierConfig/.
	PluginDir string `yaml:"plugin_dir" env:"PLUGIN_DIR"`
	ConfigDir string `yaml:"config_dir" env:"CONFIG_DIR"`

	RandomRoundsEnabledByDefault bool     `yaml:"random_rounds_enabled_by_default" env:"RANDOM_ROUNDS"`
	ShowCentreMsg                bool     `yaml:"show_centre_msg" env:"SHOW_CENTRE_MSG"`
	CanRepeat                    bool     `yaml:"can_repeat" env:"CAN_REPEAT"`
	MinRandomRounds              int      `yaml:"min_random_rounds" env:"MIN_RANDOM"`
	MaxRandomRounds              int      `yaml:"max_random_rounds" env:"MAX_RANDOM"`
	DisabledModifiers            []string `yaml:"disabled_modifiers" env:"DISABLED"`
}

// Match controls the simulated match host.
type Match struct {
	TickInterval  time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	RoundDuration time.Duration `yaml:"round_duration" env:"ROUND_DURATION"`
	FreezeTime    time.Duration `yaml:"freeze_time" env:"FREEZE_TIME"`
	Bots          int           `yaml:"bots" env:"BOTS"`
}

// Console controls the remote TCP console.
type Console struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED"`
	BindAddress string `yaml:"bind_address" env:"BIND_ADDRESS"`
	Port        int    `yaml:"port" env:"PORT"`
	// PasswordHash is a bcrypt hash; an empty hash refuses every login.
	PasswordHash string        `yaml:"password_hash" env:"PASSWORD_HASH"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	Stdin        bool          `yaml:"stdin" env:"STDIN"`
}

// Server holds all configuration for the modifier server.
type Server struct {
	LogLevel string `yaml:"log_level" env:"ROUNDMODS_LOG_LEVEL"`

	Modifiers Modifiers      `yaml:"modifiers" envPrefix:"ROUNDMODS_MODIFIERS_"`
	Match     Match          `yaml:"match" envPrefix:"ROUNDMODS_MATCH_"`
	Console   Console        `yaml:"console" envPrefix:"ROUNDMODS_CONSOLE_"`
	Database  DatabaseConfig `yaml:"database" envPrefix:"ROUNDMODS_DB_"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel: "info",
		Modifiers: Modifiers{
			PluginDir:                    "plugin",
			ConfigDir:                    "config",
			RandomRoundsEnabledByDefault: true,
			ShowCentreMsg:                true,
			CanRepeat:                    false,
			MinRandomRounds:              1,
			MaxRandomRounds:              1,
		},
		Match: Match{
			TickInterval:  100 * time.Millisecond,
			RoundDuration: 2 * time.Minute,
			FreezeTime:    10 * time.Second,
			Bots:          4,
		},
		Console: Console{
			Enabled:     false,
			BindAddress: "127.0.0.1",
			Port:        27015,
			ReadTimeout: 5 * time.Minute,
			Stdin:       true,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "roundmods",
			Password: "roundmods",
			DBName:   "roundmods",
			SSLMode:  "disable",
		},
	}
}

// LoadServer loads server config from a YAML file and the environment.
// If the file doesn't exist, defaults are used.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
