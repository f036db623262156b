package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrMissingURL   = errors.New("missing endpoint url")
	ErrUnknownModel = errors.New("unknown model")
)

// DefaultModels are the engine variants the authority understands.
var DefaultModels = []string{"random", "minimax", "chessai"}

// Config is the page configuration the controller consumes.
type Config struct {
	CSRFToken      string        `mapstructure:"csrf_token"`
	MoveURL        string        `mapstructure:"move_url"`
	ResetURL       string        `mapstructure:"reset_url"`
	UndoURL        string        `mapstructure:"undo_url"`
	Model          string        `mapstructure:"model"`
	Models         []string      `mapstructure:"models"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Debug          bool          `mapstructure:"debug"`
	JournalDSN     string        `mapstructure:"journal_dsn"`
}

// Flags registers the command-line overrides on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (yaml, toml, json or env)")
	fs.String("csrf-token", "", "request-forgery token sent with every submission")
	fs.String("move-url", "", "make-move endpoint")
	fs.String("reset-url", "", "reset-game endpoint")
	fs.String("undo-url", "", "undo endpoint (optional)")
	fs.String("model", "", "engine variant")
	fs.Duration("request-timeout", 0, "per-submission timeout")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("journal-dsn", "", "postgres DSN for the submission journal (optional)")
}

// Setup reads configuration from defaults, an optional file, BOARDCLIENT_*
// environment variables and fs, in increasing priority.
func Setup(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("model", DefaultModels[0])
	v.SetDefault("models", DefaultModels)
	v.SetDefault("request_timeout", 10*time.Second)

	v.SetEnvPrefix("boardclient")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		fs.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required endpoints and the model choice.
func (c *Config) Validate() error {
	if c.MoveURL == "" {
		return fmt.Errorf("%w: move_url", ErrMissingURL)
	}
	if c.ResetURL == "" {
		return fmt.Errorf("%w: reset_url", ErrMissingURL)
	}
	if len(c.Models) == 0 {
		c.Models = DefaultModels
	}
	if !contains(c.Models, c.Model) {
		return fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownModel, c.Model, strings.Join(c.Models, ", "))
	}
	return nil
}

// ModelChoice is the engine variant currently selected out of a fixed set.
type ModelChoice struct {
	mu      sync.Mutex
	choices []string
	current string
}

// NewModelChoice selects current out of choices.
func NewModelChoice(choices []string, current string) (*ModelChoice, error) {
	m := &ModelChoice{choices: append([]string(nil), choices...)}
	if err := m.Set(current); err != nil {
		return nil, err
	}
	return m, nil
}

// Model returns the selected variant.
func (m *ModelChoice) Model() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set changes the selection; names outside the set are refused.
func (m *ModelChoice) Set(name string) error {
	if !contains(m.choices, name) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	m.mu.Lock()
	m.current = name
	m.mu.Unlock()
	return nil
}

// Choices lists the selectable variants.
func (m *ModelChoice) Choices() []string {
	return append([]string(nil), m.choices...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
