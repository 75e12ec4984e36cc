// internal/config/config.go
//
// Runtime configuration for the server and terminal client.
//
// Responsibilities:
//   - Merge defaults, an optional YAML config file, environment variables and
//     bound CLI flags through viper.
//   - Accept the WORDLE_ prefixed names as well as the plain legacy names
//     (PORT, LOG_LEVEL, JWT_SECRET, DAILY_SALT, CLIENT_ORIGIN).
//   - Validate the result with go-playground/validator.
//
// Precedence (highest first): flags, environment, config file, defaults.

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle-core/internal/words"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WORDLE"

// Config is the validated runtime configuration.
type Config struct {
	Addr      string `mapstructure:"addr" validate:"required"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=auto console json"`

	MaxGuesses int `mapstructure:"max_guesses" validate:"min=1"`
	WordLength int `mapstructure:"word_length" validate:"min=1"`

	AnswersFile string `mapstructure:"answers_file"`
	AllowedFile string `mapstructure:"allowed_file" validate:"required_with=AnswersFile"`
	PackFile    string `mapstructure:"pack_file"`
	DBPath      string `mapstructure:"db_path"`

	DailySalt    string        `mapstructure:"daily_salt" validate:"required"`
	JWTSecret    string        `mapstructure:"jwt_secret" validate:"required,min=8"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	ClientOrigin string        `mapstructure:"client_origin" validate:"required,url"`

	ErrorTTL     time.Duration `mapstructure:"error_ttl" validate:"gte=0"`
	HistoryLimit int           `mapstructure:"history_limit" validate:"gte=0"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" validate:"gte=0"`
}

// Words returns the vocabulary source options.
func (c Config) Words() words.Options {
	return words.Options{
		DBPath:      c.DBPath,
		PackFile:    c.PackFile,
		AnswersFile: c.AnswersFile,
		AllowedFile: c.AllowedFile,
	}
}

type key struct {
	name   string
	def    any
	legacy []string
}

var keys = []key{
	{"port", "5175", []string{"PORT"}},
	{"addr", "", nil},
	{"log_level", "info", []string{"LOG_LEVEL"}},
	{"log_format", "auto", nil},
	{"max_guesses", 6, nil},
	{"word_length", 5, nil},
	{"answers_file", "", nil},
	{"allowed_file", "", nil},
	{"pack_file", "", nil},
	{"db_path", "", nil},
	{"daily_salt", "local_dev_salt", []string{"DAILY_SALT"}},
	{"jwt_secret", "dev_secret_change_me", []string{"JWT_SECRET"}},
	{"token_ttl", "24h", nil},
	{"client_origin", "http://localhost:5173", []string{"CLIENT_ORIGIN"}},
	{"error_ttl", "3s", nil},
	{"history_limit", 32, nil},
	{"session_ttl", "2h", nil},
}

// LoadDotenv reads .env style files into the process environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// NewViper returns a viper instance with defaults and env bindings installed.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, k := range keys {
		v.SetDefault(k.name, k.def)
		names := append([]string{k.name, EnvPrefix + "_" + strings.ToUpper(k.name)}, k.legacy...)
		_ = v.BindEnv(names...)
	}
	return v
}

// Load reads the optional config file into v, then unmarshals and validates.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.Addr == "" {
		c.Addr = ":" + v.GetString("port")
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks field constraints and reports the first few failures.
func Validate(c Config) error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), describe(fe)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
