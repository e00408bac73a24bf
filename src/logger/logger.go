package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger = zerolog.Nop()
var logFile *os.File

// Settings controls where and how log lines are written.
type Settings struct {
	Level  string // zerolog level name, defaults to info
	Format string // "pretty" for console output, JSON otherwise
	File   string // optional file mirrored with stdout; "", "none" and "disabled" turn it off
}

// SettingsFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_FILE.
func SettingsFromEnv() Settings {
	return Settings{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		File:   os.Getenv("LOG_FILE"),
	}
}

func (s Settings) level() zerolog.Level {
	if s.Level == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (s Settings) fileEnabled() bool {
	return s.File != "" && s.File != "none" && s.File != "disabled"
}

// New builds a logger writing to out, plus the log file when one is set.
// The returned file is nil when no file is used.
func New(s Settings, out io.Writer) (zerolog.Logger, *os.File) {
	var writers []io.Writer
	if s.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, out)
	}

	var file *os.File
	if s.fileEnabled() {
		f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Error().Err(err).Str("log_file", s.File).Msg("Failed to open log file, using stdout only")
		} else {
			file = f
			writers = append(writers, f)
		}
	}

	l := zerolog.New(io.MultiWriter(writers...)).
		Level(s.level()).
		With().
		Timestamp().
		Logger()
	return l, file
}

// InitLogger configures the process logger from the environment.
func InitLogger() {
	s := SettingsFromEnv()
	zerolog.SetGlobalLevel(s.level())

	Logger, logFile = New(s, os.Stdout)
	log.Logger = Logger

	if logFile != nil {
		Logger.Info().
			Str("log_file", s.File).
			Str("log_level", s.level().String()).
			Msg("Logger initialized - writing to console and file")
	} else {
		Logger.Info().
			Str("log_level", s.level().String()).
			Msg("Logger initialized - writing to console only")
	}
}

func CloseLogger() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

func GetLogger() zerolog.Logger {
	return Logger
}

// Component returns the process logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
