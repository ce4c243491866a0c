package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/umputun/go-flags"
)

// Options holds every runtime setting. Each option can come from a command
// line flag or its environment variable.
type Options struct {
	Port     string `short:"p" long:"port" env:"CHOREBOARD_PORT" default:"8080" description:"HTTP listen port"`
	DBPath   string `long:"db" env:"CHOREBOARD_DB_PATH" default:"choreboard.db" description:"SQLite database path"`
	LogLevel string `long:"log-level" env:"CHOREBOARD_LOG_LEVEL" default:"info" description:"debug, info, warn or error"`

	LogFile struct {
		Path       string `long:"path" env:"PATH" description:"rotate logs into this file in addition to stderr"`
		MaxSizeMB  int    `long:"max-size" env:"MAX_SIZE" default:"50" description:"max log file size in MB"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"5" description:"rotated files to keep"`
		MaxAgeDays int    `long:"max-age" env:"MAX_AGE" default:"30" description:"days to keep rotated files"`
		Compress   bool   `long:"compress" env:"COMPRESS" description:"gzip rotated files"`
	} `group:"log-file" namespace:"log-file" env-namespace:"CHOREBOARD_LOG_FILE"`

	AdminPasswordHash string  `long:"admin-password-hash" env:"CHOREBOARD_ADMIN_PASSWORD_HASH" description:"bcrypt hash enabling the admin routes"`
	BoardRate         float64 `long:"board-rate" env:"CHOREBOARD_BOARD_RATE" default:"1" description:"board creations per second per client, 0 disables the limit"`
}

// Load reads envFile (missing files are ignored) into the environment and
// then parses args. Variables already set in the environment win over the file.
func Load(envFile string, args []string) (*Options, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return nil, err
	}
	if opts.BoardRate < 0 {
		return nil, fmt.Errorf("board-rate must not be negative, got %v", opts.BoardRate)
	}
	return &opts, nil
}
