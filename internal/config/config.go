// Reads settings from the environment, after loading an optional .env file.
//
// Every setting here only seeds the default of a command-line flag.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	OutputDirEnv = "GIT_CONTRIB_OUTPUT_DIR"
	FormatEnv    = "GIT_CONTRIB_FORMAT"
	BackendEnv   = "GIT_CONTRIB_BACKEND"
	NoCacheEnv   = "GIT_CONTRIB_NO_CACHE"
	CacheDirEnv  = "GIT_CONTRIB_CACHE_DIR"
	JobsEnv      = "GIT_CONTRIB_JOBS"
	LogLevelEnv  = "GIT_CONTRIB_LOG_LEVEL"
)

type Config struct {
	OutputDir string
	Format    string
	Backend   string
	NoCache   bool
	CacheDir  string
	Jobs      int
	LogLevel  slog.Level
}

func Default() Config {
	return Config{
		OutputDir: ".",
		Format:    "csv",
		Backend:   "native",
		Jobs:      runtime.GOMAXPROCS(0),
		LogLevel:  slog.LevelInfo,
	}
}

// Loads .env from the working directory if there is one. Variables already
// set in the environment take precedence over the file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env: %w", err)
	}

	return FromEnv()
}

func FromEnv() (_ Config, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error reading configuration: %w", err)
		}
	}()

	cfg := Default()

	if v, ok := lookup(OutputDirEnv); ok {
		cfg.OutputDir = v
	}
	if v, ok := lookup(FormatEnv); ok {
		cfg.Format = strings.ToLower(v)
	}
	if v, ok := lookup(BackendEnv); ok {
		cfg.Backend = strings.ToLower(v)
	}

	if v, ok := lookup(NoCacheEnv); ok {
		cfg.NoCache, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", NoCacheEnv, err)
		}
	}

	if v, ok := lookup(JobsEnv); ok {
		cfg.Jobs, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", JobsEnv, err)
		}
	}

	if v, ok := lookup(LogLevelEnv); ok {
		err = cfg.LogLevel.UnmarshalText([]byte(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", LogLevelEnv, err)
		}
	}

	if v, ok := lookup(CacheDirEnv); ok {
		cfg.CacheDir = v
	} else {
		userCache, err := os.UserCacheDir()
		if err == nil {
			cfg.CacheDir = filepath.Join(userCache, "git-contrib")
		} else {
			// Caching is skipped when CacheDir is empty
			cfg.CacheDir = ""
		}
	}

	return cfg, nil
}

// Blank values count as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
