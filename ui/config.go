package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

type Config struct {
	// the substring or RE2 expression to look for,
	// see https://github.com/google/re2/wiki/Syntax for the regexp flavor
	Pattern string `validate:"required" yaml:"Pattern"`
	// the root of the directory tree to scan (relative to cwd supported)
	Root string `validate:"required,path_exists" yaml:"Root"`
	// how many concurrent scan workers to run.
	// defaults to the number of cores if omitted or 0.
	Workers int `yaml:"Workers"`
	// interpret the pattern as a regular expression instead of a literal
	Regexp bool `yaml:"Regexp"`
	// disable ANSI colors on the match output
	NoColor bool `yaml:"NoColor"`
	// surface lifecycle logging (worker counts, timings) on stderr
	Verbose bool `yaml:"Verbose"`
}

var DefaultCfg = Config{
	Root: ".",
}

// LoadConfig reads the optional config file ("mtfks" in the cwd).
// A missing file is fine, the defaults apply; a present but unreadable
// file is an error.
func LoadConfig(loadFile bool) (Config, error) {
	cfg := DefaultCfg

	viper.AddConfigPath(".")
	viper.SetConfigName("mtfks")
	if loadFile {
		err := viper.ReadInConfig()
		if err == nil {
			err = viper.Unmarshal(&cfg)
			if err != nil {
				return cfg, xerrors.Errorf("unable to decode into config struct: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, xerrors.Errorf("unable to use config file: %w", err)
			}
		}
	}

	return cfg, nil
}

// Validate rejects broken configs before any worker starts: missing values,
// a nonexistent root, or a pattern that does not compile in regexp mode.
func (cfg Config) Validate() error {
	translateError := func(e validator.FieldError) string {
		switch e.ActualTag() {
		case "path_exists":
			return fmt.Sprintf("path %q does not exist", e.Value())
		case "required":
			return "value is empty"
		default:
			return fmt.Sprintf("invalid value (%s)", e.Tag())
		}
	}

	cfgValidate := validator.New()
	err := cfgValidate.RegisterValidation("path_exists", func(fl validator.FieldLevel) bool {
		path := fl.Field().String()
		if !filepath.IsAbs(path) {
			cwd, _ := os.Getwd()
			path = filepath.Join(cwd, path)
		}
		_, err := os.Stat(path)
		return err == nil
	})
	if err != nil {
		return err
	}

	err = cfgValidate.Struct(cfg)
	if err != nil {
		message := "invalid config values:\n"
		for _, fieldErr := range err.(validator.ValidationErrors) {
			message += fmt.Sprintf("> %v: %s\n", fieldErr.StructField(), translateError(fieldErr))
		}
		return xerrors.New(message)
	}

	if cfg.Regexp {
		_, err = regexp.Compile(cfg.Pattern)
		if err != nil {
			return xerrors.Errorf("invalid regular expression %q: %w", cfg.Pattern, err)
		}
	}

	return nil
}
