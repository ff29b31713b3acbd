// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"jlm-cli/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultExecutable is the julia command searched on $PATH.
	DefaultExecutable = "julia"
	// DefaultJupyter is the jupyter command used to locate kernel directories.
	DefaultJupyter = "jupyter"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCommandName is returned when a configured command is whitespace-only.
	ErrInvalidCommandName = errors.New("invalid command name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// CommandName is an executable name or path, looked up on $PATH when it
	// has no directory component.
	CommandName string

	// InvalidCommandNameError is returned when a CommandName is empty or
	// whitespace-only.
	InvalidCommandNameError struct {
		Field string
		Value CommandName
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidLoadOptionsError is returned when LoadOptions has invalid paths.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}

	// Config holds the user configuration.
	Config struct {
		// HomeDir overrides the home store root. Empty means ~/.julia/jlm.
		HomeDir types.FilesystemPath `json:"home_dir" mapstructure:"home_dir"`
		// DefaultExecutable is the julia command used when neither --julia
		// nor a project default is set.
		DefaultExecutable CommandName `json:"default_executable" mapstructure:"default_executable"`
		// Jupyter is the jupyter command.
		Jupyter CommandName `json:"jupyter" mapstructure:"jupyter"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables info-level logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the glamour style for issue guidance
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the CommandName.
func (c CommandName) String() string { return string(c) }

// Error implements the error interface for InvalidCommandNameError.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be non-empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }

func validateCommand(field string, c CommandName) []error {
	if strings.TrimSpace(string(c)) == "" {
		return []error{&InvalidCommandNameError{Field: field, Value: c}}
	}
	return nil
}

// IsValid returns whether the Config has valid fields. HomeDir may be empty;
// commands may not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.HomeDir != "" {
		if valid, fieldErrs := c.HomeDir.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	errs = append(errs, validateCommand("default_executable", c.DefaultExecutable)...)
	errs = append(errs, validateCommand("jupyter", c.Jupyter)...)
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HomeDir:           "", // ~/.julia/jlm
		DefaultExecutable: DefaultExecutable,
		Jupyter:           DefaultJupyter,
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
