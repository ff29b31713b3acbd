// SPDX-License-Identifier: MPL-2.0

// Package config handles jlm's user configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/jlm/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/jlm/config.cue on macOS, %APPDATA%\jlm\config.cue
// on Windows). Every key can be overridden by a JLM_-prefixed environment variable,
// for example JLM_HOME_DIR or JLM_UI_VERBOSE.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
