// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration, used for both the project file
//     (transync.toml) and the user file (~/.transync/config.toml)
package file
