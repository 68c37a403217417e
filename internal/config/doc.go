// Package config manages persisted user preferences for cliform.
//
// Preferences live in a YAML file under the platform configuration directory
// (for example ~/.config/cliform/config.yaml on Linux). The file is loaded
// lazily once per process and written atomically via a temp-file rename.
// Form state is deliberately not persisted here; preferences cover only the
// serve endpoint, logging, and execution tuning.
package config
