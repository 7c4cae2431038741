// Package confloader provides the configuration loading mechanism.
//
// It is a thin layer over koanf that loads configuration from several
// sources into a typed struct, and an fsnotify based watcher that reports
// changes to the configuration file.
//
// Priority (highest to lowest):
//
//  1. Explicit maps (command-line flags)
//  2. Environment variables (KYOTO_SECTION_KEY)
//  3. YAML configuration file
//  4. Values already present in the target struct (defaults)
package confloader
