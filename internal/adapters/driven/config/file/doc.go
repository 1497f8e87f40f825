// Package file provides the file-based settings store.
// It reads and writes mirascope.toml, the per-project settings file at
// the project root.
package file
