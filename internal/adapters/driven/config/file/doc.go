// Package file provides file-based configuration and prompt storage:
// a TOML settings file and user-editable prompt templates under the
// mindfeed home directory.
package file
