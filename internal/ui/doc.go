// Package ui contains the bubbletea models behind the interactive prompts:
// a single-choice picker, a yes/no confirmation, and a free-text input.
package ui
