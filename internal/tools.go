//go:build tools

// Package tools pins test-only dependencies so they appear in go.mod.
package tools

import (
	_ "github.com/stretchr/testify/require"
	_ "pgregory.net/rapid"
)
