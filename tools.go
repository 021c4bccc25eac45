//go:build tools

// Package tools pins the code generators used by go generate, so mockgen
// resolves to the version recorded in go.mod.
package chat_rooms

import (
	_ "go.uber.org/mock/mockgen"
)
