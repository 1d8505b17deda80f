//go:build tools

// Package chatapp tracks code generators run through go generate so that they
// stay pinned in go.mod.
package chatapp

import (
	_ "go.uber.org/mock/mockgen"
)
