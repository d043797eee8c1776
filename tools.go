//go:build tools

// Package tools pins the development binaries used by this repository:
// golangci-lint for linting, goose for run history migrations, swag for the
// serve mode API docs, mockery for repository mocks and benchstat for
// comparing sync benchmarks.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
