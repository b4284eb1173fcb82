//go:build tools

// Package tools фиксирует версии утилит сборки: wire для DI, mockgen для
// contract_mocks_test.go, goose для миграций executions, hey для нагрузки
// на POST /workflows.
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "github.com/google/wire/cmd/wire"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/rakyll/hey"
	_ "github.com/wadey/gocovmerge"
	_ "go.uber.org/mock/mockgen"
	_ "mvdan.cc/gofumpt"
)
