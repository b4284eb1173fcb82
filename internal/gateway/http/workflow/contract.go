//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=workflow_test
package workflow

import (
	"context"
	"net/http"
)

type client interface {
	Do(req *http.Request) (*http.Response, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
