//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cancellation_test
package cancellation

import "context"

type WorkflowGateway interface {
	CancelWorkflow(ctx context.Context, workflowID, reason string) error
}
