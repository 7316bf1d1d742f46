package intake

import "context"

// ServiceInterface defines the contract for the intake workflow
type ServiceInterface interface {
	Submit(ctx context.Context, sub Submission) (*Result, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
