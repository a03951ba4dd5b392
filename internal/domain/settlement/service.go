package settlement

import "context"

type Service interface {
	Settle(ctx context.Context, p Params) (Result, error)
}
