package transaction

import "errors"

var (
	ErrRecordNotFound = errors.New("transaction record not found")
)
