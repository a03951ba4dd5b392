package settlement

import "errors"

var (
	ErrOperatorNotFound = errors.New("operator not found in settlement scope")
)
