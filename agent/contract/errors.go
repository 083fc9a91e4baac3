package contract

import "errors"

var (
	ErrModelInvoke = errors.New("model invoke failed")
	ErrValidation  = errors.New("validation failed")
	ErrStoreQuery  = errors.New("store query failed")
	ErrPublish     = errors.New("publish failed")
	ErrCache       = errors.New("cache operation failed")
)
