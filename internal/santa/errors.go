package santa

import "errors"

var (
	// ErrAttemptsLimitReached 在 MaxRetry 次重新洗牌后仍无法完成分配
	ErrAttemptsLimitReached = errors.New("failed to generate secret santa, please try to remove couples or add more people")
	ErrInvalidAssignment    = errors.New("invalid assignment")
)
