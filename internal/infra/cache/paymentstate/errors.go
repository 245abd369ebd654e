package paymentstate

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации carry-over
	ErrMarshal = errors.New("paymentstate.cache: failed to marshal value")

	// ErrRedis возвращается при ошибке обращения к redis
	ErrRedis = errors.New("paymentstate.cache: redis error")
)
