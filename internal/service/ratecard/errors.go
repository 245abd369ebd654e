package ratecard

import "errors"

var (
	// ErrRateNotFound возвращается, когда для роли и длительности нет тарифа
	ErrRateNotFound = errors.New("ratecard: rate not found")

	// ErrNotLoaded возвращается, когда тарифы ещё ни разу не загружены и нет fallback
	ErrNotLoaded = errors.New("ratecard: rates are not loaded")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ratecard: internal error")
)
