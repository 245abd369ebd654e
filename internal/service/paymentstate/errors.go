package paymentstate

import "errors"

var (
	// ErrCarryOverNotFound возвращается, когда для бронирования нет ожидающего платежа
	ErrCarryOverNotFound = errors.New("paymentstate: carry-over not found")

	// ErrInvalidKey возвращается для пустой ссылки на платёж
	ErrInvalidKey = errors.New("paymentstate: payment reference is required")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("paymentstate: internal error")
)
