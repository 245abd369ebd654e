package userservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля участника
	ErrProfileNotFound = errors.New("userservice client: member profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
