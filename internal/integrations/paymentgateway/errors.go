package paymentgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")

	// ErrRejected возвращается, когда шлюз отклонил запрос на оплату
	ErrRejected = errors.New("paymentgateway client: payment request rejected")

	// ErrUnavailable возвращается, когда шлюз недоступен
	ErrUnavailable = errors.New("paymentgateway client: gateway unavailable")
)
