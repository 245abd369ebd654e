package entitlement

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден у пользователя
	ErrPackageNotFound = errors.New("entitlement.repository: package pass not found")

	// ErrPromoNotFound возвращается, когда промокод не найден
	ErrPromoNotFound = errors.New("entitlement.repository: promo code not found")

	// ErrCreditNotFound возвращается, когда кредит не найден у пользователя
	ErrCreditNotFound = errors.New("entitlement.repository: store credit not found")

	// ErrExhausted возвращается, когда entitlement израсходован к моменту списания
	ErrExhausted = errors.New("entitlement.repository: entitlement is exhausted or expired")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("entitlement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("entitlement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("entitlement.repository: failed to scan row")
)
