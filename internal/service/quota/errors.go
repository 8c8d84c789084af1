package quota

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("quota: tenant not found")

	// ErrUnknownLimit возвращается для неизвестного имени лимита,
	// когда текущее значение счетчика не передано вызывающим
	ErrUnknownLimit = errors.New("quota: unknown limit name")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("quota: internal error")
)
