package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в тенанте
	ErrAppointmentNotFound = errors.New("appointments service: appointment not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("appointments service: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)
