package join_group

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("join_group: invalid input data")

	// ErrCustomerNotFound возвращается, когда клиент не найден в тенанте
	ErrCustomerNotFound = errors.New("join_group: customer not found")

	// ErrCustomerBlocked возвращается, когда клиент заблокирован тенантом
	ErrCustomerBlocked = errors.New("join_group: customer is blocked")

	// ErrAppointmentNotFound возвращается, когда сессия не найдена
	ErrAppointmentNotFound = errors.New("join_group: appointment not found")

	// ErrNotGroupAppointment возвращается для одиночной записи
	ErrNotGroupAppointment = errors.New("join_group: appointment is not a group session")

	// ErrAlreadyJoined возвращается, когда клиент уже участник сессии
	ErrAlreadyJoined = errors.New("join_group: customer already joined this session")

	// ErrSessionFull возвращается, когда сессия заполнена без листа ожидания
	ErrSessionFull = errors.New("join_group: group session is full")

	// ErrSessionCancelled возвращается при попытке вступить в отмененную сессию
	ErrSessionCancelled = errors.New("join_group: group session is cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_group: internal error")
)
