package groups

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("groups: appointment not found")

	// ErrNoSession возвращается, когда подходящей групповой сессии нет
	ErrNoSession = errors.New("groups: no joinable group session")

	// ErrNotGroupAppointment возвращается, когда запись не является групповой
	ErrNotGroupAppointment = errors.New("groups: appointment is not a group session")

	// ErrAlreadyJoined возвращается, когда клиент уже является участником
	ErrAlreadyJoined = errors.New("groups: customer already joined")

	// ErrSessionFull возвращается, когда мест нет и лист ожидания выключен
	ErrSessionFull = errors.New("groups: group session is full")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("groups: participant not found")

	// ErrSessionCancelled возвращается при попытке вступить в отмененную сессию
	ErrSessionCancelled = errors.New("groups: group session is cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("groups: internal error")
)
