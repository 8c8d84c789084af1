package conflicts

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном интервале проверки
	ErrInvalidRange = errors.New("conflicts service: invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts service: internal error")
)
