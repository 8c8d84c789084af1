package customerservice

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден в тенанте
	ErrCustomerNotFound = errors.New("customerservice client: customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")
)
