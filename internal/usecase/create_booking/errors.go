package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCustomerNotFound возвращается, когда клиент не найден в тенанте
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrCustomerBlocked возвращается, когда клиент заблокирован тенантом
	ErrCustomerBlocked = errors.New("create_booking: customer is blocked")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = errors.New("create_booking: worker not found")

	// ErrWorkerInactive возвращается, когда работник деактивирован
	ErrWorkerInactive = errors.New("create_booking: worker is inactive")

	// ErrWorkerNotQualified возвращается, когда работник не оказывает услугу
	ErrWorkerNotQualified = errors.New("create_booking: worker is not qualified for this service")

	// ErrStartInPast возвращается, когда начало записи в прошлом
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrDurationMismatch возвращается, когда интервал не совпадает
	// с длительностью услуги с учетом допуска
	ErrDurationMismatch = errors.New("create_booking: duration does not match the service")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за
	// настроенные рабочие часы работника
	ErrOutsideWorkingHours = errors.New("create_booking: outside of worker working hours")

	// ErrTimeConflict возвращается, когда интервал пересекается с
	// активной записью работника
	ErrTimeConflict = errors.New("create_booking: time slot conflicts with an existing appointment")

	// ErrSessionFull возвращается, когда групповая сессия заполнена
	// и лист ожидания выключен
	ErrSessionFull = errors.New("create_booking: group session is full")

	// ErrAlreadyJoined возвращается, когда клиент уже участник сессии
	ErrAlreadyJoined = errors.New("create_booking: customer already joined this session")

	// ErrQuotaExceeded возвращается при исчерпанной месячной квоте бронирований
	ErrQuotaExceeded = errors.New("create_booking: monthly booking quota exceeded")

	// ErrSubscriptionInactive возвращается, когда подписка тенанта истекла
	ErrSubscriptionInactive = errors.New("create_booking: tenant subscription is not active")

	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// TimeConflictError несет идентификатор и интервал блокирующей записи
// Оборачивает ErrTimeConflict, поэтому проверки errors.Is продолжают работать
type TimeConflictError struct {
	AppointmentID int64
	StartAt       time.Time
	EndAt         time.Time
}

func (e *TimeConflictError) Error() string {
	return fmt.Sprintf("%v: appointment id=%d [%s - %s]",
		ErrTimeConflict, e.AppointmentID,
		e.StartAt.Format(domain.TimeFormat), e.EndAt.Format(domain.TimeFormat))
}

func (e *TimeConflictError) Unwrap() error {
	return ErrTimeConflict
}

// QuotaExceededError несет имя лимита, его значение и текущий счетчик
// Оборачивает ErrQuotaExceeded
type QuotaExceededError struct {
	LimitName string
	Limit     int
	Current   int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%v: %s %d/%d", ErrQuotaExceeded, e.LimitName, e.Current, e.Limit)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}
