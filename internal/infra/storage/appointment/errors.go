package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда уникальный индекс занятости работника
	// отклонил вставку (параллельный запрос успел занять слот)
	ErrSlotTaken = errors.New("appointment.repository: worker slot already taken")

	// ErrSessionFull возвращается, когда условный инкремент участников
	// не прошел проверку вместимости
	ErrSessionFull = errors.New("appointment.repository: group session is full")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
