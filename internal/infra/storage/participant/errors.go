package participant

import "errors"

var (
	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("participant.repository: participant not found")

	// ErrDuplicateParticipant возвращается при попытке вставить второго
	// участника для пары (запись, клиент)
	ErrDuplicateParticipant = errors.New("participant.repository: participant already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("participant.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("participant.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("participant.repository: failed to scan row")
)
