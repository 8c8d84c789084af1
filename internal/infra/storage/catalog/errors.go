package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в тенанте
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrWorkerNotFound возвращается, когда работник не найден в тенанте
	ErrWorkerNotFound = errors.New("catalog.repository: worker not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
