package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/pkg/dbmetrics"
	"github.com/vkurop/MTA-SchedulingService/pkg/psqlbuilder"
	"github.com/vkurop/MTA-SchedulingService/pkg/types"
)

// Repository репозиторий каталога тенанта: услуги и работники
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID в рамках тенанта
func (r *Repository) GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"duration_minutes",
		"price",
		"active",
		"is_group_service",
		"max_capacity",
		"min_capacity",
		"allow_waitlist",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var maxCapacity, minCapacity sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.TenantID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.Active,
		&svc.IsGroupService,
		&maxCapacity,
		&minCapacity,
		&svc.AllowWaitlist,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	if maxCapacity.Valid {
		v := int(maxCapacity.Int64)
		svc.MaxCapacity = &v
	}
	if minCapacity.Valid {
		v := int(minCapacity.Int64)
		svc.MinCapacity = &v
	}
	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// CountServices подсчитывает все услуги тенанта независимо от флага active
func (r *Repository) CountServices(ctx context.Context, tenantID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountServices - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountServices - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetWorker получает работника по ID в рамках тенанта вместе с набором
// услуг, на которые он квалифицирован
func (r *Repository) GetWorker(ctx context.Context, tenantID, workerID int64) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"active",
		"work_start",
		"work_end",
		"created_at",
		"updated_at",
	).
		From("workers").
		Where(squirrel.Eq{"id": workerID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorker - build select query: %v", ErrBuildQuery, err)
	}

	var worker domain.Worker
	var workStart, workEnd sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&worker.ID,
		&worker.TenantID,
		&worker.Name,
		&worker.Active,
		&workStart,
		&workEnd,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorker - scan worker: %v", ErrScanRow, err)
	}

	// Часы работы опциональны; отсутствие любой из границ означает
	// отсутствие ограничения
	if workStart.Valid || workEnd.Valid {
		worker.WorkingHours = &domain.WorkingHours{
			Start: types.TimeString(workStart.String),
			End:   types.TimeString(workEnd.String),
		}
	}
	worker.CreatedAt = createdAt.Time
	worker.UpdatedAt = updatedAt.Time

	serviceIDs, err := r.getWorkerServiceIDs(ctx, workerID)
	if err != nil {
		return nil, err
	}
	worker.ServiceIDs = serviceIDs

	return &worker, nil
}

// CountActiveWorkers подсчитывает активных работников тенанта
func (r *Repository) CountActiveWorkers(ctx context.Context, tenantID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("workers").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveWorkers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveWorkers - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// getWorkerServiceIDs читает набор квалификаций работника
func (r *Repository) getWorkerServiceIDs(ctx context.Context, workerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id").
		From("worker_services").
		Where(squirrel.Eq{"worker_id": workerID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWorkerServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkerServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	serviceIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getWorkerServiceIDs - scan service_id: %v", ErrScanRow, err)
		}
		serviceIDs = append(serviceIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkerServiceIDs - rows error: %v", ErrScanRow, err)
	}

	return serviceIDs, nil
}
