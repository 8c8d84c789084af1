package plan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/pkg/dbmetrics"
	"github.com/vkurop/MTA-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий подписок и лимитов тарифных планов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPlanContext материализует контекст плана тенанта: код плана,
// числовые лимиты, фичи и признак активной подписки
// Отсутствующий в таблице лимит трактуется как безлимит на уровне
// domain.PlanContext
func (r *Repository) GetPlanContext(ctx context.Context, tenantID int64) (*domain.PlanContext, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"plan_code",
		"subscription_expires_at IS NULL OR subscription_expires_at > NOW()",
	).
		From("tenants").
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPlanContext - build tenant query: %v", ErrBuildQuery, err)
	}

	planCtx := &domain.PlanContext{
		TenantID: tenantID,
		Limits:   make(map[string]int),
		Toggles:  make(map[string]bool),
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&planCtx.PlanCode,
		&planCtx.SubscriptionActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlanContext - scan tenant: %v", ErrScanRow, err)
	}

	if err := r.loadFeatures(ctx, planCtx); err != nil {
		return nil, err
	}

	return planCtx, nil
}

// loadFeatures читает числовые лимиты и фичи плана
func (r *Repository) loadFeatures(ctx context.Context, planCtx *domain.PlanContext) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name", "limit_value", "enabled").
		From("plan_features").
		Where(squirrel.Eq{"plan_code": planCtx.PlanCode}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadFeatures - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadFeatures - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var limitValue sql.NullInt64
		var enabled sql.NullBool

		if err := rows.Scan(&name, &limitValue, &enabled); err != nil {
			return fmt.Errorf("%w: loadFeatures - scan feature: %v", ErrScanRow, err)
		}

		if limitValue.Valid {
			planCtx.Limits[name] = int(limitValue.Int64)
		}
		if enabled.Valid {
			planCtx.Toggles[name] = enabled.Bool
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadFeatures - rows error: %v", ErrScanRow, err)
	}

	return nil
}
