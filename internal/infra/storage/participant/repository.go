package participant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/pkg/dbmetrics"
	"github.com/vkurop/MTA-SchedulingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var participantColumns = []string{
	"id",
	"appointment_id",
	"customer_id",
	"status",
	"joined_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с участниками групповых записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert вставляет нового участника
// Уникальный индекс (appointment_id, customer_id) гарантирует не более
// одной строки на пару; повторная вставка транслируется в
// ErrDuplicateParticipant
func (r *Repository) Insert(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("participants").
		Columns("appointment_id", "customer_id", "status", "joined_at").
		Values(p.AppointmentID, p.CustomerID, p.Status, squirrel.Expr("NOW()")).
		Suffix("RETURNING id, joined_at, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.JoinedAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateParticipant
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByAppointmentAndCustomer получает строку участника для пары
// (запись, клиент) независимо от статуса
func (r *Repository) GetByAppointmentAndCustomer(ctx context.Context, appointmentID, customerID int64) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(participantColumns...).
		From("participants").
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"customer_id":    customerID,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentAndCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByAppointmentAndCustomer")
}

// Revive возвращает отмененного участника в игру: обновляет статус и
// время вступления вместо вставки дубликата
func (r *Repository) Revive(ctx context.Context, id int64, status domain.ParticipantStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("participants").
		Set("status", status).
		Set("joined_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Revive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Revive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Revive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// SetStatus обновляет статус участника (используется при продвижении
// из листа ожидания)
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.ParticipantStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("participants").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// Delete удаляет строку участника
func (r *Repository) Delete(ctx context.Context, appointmentID, customerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("participants").
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"customer_id":    customerID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// EarliestWaitlisted возвращает участника листа ожидания с самым ранним
// временем вступления (FIFO продвижение)
func (r *Repository) EarliestWaitlisted(ctx context.Context, appointmentID int64) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(participantColumns...).
		From("participants").
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"status":         string(domain.ParticipantWaitlist),
		}).
		OrderBy("joined_at ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EarliestWaitlisted - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "EarliestWaitlisted")
}

// ListByAppointment возвращает всех участников записи
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(participantColumns...).
		From("participants").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("joined_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - rows error: %v", ErrScanRow, err)
	}

	return participants, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Participant, error) {
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
	}
	return p, nil
}

func scanParticipant(row rowScanner) (*domain.Participant, error) {
	var p domain.Participant
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.AppointmentID,
		&p.CustomerID,
		&p.Status,
		&p.JoinedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
