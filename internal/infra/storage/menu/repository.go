package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/dbmetrics"
	"github.com/piste-boss/piste-reserve/pkg/psqlbuilder"
)

// Repository репозиторий для работы с меню услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает меню по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"label",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.ServiceMenu
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Label,
		&m.DurationMinutes,
		&m.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan menu: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

// List получает все меню, по умолчанию только активные
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"label",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("menus").
		OrderBy("label ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	menus := make([]*domain.ServiceMenu, 0)
	for rows.Next() {
		var m domain.ServiceMenu
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&m.ID, &m.Label, &m.DurationMinutes, &m.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time
		menus = append(menus, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}

// Upsert создает или обновляет меню по идентификатору
func (r *Repository) Upsert(ctx context.Context, m *domain.ServiceMenu) (*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("menus").
		Columns("id", "label", "duration_minutes", "active").
		Values(m.ID, m.Label, m.DurationMinutes, m.Active).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"label = EXCLUDED.label, " +
			"duration_minutes = EXCLUDED.duration_minutes, " +
			"active = EXCLUDED.active, " +
			"updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute query: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}
