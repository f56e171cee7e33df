package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"bayleaf/infras/otel"
	"bayleaf/infras/postgres"
	"bayleaf/shared/constant"
	"bayleaf/shared/dto"
	"bayleaf/shared/failure"
	"bayleaf/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errUnknownColumn  = errors.New("unknown column")
)

type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := getColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		InsertColumns: columns,
	}
}

// Available reports whether a table store handle is present.
func (repo *Repository[T]) Available() bool {
	return repo.db != nil && repo.db.Write != nil && repo.db.Read != nil
}

func (repo *Repository[T]) unavailable() error {
	return failure.ServiceUnavailable("table store is not configured") //nolint:wrapcheck
}

func (repo *Repository[T]) spanName(operation string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation)
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Insert"))
	defer scope.End()

	if !repo.Available() {
		return repo.unavailable()
	}

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, ConstraintError(repo.entity, err))
	}

	return nil
}

// InsertReturning inserts the row and returns it as stored.
func (repo *Repository[T]) InsertReturning(ctx context.Context, model T) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertReturning"))
	defer scope.End()

	var stored T

	if !repo.Available() {
		return stored, repo.unavailable()
	}

	query := fmt.Sprintf("%s RETURNING %s", repo.insertQuery(), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var key string

	err := repo.namedGet(ctx, repo.db.Write, query, model, &key)
	if err == nil {
		stored, err = repo.getByKey(ctx, key)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stored, fmt.Errorf("failed to insert data (%s): %w", repo.entity, ConstraintError(repo.entity, err))
	}

	return stored, nil
}

// InsertIgnoreConflict inserts the row unless conflictColumn already holds its value.
// The returned bool is false when the row was left untouched.
func (repo *Repository[T]) InsertIgnoreConflict(ctx context.Context, model T, conflictColumn string) (T, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertIgnoreConflict"))
	defer scope.End()

	var stored T

	if !repo.Available() {
		return stored, false, repo.unavailable()
	}

	if !slices.Contains(repo.columns, conflictColumn) {
		return stored, false, fmt.Errorf("%w: %s", errUnknownColumn, conflictColumn)
	}

	query := fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING RETURNING %s", repo.insertQuery(), conflictColumn, repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var key string

	err := repo.namedGet(ctx, repo.db.Write, query, model, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return stored, false, nil
	}

	if err == nil {
		stored, err = repo.getByKey(ctx, key)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stored, false, fmt.Errorf("failed to insert data (%s): %w", repo.entity, ConstraintError(repo.entity, err))
	}

	return stored, true, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Exist"))
	defer scope.End()

	if !repo.Available() {
		return false, repo.unavailable()
	}

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	err := repo.namedGet(ctx, repo.db.Read, query, args, &exist)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entity, err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()

	var model T

	if !repo.Available() {
		return model, repo.unavailable()
	}

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", repo.selectColumns(), repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err := repo.namedGet(ctx, repo.db.Read, query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return model, nil
}

// GetAll selects matching rows. SortBy must name a known column, anything else is ignored.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()

	models := []T{}

	if !repo.Available() {
		return models, repo.unavailable()
	}

	where, args := repo.BuildWhereClause(filter)

	var ordering, pagination string

	page := min(params.Page, constant.MaxValuePage)
	limit := params.Limit

	if page > 0 && limit > 0 {
		args["limit"] = limit
		args["offset"] = (page - 1) * limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 {
		args["limit"] = limit

		pagination = "LIMIT :limit"
	}

	if slices.Contains(repo.columns, params.SortBy) {
		dir := dto.SortDirAsc
		if strings.EqualFold(params.SortDir, dto.SortDirDesc) {
			dir = dto.SortDirDesc
		}

		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, dir)
		if params.SortBy != repo.primaryColumn {
			ordering += ", " + repo.primaryColumn + " " + dir
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.selectColumns(), repo.table, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Count"))
	defer scope.End()

	if !repo.Available() {
		return 0, repo.unavailable()
	}

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s %s", repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.namedGet(ctx, repo.db.Read, query, args, &count)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, err)
	}

	return count, nil
}

// Delete removes matching rows and returns how many were removed.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Delete"))
	defer scope.End()

	if !repo.Available() {
		return 0, repo.unavailable()
	}

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows (%s): %w", repo.entity, err)
	}

	return affected, nil
}

func (repo *Repository[T]) updateQuery(mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	keys := slices.Collect(maps.Keys(mod))
	sort.Strings(keys)

	updateField := make([]string, 0, len(keys))

	for _, col := range keys {
		if !slices.Contains(repo.columns, col) {
			return "", nil, fmt.Errorf("%w: %s", errUnknownColumn, col)
		}

		updateField = append(updateField, fmt.Sprintf("%s = :set_%s", col, col))
		args["set_"+col] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(updateField, ", "), where), args, nil
}

// Update applies column values from mod to every matching row.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Update"))
	defer scope.End()

	if !repo.Available() {
		return repo.unavailable()
	}

	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, ConstraintError(repo.entity, err))
	}

	return nil
}

// UpdateReturning updates matching rows and returns the first one, or the zero value when
// nothing matched.
func (repo *Repository[T]) UpdateReturning(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("UpdateReturning"))
	defer scope.End()

	var updated T

	if !repo.Available() {
		return updated, repo.unavailable()
	}

	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return updated, err
	}

	query = fmt.Sprintf("%s RETURNING %s", query, repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var key string

	err = repo.namedGet(ctx, repo.db.Write, query, args, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return updated, nil
	}

	if err == nil {
		updated, err = repo.getByKey(ctx, key)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return updated, fmt.Errorf("failed to update data (%s): %w", repo.entity, ConstraintError(repo.entity, err))
	}

	return updated, nil
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf("WHERE %s", where), args
}

// getByKey reads through the write pool.
func (repo *Repository[T]) getByKey(ctx context.Context, key string) (T, error) {
	var model T

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = :key", repo.selectColumns(), repo.table, repo.primaryColumn)

	err := repo.namedGet(ctx, repo.db.Write, query, map[string]any{"key": key}, &model)
	if err != nil {
		return model, fmt.Errorf("failed to read back data (%s): %w", repo.entity, err)
	}

	return model, nil
}

func (repo *Repository[T]) namedGet(ctx context.Context, db *sqlx.DB, query string, arg, dest any) error {
	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, arg) //nolint:wrapcheck
}

func (repo *Repository[T]) selectColumns() string {
	return strings.Join(repo.columns, ", ")
}

func getColumns(reflectType reflect.Type) []string {
	columns := []string{}

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		columns = append(columns, dbTag)
	}

	return columns
}
