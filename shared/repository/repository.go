package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/shared/constant"
	"lodge/shared/dto"
	"lodge/shared/logger"

	"github.com/jmoiron/sqlx"
)

// ErrRequiredFilter guards statements that would otherwise touch every row.
var ErrRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type namedPreparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Joiner is implemented by models whose rows are read across a join. Joined columns carry a table tag.
type Joiner interface {
	GetJoinQuery() string
}

// Repository maps T's db tags onto table. Columns tagged with another table are read but never written.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	insertQuery   string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(Joiner); ok {
		join = joiner.GetJoinQuery()
	}

	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		insertQuery:   fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", ")),
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, operation))
}

// fail records err on the span and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

func statement(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

func (repo *Repository[T]) exec(ctx context.Context, operation, action string, exec execer, query string, arg any) error {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, "Insert", "insert data", repo.db.Write, repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, "InsertTx", "insert data", sqltx, repo.insertQuery, model)
}

// InsertBulk writes all models in one multi-row statement. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, "InsertBulk", "bulk insert data", repo.db.Write, repo.insertQuery, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, "InsertBulkTx", "bulk insert data", sqltx, repo.insertQuery, models)
}

// queryOne runs a single-value read. No rows leaves dest untouched.
func (repo *Repository[T]) queryOne(ctx context.Context, scope otel.Scope, prep namedPreparer, action, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.GetContext(ctx, dest, args); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, ErrRequiredFilter
	}

	exist := false
	err := repo.queryOne(ctx, scope, repo.db.Read, "check exist data", fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where), args, &exist)

	return exist, err
}

func (repo *Repository[T]) get(ctx context.Context, operation string, prep namedPreparer, filter dto.FilterGroup, lock bool, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	lockClause := ""
	if lock {
		lockClause = "FOR UPDATE OF " + repo.table
	}

	query := statement("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where, lockClause)

	var model T
	err := repo.queryOne(ctx, scope, prep, "get data", query, args, &model)

	return model, err
}

// Get returns the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "Get", repo.db.Read, filter, false, columns...)
}

// GetTx reads through the open transaction so rows staged in it are visible.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "GetTx", sqltx, filter, false, columns...)
}

// GetForUpdateTx locks the matched row until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "GetForUpdateTx", sqltx, filter, true, columns...)
}

// GetAll pages through matches when params.Limit is set. SortBy must already be whitelisted.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	ordering := ""
	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	pagination := ""
	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := statement("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	query := statement(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primaryColumn, repo.table), repo.join, where)

	var count int
	err := repo.queryOne(ctx, scope, repo.db.Read, "count data", query, args, &count)

	return count, err
}

func (repo *Repository[T]) deleteQuery(filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return "", nil, ErrRequiredFilter
	}

	return statement("DELETE FROM", repo.table, where), args, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, "Delete", "delete data", repo.db.Write, query, args)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, "DeleteTx", "delete data", sqltx, query, args)
}

// updateQuery sets columns in a stable order. Values in mod shadow filter arguments of the same name.
func (repo *Repository[T]) updateQuery(mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return "", nil, ErrRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	return statement("UPDATE", repo.table, "SET", strings.Join(assignments, ", "), where), args, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, "Update", "update data", repo.db.Write, query, args)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, "UpdateTx", "update data", sqltx, query, args)
}

// selectList renders the projection, narrowed to only when given.
func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

// BuildWhereClause renders filter as a WHERE clause with named arguments. An empty filter yields "".
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// getColumns walks db tags, descending into embedded structs such as model.Metadata.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if alias := field.Tag.Get("column"); alias != "" {
			columns = append(columns, column{name: alias, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
