package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

// PostgresStore is the durable counterpart of InMemStore. Validation and error
// semantics match: same ValidationError before any write, NotFoundError on
// unknown ids. The seq column is a bigserial so insertion order survives.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(config config) (*PostgresStore, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStore{db}, nil
}

func (s *PostgresStore) Create(ctx context.Context, fields expense.Fields) (expense.Record, error) {
	amount, category, date, err := parseFields(fields)
	if err != nil {
		return expense.Record{}, err
	}

	rec := expense.Record{
		ID:       uuid.NewString(),
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    fields.Notes,
	}

	query := psql.Insert("expenses").
		Columns("id", "amount", "category", "expense_date", "notes").
		Values(rec.ID, rec.Amount, string(rec.Category), rec.Date, rec.Notes).
		Suffix("RETURNING seq")

	err = query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.Seq)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "create expense")
	}
	return rec, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, fields expense.Fields) (expense.Record, error) {
	amount, category, date, err := parseFields(fields)
	if err != nil {
		return expense.Record{}, err
	}

	rec := expense.Record{
		ID:       id,
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    fields.Notes,
	}

	query := psql.Update("expenses").
		Set("amount", rec.Amount).
		Set("category", string(rec.Category)).
		Set("expense_date", rec.Date).
		Set("notes", rec.Notes).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING seq")

	err = query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, &customerr.NotFoundError{ID: id}
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	query := psql.Delete("expenses").Where(sq.Eq{"id": id})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	if affected == 0 {
		return &customerr.NotFoundError{ID: id}
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]expense.Record, error) {
	query := psql.Select("id", "amount", "category", "expense_date", "notes", "seq").
		From("expenses")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}
	defer func() {
		if rowErr := rows.Close(); rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	exps := make([]expense.Record, 0)
	for rows.Next() {
		var rec expense.Record
		var category string
		err = rows.Scan(&rec.ID, &rec.Amount, &category, &rec.Date, &rec.Notes, &rec.Seq)
		if err != nil {
			return nil, errors.Wrap(err, "get expenses")
		}
		rec.Category = expense.Category(category)
		rec.Date = expense.Day(rec.Date)
		exps = append(exps, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}

	return exps, nil
}
