package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// ErrEmpty is returned by Random when the corpus has no rows.
var ErrEmpty = errors.New("corpus is empty")

// Row is one annotated sentence.
type Row struct {
	ID       int64
	Sentence string
	Labels   []string
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Replace swaps the whole corpus for rows in one transaction.
func (s *Store) Replace(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(sentencesTable).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}

	for i, r := range rows {
		labels := r.Labels
		if labels == nil {
			labels = []string{}
		}
		raw, err := json.Marshal(labels)
		if err != nil {
			return fmt.Errorf("row %d: marshal labels: %w", i, err)
		}
		query, args := builder().Insert(sentencesTable).
			Columns("sentence", "labels").
			Values(r.Sentence, string(raw)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("row %d: insert: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Random returns one row chosen uniformly at random, or ErrEmpty.
func (s *Store) Random(ctx context.Context) (Row, error) {
	query, args := builder().
		Select("id", "sentence", "labels").
		From(entsql.Table(sentencesTable)).
		OrderExpr(entsql.Expr("RANDOM()")).
		Limit(1).
		Query()

	var (
		r   Row
		raw string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&r.ID, &r.Sentence, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, ErrEmpty
	}
	if err != nil {
		return Row{}, fmt.Errorf("query random sentence: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &r.Labels); err != nil {
		return Row{}, fmt.Errorf("sentence %d: decode labels: %w", r.ID, err)
	}
	if r.Labels == nil {
		r.Labels = []string{}
	}
	return r, nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(sentencesTable)).
		Query()

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sentences: %w", err)
	}
	return n, nil
}
