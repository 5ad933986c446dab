package gateway

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ReadOptions holds the optional arguments of ReadRecords.
type ReadOptions struct {
	Conditions Fields
	Limit      *int64
	Offset     *int64
}

// statementBuilder uses '?' placeholders, which is what SQLite expects.
var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// whereParts turns conditions into "col=?" predicates joined with AND.
func whereParts(conditions Fields) []sq.Sqlizer {
	parts := make([]sq.Sqlizer, len(conditions))
	for i, c := range conditions {
		parts[i] = sq.Expr(fmt.Sprintf("%s=?", quoteIdent(c.Column)), c.Value)
	}
	return parts
}

// buildInsert builds INSERT INTO <table> (<cols>) VALUES (<placeholders>).
// Names must already be resolved against the catalog.
func buildInsert(table string, values Fields) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, invalidArgumentf("at least one column value is required")
	}

	cols := make([]string, len(values))
	for i, f := range values {
		cols[i] = quoteIdent(f.Column)
	}

	return statementBuilder.
		Insert(quoteIdent(table)).
		Columns(cols...).
		Values(values.Values()...).
		ToSql()
}

// buildSelect builds SELECT * FROM <table> with optional conditions,
// limit and offset. The offset is only emitted together with a limit.
func buildSelect(table string, opts ReadOptions) (string, []any, error) {
	query := statementBuilder.Select("*").From(quoteIdent(table))
	for _, part := range whereParts(opts.Conditions) {
		query = query.Where(part)
	}

	if opts.Limit != nil {
		if *opts.Limit < 0 {
			return "", nil, invalidArgumentf("limit must not be negative")
		}
		query = query.Limit(uint64(*opts.Limit))

		if opts.Offset != nil {
			if *opts.Offset < 0 {
				return "", nil, invalidArgumentf("offset must not be negative")
			}
			query = query.Offset(uint64(*opts.Offset))
		}
	}

	return query.ToSql()
}

// buildUpdate builds UPDATE <table> SET col = ?, ... WHERE cond=? AND ...
// binding the values before the conditions.
func buildUpdate(table string, values, conditions Fields) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, invalidArgumentf("at least one column value is required")
	}
	if len(conditions) == 0 {
		return "", nil, invalidArgumentf("at least one condition is required")
	}

	query := statementBuilder.Update(quoteIdent(table))
	for _, f := range values {
		query = query.Set(quoteIdent(f.Column), f.Value)
	}
	for _, part := range whereParts(conditions) {
		query = query.Where(part)
	}

	return query.ToSql()
}

// buildDelete builds DELETE FROM <table> WHERE cond=? AND ...
func buildDelete(table string, conditions Fields) (string, []any, error) {
	if len(conditions) == 0 {
		return "", nil, invalidArgumentf("at least one condition is required")
	}

	query := statementBuilder.Delete(quoteIdent(table))
	for _, part := range whereParts(conditions) {
		query = query.Where(part)
	}

	return query.ToSql()
}
