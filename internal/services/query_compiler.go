package services

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

// QueryCompiler turns a classified selection into SELECT text. Every
// identifier is checked against the catalog before it is quoted.
type QueryCompiler struct {
	dialect database.Dialect
	logger  *zap.Logger
}

func NewQueryCompiler(dialect database.Dialect, logger *zap.Logger) *QueryCompiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryCompiler{dialect: dialect, logger: logger}
}

// Compile emits the query shape for pattern. Patterns without a dedicated
// shape use the plain not-null select.
func (c *QueryCompiler) Compile(snap *catalog.Snapshot, pattern models.Pattern, sel *Selection) (string, error) {
	if err := c.validate(snap, sel); err != nil {
		return "", err
	}

	var builder sq.SelectBuilder
	switch pattern {
	case models.PatternBasic:
		builder = c.basic(sel)
	case models.PatternWeak:
		builder = c.weak(sel)
	case models.PatternOneMany:
		builder = c.oneMany(sel)
	default:
		builder = c.regular(sel)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build %s query: %w", pattern, err)
	}

	c.logger.Debug("Compiled visualisation query",
		zap.String("dialect", c.dialect.Name()),
		zap.String("pattern", string(pattern)),
		zap.String("table", sel.Table.TableName),
		zap.String("query", query),
	)
	return query, nil
}

func (c *QueryCompiler) validate(snap *catalog.Snapshot, sel *Selection) error {
	if sel == nil || len(sel.Columns) == 0 {
		return &apperrors.SelectionError{Reason: "no columns selected"}
	}
	table, ok := snap.Table(sel.Table.TableName)
	if !ok {
		return &apperrors.SelectionError{Reason: "unknown tables", Unresolved: []string{sel.Table.TableName}}
	}

	var unknown []string
	for _, col := range sel.Columns {
		if col.TableName != table.TableName {
			unknown = append(unknown, col.QualifiedName())
			continue
		}
		if _, ok := table.Column(col.Name); !ok {
			unknown = append(unknown, col.QualifiedName())
		}
	}
	if len(unknown) > 0 {
		return &apperrors.SelectionError{Reason: "unknown columns", Unresolved: unknown}
	}
	return nil
}

func (c *QueryCompiler) quote(name string) string {
	return c.dialect.QuoteIdentifier(name)
}

func (c *QueryCompiler) quoteAll(cols []models.Column) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = c.quote(col.Name)
	}
	return out
}

// compositeLabel concatenates cols and aliases the result with the same
// " | " joined text used for option keys.
func (c *QueryCompiler) compositeLabel(cols []models.Column) string {
	alias := strings.Join(columnNames(cols), database.LabelSeparator)
	return c.dialect.ConcatLabel(c.quoteAll(cols)) + " AS " + c.quote(alias)
}

func (c *QueryCompiler) aggregate(fn string, cols []models.Column) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		q := c.quote(col.Name)
		out[i] = fmt.Sprintf("%s(%s) AS %s", fn, q, q)
	}
	return out
}

// from starts a select over the table with every selected column filtered to non-null.
func (c *QueryCompiler) from(sel *Selection, columns []string) sq.SelectBuilder {
	builder := sq.Select(columns...).From(c.quote(sel.Table.TableName))
	for _, col := range sel.Columns {
		builder = builder.Where(sq.NotEq{c.quote(col.Name): nil})
	}
	return builder
}

func (c *QueryCompiler) regular(sel *Selection) sq.SelectBuilder {
	return c.from(sel, c.quoteAll(sel.Columns))
}

func (c *QueryCompiler) basic(sel *Selection) sq.SelectBuilder {
	pks := sel.PrimaryKeys()
	atts := sel.Attributes()

	if len(pks) > 0 {
		columns := append(c.quoteAll(pks), c.quoteAll(atts)...)
		return c.from(sel, columns)
	}

	fks := sel.ForeignKeys()
	var columns []string
	if len(fks) > 0 {
		columns = append(columns, c.compositeLabel(fks))
	}
	columns = append(columns, c.aggregate("SUM", atts)...)

	builder := c.from(sel, columns)
	if len(fks) > 0 {
		builder = builder.GroupBy(c.quoteAll(fks)...).OrderBy(c.quoteAll(fks)...)
	}
	return builder
}

func (c *QueryCompiler) weak(sel *Selection) sq.SelectBuilder {
	fks := sel.ForeignKeys()
	ownPks := sel.NonForeignPrimaryKeys()
	atts := sel.Attributes()

	var columns []string
	if len(fks) > 0 {
		columns = append(columns, c.compositeLabel(fks))
	}
	columns = append(columns, c.quoteAll(ownPks)...)
	columns = append(columns, c.aggregate("SUM", atts)...)

	grouping := append(c.quoteAll(ownPks), c.quoteAll(fks)...)
	builder := c.from(sel, columns)
	if len(grouping) > 0 {
		builder = builder.GroupBy(grouping...).OrderBy(grouping...)
	}
	return builder
}

// The ABS transform on one-many measures is kept as is; it normalises sign
// for size-encoded charts.
func (c *QueryCompiler) oneMany(sel *Selection) sq.SelectBuilder {
	pureFks := sel.PureForeignKeys()
	pks := sel.PrimaryKeys()
	atts := sel.Attributes()

	var columns []string
	if len(pureFks) > 0 {
		columns = append(columns, c.compositeLabel(pureFks))
	}
	columns = append(columns, c.quoteAll(pks)...)
	columns = append(columns, c.aggregate("ABS", atts)...)

	builder := c.from(sel, columns)
	for _, att := range atts {
		builder = builder.OrderBy(c.quote(att.Name) + " DESC")
	}
	return builder
}
