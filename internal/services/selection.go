package services

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/models"
)

const maxSuggestions = 3

// Selection is a set of columns resolved against one catalog table.
// Columns are in catalog column order.
type Selection struct {
	Table   models.TableMetadata
	Columns []models.Column
}

// PrimaryKeys returns the selected PK columns, including ones that are also FKs.
func (s *Selection) PrimaryKeys() []models.Column {
	return s.filter(func(c models.Column) bool { return c.IsPrimaryKey })
}

// ForeignKeys returns the selected FK columns, including ones that are also PKs.
func (s *Selection) ForeignKeys() []models.Column {
	return s.filter(func(c models.Column) bool { return c.IsForeignKey })
}

// PureForeignKeys returns selected FK columns that are not PKs.
func (s *Selection) PureForeignKeys() []models.Column {
	return s.filter(func(c models.Column) bool { return c.IsForeignKey && !c.IsPrimaryKey })
}

// NonForeignPrimaryKeys returns selected PK columns that are not FKs.
func (s *Selection) NonForeignPrimaryKeys() []models.Column {
	return s.filter(func(c models.Column) bool { return c.IsPrimaryKey && !c.IsForeignKey })
}

func (s *Selection) BothPrimaryAndForeign() []models.Column {
	return s.filter(func(c models.Column) bool { return c.IsPrimaryKey && c.IsForeignKey })
}

// Attributes returns selected columns that are neither PK nor FK.
func (s *Selection) Attributes() []models.Column {
	return s.filter(func(c models.Column) bool { return !c.IsPrimaryKey && !c.IsForeignKey })
}

func (s *Selection) filter(keep func(models.Column) bool) []models.Column {
	var out []models.Column
	for _, c := range s.Columns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func columnNames(cols []models.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func columnTypes(cols []models.Column) []string {
	types := make([]string, len(cols))
	for i, c := range cols {
		types[i] = c.Type
	}
	return types
}

// ResolveSelection maps "table.column" names onto the catalog. Every name must
// resolve; only single-table selections are supported.
func ResolveSelection(snap *catalog.Snapshot, tableNames, fullColumnNames []string) (*Selection, error) {
	tables := dedupe(tableNames)
	if len(tables) == 0 {
		return nil, &apperrors.SelectionError{Reason: "no tables selected"}
	}
	if len(fullColumnNames) == 0 {
		return nil, &apperrors.SelectionError{Reason: "no columns selected"}
	}

	var unknownTables []string
	for _, name := range tables {
		if _, ok := snap.Table(name); !ok {
			unknownTables = append(unknownTables, name)
		}
	}
	if len(unknownTables) > 0 {
		return nil, &apperrors.SelectionError{
			Reason:      "unknown tables",
			Unresolved:  unknownTables,
			Suggestions: suggest(unknownTables, snap.TableNames()),
		}
	}

	if len(tables) > 1 {
		return nil, &apperrors.MultiTableUnsupportedError{Tables: tables}
	}

	table, _ := snap.Table(tables[0])
	wanted := make(map[string]bool, len(fullColumnNames))
	var unresolved []string
	for _, full := range fullColumnNames {
		tableName, columnName, ok := strings.Cut(full, ".")
		if !ok || tableName != table.TableName {
			unresolved = append(unresolved, full)
			continue
		}
		if _, found := table.Column(columnName); !found {
			unresolved = append(unresolved, full)
			continue
		}
		wanted[columnName] = true
	}

	if len(unresolved) > 0 {
		candidates := make([]string, len(table.Columns))
		for i, c := range table.Columns {
			candidates[i] = c.QualifiedName()
		}
		return nil, &apperrors.SelectionError{
			Reason:      "unknown columns",
			Unresolved:  unresolved,
			Suggestions: suggest(unresolved, candidates),
		}
	}

	sel := &Selection{Table: table}
	for _, c := range table.Columns {
		if wanted[c.Name] {
			sel.Columns = append(sel.Columns, c)
		}
	}
	return sel, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// suggest returns, per unresolved name, the closest candidates by edit distance.
func suggest(unresolved, candidates []string) map[string][]string {
	out := make(map[string][]string)
	for _, name := range unresolved {
		type scored struct {
			value string
			dist  int
		}
		limit := len(name)/3 + 1
		if limit < 2 {
			limit = 2
		}

		var matches []scored
		for _, c := range candidates {
			d := levenshtein.DistanceForStrings([]rune(strings.ToLower(name)), []rune(strings.ToLower(c)), levenshtein.DefaultOptions)
			if d <= limit {
				matches = append(matches, scored{c, d})
			}
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })
		if len(matches) > maxSuggestions {
			matches = matches[:maxSuggestions]
		}
		for _, m := range matches {
			out[name] = append(out[name], m.value)
		}
	}
	return out
}
