package services

import "github.com/Abdus2609/vizor/internal/models"

// Classify assigns exactly one pattern to a selection. It never fails; a
// selection that fits nothing is PatternNone.
func Classify(sel *Selection) models.Pattern {
	numPks := len(sel.PrimaryKeys())
	numPureFks := len(sel.PureForeignKeys())
	totalFks := len(sel.ForeignKeys())
	numAtts := len(sel.Columns) - numPks - numPureFks

	switch {
	case numAtts == 0:
		return models.PatternNone
	case numPks == 0 && numPureFks == 0:
		return models.PatternNone
	case isBasicEntity(sel, numPks, totalFks):
		return models.PatternBasic
	case isWeakEntity(sel):
		return models.PatternWeak
	case isOneMany(sel, numPks, numPureFks):
		return models.PatternOneMany
	case isManyManyFamily(sel, numPks):
		if isReflexive(sel.Table) {
			return models.PatternReflexive
		}
		return models.PatternManyMany
	default:
		return models.PatternNone
	}
}

// A basic entity has at most one selected key and either no FKs, a PK fully
// inherited through FKs with no extra grouping FK, or no declared PK at all.
func isBasicEntity(sel *Selection, numPks, totalFks int) bool {
	if numPks > 1 {
		return false
	}
	if totalFks == 0 {
		return true
	}

	table := sel.Table
	inheritedPk := containsAll(table.ForeignKeyChildren(), table.PrimaryKeys)
	if inheritedPk && len(sel.PureForeignKeys()) == 0 {
		return true
	}
	return len(table.PrimaryKeys) == 0
}

// A weak entity's selected PK/FK columns are a strict part of the table's PK
// and all reference one parent.
func isWeakEntity(sel *Selection) bool {
	both := columnNames(sel.BothPrimaryAndForeign())
	if len(both) == 0 {
		return false
	}
	if len(both) == len(sel.Table.PrimaryKeys) {
		return false
	}

	var parents []string
	for _, fk := range sel.Table.ForeignKeys {
		if contains(both, fk.ChildColumn) {
			parents = append(parents, fk.ParentTable)
		}
	}
	return len(dedupe(parents)) == 1
}

func isOneMany(sel *Selection, numPks, numPureFks int) bool {
	if numPureFks == 0 || numPks == 0 {
		return false
	}

	pureFks := columnNames(sel.PureForeignKeys())
	var matched []models.ForeignKey
	for _, fk := range sel.Table.ForeignKeys {
		if contains(pureFks, fk.ChildColumn) {
			matched = append(matched, fk)
		}
	}
	if len(matched) != len(pureFks) {
		return false
	}
	return len(distinctParents(matched)) == 1
}

// Association tables: exactly two PKs which are exactly the FK columns.
func isManyManyFamily(sel *Selection, numPks int) bool {
	if numPks != 2 {
		return false
	}
	table := sel.Table
	if len(table.PrimaryKeys) != 2 {
		return false
	}
	children := table.ForeignKeyChildren()
	return containsAll(children, table.PrimaryKeys) && containsAll(table.PrimaryKeys, children)
}

func isReflexive(table models.TableMetadata) bool {
	return len(distinctParents(table.ForeignKeys)) == 1
}

// distinctParents returns parent tables in first-seen order.
func distinctParents(fks []models.ForeignKey) []string {
	parents := make([]string, 0, len(fks))
	for _, fk := range fks {
		parents = append(parents, fk.ParentTable)
	}
	return dedupe(parents)
}

func containsAll(set, subset []string) bool {
	for _, v := range subset {
		if !contains(set, v) {
			return false
		}
	}
	return true
}
