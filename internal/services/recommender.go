package services

import (
	"fmt"
	"strings"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

func joinLabel(names []string) string {
	return strings.Join(names, database.LabelSeparator)
}

// Recommend lists the charts a classified selection unlocks. Titles are left
// empty; keys follow the composite labels the compiled query produces.
func Recommend(sel *Selection, pattern models.Pattern) []models.VisualisationOption {
	pks := sel.PrimaryKeys()
	fks := sel.ForeignKeys()
	atts := sel.Attributes()
	attNames := columnNames(atts)

	in := chartInput{AttTypes: columnTypes(atts)}
	var key1, key2 string

	switch pattern {
	case models.PatternBasic:
		if len(pks) == 0 {
			if len(fks) == 0 {
				return []models.VisualisationOption{}
			}
			key := fks[0]
			in.Key = &key
			key1 = joinLabel(columnNames(fks))
		} else {
			key := pks[0]
			in.Key = &key
			key1 = key.Name
		}
	case models.PatternWeak:
		key1 = joinLabel(columnNames(fks))
		own := sel.NonForeignPrimaryKeys()
		if len(own) > 0 {
			key2 = own[0].Name
		}
		in.SecondaryKeys = own
	case models.PatternOneMany:
		key1 = joinLabel(columnNames(sel.PureForeignKeys()))
		if len(pks) > 0 {
			key2 = pks[0].Name
		}
	case models.PatternManyMany, models.PatternReflexive:
		if len(pks) < 2 {
			return []models.VisualisationOption{}
		}
		key1, key2 = pks[0].Name, pks[1].Name
	default:
		return []models.VisualisationOption{}
	}

	options := []models.VisualisationOption{}
	for _, c := range chartsFor(pattern) {
		if !c.Accepts(in) {
			continue
		}
		options = append(options, models.VisualisationOption{
			VisID:          c.ID,
			DisplayName:    c.DisplayName,
			Key1:           key1,
			Key2:           key2,
			AttributeNames: append([]string{}, attNames...),
		})
	}
	return options
}

// Explore enumerates every attribute combination of table that the chart
// supports, each with a title.
func Explore(snap *catalog.Snapshot, visID models.VisID, tableName string) (*models.ExplorationResponse, error) {
	c, ok := lookupChart(visID)
	if !ok {
		return nil, apperrors.NewConfigurationError("unknown chart type %q", visID)
	}
	table, ok := snap.Table(tableName)
	if !ok {
		return nil, apperrors.NewConfigurationError("table %q not found", tableName)
	}

	var (
		options []models.VisualisationOption
		err     error
	)
	switch c.Pattern {
	case models.PatternBasic:
		options, err = exploreBasic(c, table)
	case models.PatternWeak:
		options, err = exploreWeak(c, table)
	case models.PatternOneMany:
		options, err = exploreOneMany(c, table)
	default:
		options, err = exploreAssociation(c, table)
	}
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []models.VisualisationOption{}
	}

	return &models.ExplorationResponse{Pattern: c.Pattern, Options: options}, nil
}

func exploreBasic(c chart, table models.TableMetadata) ([]models.VisualisationOption, error) {
	pks := table.PrimaryKeyColumns()
	fks := table.ForeignKeyColumns()

	var key models.Column
	var keyName string
	switch {
	case len(pks) > 0:
		key, keyName = pks[0], pks[0].Name
	case len(fks) > 0:
		key, keyName = fks[0], joinLabel(columnNames(fks))
	default:
		return nil, apperrors.NewConfigurationError("%s needs a primary or foreign key on %q", c.DisplayName, table.TableName)
	}

	var options []models.VisualisationOption
	for _, combo := range combinations(table.AttributeColumns(), c.Arity) {
		in := chartInput{Key: &key, AttTypes: columnTypes(combo)}
		if !c.Accepts(in) {
			continue
		}
		names := columnNames(combo)
		options = append(options, models.VisualisationOption{
			VisID:          c.ID,
			DisplayName:    c.DisplayName,
			Key1:           keyName,
			AttributeNames: names,
			Title:          basicTitle(c.ID, keyName, names),
		})
	}
	return options, nil
}

func basicTitle(id models.VisID, key string, atts []string) string {
	switch id {
	case models.VisCalendar:
		return fmt.Sprintf("%s by %s", key, atts[0])
	case models.VisScatter:
		return fmt.Sprintf("%s vs %s", atts[0], atts[1])
	case models.VisBubble:
		return fmt.Sprintf("%s vs %s, sized by %s", atts[0], atts[1], atts[2])
	case models.VisChoropleth:
		return atts[0]
	case models.VisWordCloud:
		return fmt.Sprintf("%s, sized by %s", key, atts[0])
	default:
		return fmt.Sprintf("%s vs %s", key, atts[0])
	}
}

func exploreWeak(c chart, table models.TableMetadata) ([]models.VisualisationOption, error) {
	fks := table.ForeignKeyColumns()
	var ownPks []models.Column
	for _, pk := range table.PrimaryKeyColumns() {
		if !pk.IsForeignKey {
			ownPks = append(ownPks, pk)
		}
	}
	if len(fks) == 0 || len(ownPks) == 0 {
		return nil, apperrors.NewConfigurationError("%s needs a foreign key and a primary key that is not a foreign key on %q", c.DisplayName, table.TableName)
	}

	key1 := joinLabel(columnNames(fks))
	// Line charts plot against any scalar own key; the others use the first.
	keys := ownPks[:1]
	if c.ID == models.VisLine {
		keys = ownPks
	}

	var options []models.VisualisationOption
	for _, pk := range keys {
		for _, att := range table.AttributeColumns() {
			in := chartInput{SecondaryKeys: []models.Column{pk}, AttTypes: []string{att.Type}}
			if !c.Accepts(in) {
				continue
			}
			options = append(options, models.VisualisationOption{
				VisID:          c.ID,
				DisplayName:    c.DisplayName,
				Key1:           key1,
				Key2:           pk.Name,
				AttributeNames: []string{att.Name},
				Title:          fmt.Sprintf("%s vs %s, for each %s", pk.Name, att.Name, key1),
			})
		}
	}
	return options, nil
}

// parentLabels groups the non-PK foreign key columns by parent table, giving
// one composite label per parent.
func parentLabels(table models.TableMetadata) []string {
	var parents []string
	for _, fk := range table.ForeignKeys {
		if !table.HasPrimaryKey(fk.ChildColumn) {
			parents = append(parents, fk.ParentTable)
		}
	}

	var labels []string
	for _, parent := range dedupe(parents) {
		var children []string
		for _, fk := range table.ForeignKeys {
			if fk.ParentTable == parent && !table.HasPrimaryKey(fk.ChildColumn) {
				children = append(children, fk.ChildColumn)
			}
		}
		labels = append(labels, joinLabel(children))
	}
	return labels
}

func exploreOneMany(c chart, table models.TableMetadata) ([]models.VisualisationOption, error) {
	pks := table.PrimaryKeyColumns()
	labels := parentLabels(table)
	if len(pks) == 0 || len(labels) == 0 {
		return nil, apperrors.NewConfigurationError("%s needs a primary key and a foreign key that is not part of it on %q", c.DisplayName, table.TableName)
	}
	pk := pks[0].Name

	var options []models.VisualisationOption
	for _, label := range labels {
		if c.Arity == 0 {
			options = append(options, models.VisualisationOption{
				VisID:          c.ID,
				DisplayName:    c.DisplayName,
				Key1:           label,
				Key2:           pk,
				AttributeNames: []string{},
				Title:          fmt.Sprintf("%s, for each %s", pk, label),
			})
			continue
		}
		for _, att := range table.AttributeColumns() {
			if !c.Accepts(chartInput{AttTypes: []string{att.Type}}) {
				continue
			}
			options = append(options, models.VisualisationOption{
				VisID:          c.ID,
				DisplayName:    c.DisplayName,
				Key1:           label,
				Key2:           pk,
				AttributeNames: []string{att.Name},
				Title:          fmt.Sprintf("%s vs %s, for each %s", pk, att.Name, label),
			})
		}
	}
	return options, nil
}

func exploreAssociation(c chart, table models.TableMetadata) ([]models.VisualisationOption, error) {
	pks := table.PrimaryKeyColumns()
	if len(pks) < 2 {
		return nil, apperrors.NewConfigurationError("%s needs at least two primary keys on %q", c.DisplayName, table.TableName)
	}
	from, to := pks[0].Name, pks[1].Name

	var options []models.VisualisationOption
	for _, att := range table.AttributeColumns() {
		if !c.Accepts(chartInput{AttTypes: []string{att.Type}}) {
			continue
		}
		options = append(options, models.VisualisationOption{
			VisID:          c.ID,
			DisplayName:    c.DisplayName,
			Key1:           from,
			Key2:           to,
			AttributeNames: []string{att.Name},
			Title:          fmt.Sprintf("%s: %s to %s, sized by %s", c.DisplayName, from, to, att.Name),
		})
	}
	return options, nil
}

// combinations returns every k-element subset of cols in lexicographic index
// order, each subset keeping catalog order.
func combinations(cols []models.Column, k int) [][]models.Column {
	n := len(cols)
	if k < 0 || k > n {
		return nil
	}

	var out [][]models.Column
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]models.Column, k)
		for i, j := range idx {
			combo[i] = cols[j]
		}
		out = append(out, combo)

		// Advance the rightmost index that still has room.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
