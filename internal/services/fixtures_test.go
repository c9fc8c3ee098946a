package services

import (
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/models"
)

func fk(child, column, parent, parentColumn string) models.ForeignKey {
	return models.ForeignKey{ParentTable: parent, ParentColumn: parentColumn, ChildTable: child, ChildColumn: column}
}

func cols(pairs ...string) []models.Column {
	out := make([]models.Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Column{Name: pairs[i], Type: pairs[i+1]})
	}
	return out
}

// fixtureTables covers every pattern the classifier can produce.
func fixtureTables() []models.TableMetadata {
	return []models.TableMetadata{
		models.NewTableMetadata("film",
			cols("film_id", "int4", "title", "varchar", "length", "int2", "rental_rate", "numeric",
				"replacement_cost", "numeric", "release_date", "date", "rating", "varchar"),
			[]string{"film_id"}, nil),
		models.NewTableMetadata("country",
			cols("code", "char", "population", "int8"),
			[]string{"code"}, nil),
		models.NewTableMetadata("category",
			cols("name", "varchar", "film_count", "int4"),
			[]string{"name"}, nil),
		models.NewTableMetadata("store",
			cols("store_id", "int4", "manager", "varchar", "budget", "numeric"),
			[]string{"store_id"}, nil),
		models.NewTableMetadata("store_sales",
			cols("store_id", "int4", "month", "int4", "revenue", "numeric"),
			[]string{"store_id", "month"},
			[]models.ForeignKey{fk("store_sales", "store_id", "store", "store_id")}),
		models.NewTableMetadata("employee",
			cols("employee_id", "int4", "store_id", "int4", "salary", "numeric", "hired", "date"),
			[]string{"employee_id"},
			[]models.ForeignKey{fk("employee", "store_id", "store", "store_id")}),
		models.NewTableMetadata("actor",
			cols("actor_id", "int4", "name", "varchar"),
			[]string{"actor_id"}, nil),
		models.NewTableMetadata("film_actor",
			cols("actor_id", "int4", "film_id", "int4", "screen_time", "int4"),
			[]string{"actor_id", "film_id"},
			[]models.ForeignKey{
				fk("film_actor", "actor_id", "actor", "actor_id"),
				fk("film_actor", "film_id", "film", "film_id"),
			}),
		models.NewTableMetadata("person",
			cols("person_id", "int4", "name", "varchar"),
			[]string{"person_id"}, nil),
		models.NewTableMetadata("friendship",
			cols("person_a", "int4", "person_b", "int4", "strength", "int4"),
			[]string{"person_a", "person_b"},
			[]models.ForeignKey{
				fk("friendship", "person_a", "person", "person_id"),
				fk("friendship", "person_b", "person", "person_id"),
			}),
		models.NewTableMetadata("rental_stats",
			cols("customer_id", "int4", "store_id", "int4", "amount", "numeric"),
			nil,
			[]models.ForeignKey{
				fk("rental_stats", "customer_id", "customer", "customer_id"),
				fk("rental_stats", "store_id", "store", "store_id"),
			}),
		models.NewTableMetadata("film_detail",
			cols("film_id", "int4", "budget", "numeric"),
			[]string{"film_id"},
			[]models.ForeignKey{fk("film_detail", "film_id", "film", "film_id")}),
		models.NewTableMetadata("measurements",
			cols("id", "int4", "a", "int4", "b", "float8", "c", "numeric"),
			[]string{"id"}, nil),
	}
}

func fixtureSnapshot() *catalog.Snapshot {
	store := catalog.NewStore()
	return store.Replace(fixtureTables())
}

// mustSelect resolves "table.column" names against the fixture snapshot.
func mustSelect(snap *catalog.Snapshot, table string, columns ...string) *Selection {
	full := make([]string, len(columns))
	for i, c := range columns {
		full[i] = table + "." + c
	}
	sel, err := ResolveSelection(snap, []string{table}, full)
	if err != nil {
		panic(err)
	}
	return sel
}
