package services

import "github.com/Abdus2609/vizor/internal/models"

var (
	numericTypes  = []string{"numeric", "int2", "int4", "int8", "float4", "float8"}
	temporalTypes = []string{"date", "time", "timestamp"}
	lexicalTypes  = []string{"varchar", "text", "char"}

	geoTableNames  = []string{"country", "city", "state", "county", "province"}
	geoColumnNames = []string{"name", "code", "id"}
)

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func IsNumericType(t string) bool  { return contains(numericTypes, t) }
func IsTemporalType(t string) bool { return contains(temporalTypes, t) }
func IsLexicalType(t string) bool  { return contains(lexicalTypes, t) }

// IsScalarType reports whether a type can sit on a chart axis.
func IsScalarType(t string) bool {
	return IsNumericType(t) || IsTemporalType(t)
}

// IsGeographic matches keys like country, or city.name / state.code.
func IsGeographic(key models.Column) bool {
	return contains(geoTableNames, key.Name) ||
		(contains(geoTableNames, key.TableName) && contains(geoColumnNames, key.Name))
}

// chartInput is what a compatibility predicate looks at.
type chartInput struct {
	// Key is the column a basic-entity chart is keyed on. Nil when there is none.
	Key *models.Column
	// SecondaryKeys are the non-FK primary keys of a weak entity.
	SecondaryKeys []models.Column
	AttTypes      []string
}

func allScalar(types []string) bool {
	for _, t := range types {
		if !IsScalarType(t) {
			return false
		}
	}
	return true
}

func singleScalar(in chartInput) bool {
	return len(in.AttTypes) == 1 && IsScalarType(in.AttTypes[0])
}

func acceptsBar(in chartInput) bool { return singleScalar(in) }

func acceptsCalendar(in chartInput) bool {
	return len(in.AttTypes) == 1 && IsTemporalType(in.AttTypes[0])
}

func acceptsScatter(in chartInput) bool {
	return len(in.AttTypes) == 2 && allScalar(in.AttTypes)
}

func acceptsBubble(in chartInput) bool {
	return len(in.AttTypes) == 3 && allScalar(in.AttTypes)
}

func acceptsChoropleth(in chartInput) bool {
	return in.Key != nil && IsGeographic(*in.Key) && len(in.AttTypes) == 1
}

func acceptsWordCloud(in chartInput) bool {
	return in.Key != nil && IsLexicalType(in.Key.Type) && singleScalar(in)
}

func acceptsLine(in chartInput) bool {
	if len(in.AttTypes) != 1 {
		return false
	}
	for _, k := range in.SecondaryKeys {
		if !IsScalarType(k.Type) {
			return false
		}
	}
	return allScalar(in.AttTypes)
}

func acceptsHierarchyTree(in chartInput) bool {
	return len(in.AttTypes) == 0
}
