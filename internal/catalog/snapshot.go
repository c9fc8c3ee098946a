package catalog

import (
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Abdus2609/vizor/internal/models"
)

// Snapshot is an immutable view of the introspected schema. Callers must not
// modify the slices it hands out.
type Snapshot struct {
	ID          uuid.UUID
	Version     uint64
	RefreshedAt time.Time

	tables []models.TableMetadata
	index  map[string]int
}

func newSnapshot(version uint64, tables []models.TableMetadata) *Snapshot {
	copied := make([]models.TableMetadata, len(tables))
	for i, t := range tables {
		copied[i] = cloneTable(t)
	}
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].TableName < copied[j].TableName
	})

	index := make(map[string]int, len(copied))
	for i, t := range copied {
		index[t.TableName] = i
	}

	return &Snapshot{
		ID:          uuid.New(),
		Version:     version,
		RefreshedAt: time.Now().UTC(),
		tables:      copied,
		index:       index,
	}
}

// Tables returns every table ordered by name.
func (s *Snapshot) Tables() []models.TableMetadata {
	return s.tables
}

func (s *Snapshot) Table(name string) (models.TableMetadata, bool) {
	i, ok := s.index[name]
	if !ok {
		return models.TableMetadata{}, false
	}
	return s.tables[i], true
}

func (s *Snapshot) TableNames() []string {
	names := make([]string, len(s.tables))
	for i, t := range s.tables {
		names[i] = t.TableName
	}
	return names
}

func (s *Snapshot) IsEmpty() bool {
	return len(s.tables) == 0
}

// Equal reports whether two snapshots describe the same schema, ignoring
// identity and refresh time.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s.tables, other.tables)
}

func cloneTable(t models.TableMetadata) models.TableMetadata {
	out := models.TableMetadata{
		TableName:   t.TableName,
		Columns:     append([]models.Column{}, t.Columns...),
		PrimaryKeys: append([]string{}, t.PrimaryKeys...),
		ForeignKeys: append([]models.ForeignKey{}, t.ForeignKeys...),
	}
	return out
}

// Response renders the snapshot for the API.
func (s *Snapshot) Response() models.CatalogResponse {
	return models.CatalogResponse{
		ID:          s.ID.String(),
		Version:     s.Version,
		RefreshedAt: s.RefreshedAt,
		Tables:      s.tables,
	}
}
