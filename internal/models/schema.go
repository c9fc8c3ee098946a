package models

// Column is a single introspected column. Key flags are derived once when the
// catalog is built and never change afterwards.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	TableName    string `json:"tableName"`
	IsPrimaryKey bool   `json:"isPrimaryKey"`
	IsForeignKey bool   `json:"isForeignKey"`
}

// QualifiedName returns "table.column".
func (c Column) QualifiedName() string {
	return c.TableName + "." + c.Name
}

// ForeignKey is a directed edge: ChildTable.ChildColumn references ParentTable.ParentColumn.
type ForeignKey struct {
	ParentTable  string `json:"parentTable"`
	ParentColumn string `json:"parentColumn"`
	ChildTable   string `json:"childTable"`
	ChildColumn  string `json:"childColumn"`
}

// TableMetadata describes one table. ForeignKeys holds only edges where this
// table is the child.
type TableMetadata struct {
	TableName   string       `json:"tableName"`
	Columns     []Column     `json:"columns"`
	PrimaryKeys []string     `json:"primaryKeys"`
	ForeignKeys []ForeignKey `json:"foreignKeys"`
}

// Column looks up a column by bare name.
func (t TableMetadata) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t TableMetadata) HasPrimaryKey(name string) bool {
	for _, pk := range t.PrimaryKeys {
		if pk == name {
			return true
		}
	}
	return false
}

// ForeignKeyChildren returns the child column of every foreign key, in declaration order.
func (t TableMetadata) ForeignKeyChildren() []string {
	children := make([]string, 0, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		children = append(children, fk.ChildColumn)
	}
	return children
}

// PrimaryKeyColumns returns the PK columns in column order.
func (t TableMetadata) PrimaryKeyColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// ForeignKeyColumns returns every FK column (including ones that are also PKs) in column order.
func (t TableMetadata) ForeignKeyColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if c.IsForeignKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// AttributeColumns returns columns that are neither PK nor FK.
func (t TableMetadata) AttributeColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if !c.IsPrimaryKey && !c.IsForeignKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// NewTableMetadata assembles a table and derives the key flags on its columns.
// Columns keep the order they were given in.
func NewTableMetadata(name string, columns []Column, primaryKeys []string, foreignKeys []ForeignKey) TableMetadata {
	pkSet := make(map[string]bool, len(primaryKeys))
	for _, pk := range primaryKeys {
		pkSet[pk] = true
	}
	fkSet := make(map[string]bool, len(foreignKeys))
	for _, fk := range foreignKeys {
		fkSet[fk.ChildColumn] = true
	}

	cols := make([]Column, len(columns))
	for i, c := range columns {
		c.TableName = name
		c.IsPrimaryKey = pkSet[c.Name]
		c.IsForeignKey = fkSet[c.Name]
		cols[i] = c
	}

	if primaryKeys == nil {
		primaryKeys = []string{}
	}
	if foreignKeys == nil {
		foreignKeys = []ForeignKey{}
	}

	return TableMetadata{
		TableName:   name,
		Columns:     cols,
		PrimaryKeys: primaryKeys,
		ForeignKeys: foreignKeys,
	}
}
