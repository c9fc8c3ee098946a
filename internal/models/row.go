package models

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Row is one result row keyed by column label, in select-list order.
type Row = *orderedmap.OrderedMap[string, any]

func NewRow() Row {
	return orderedmap.New[string, any]()
}
