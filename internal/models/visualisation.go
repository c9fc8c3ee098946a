package models

// Pattern is the entity-relationship shape assigned to a selection.
type Pattern string

const (
	PatternNone      Pattern = "none"
	PatternBasic     Pattern = "basic"
	PatternWeak      Pattern = "weak"
	PatternOneMany   Pattern = "one-many"
	PatternManyMany  Pattern = "many-many"
	PatternReflexive Pattern = "reflexive"
)

// ParsePattern accepts the wire label of a pattern.
func ParsePattern(label string) (Pattern, bool) {
	switch p := Pattern(label); p {
	case PatternNone, PatternBasic, PatternWeak, PatternOneMany, PatternManyMany, PatternReflexive:
		return p, true
	}
	return "", false
}

// VisID identifies a chart type.
type VisID string

const (
	VisBar           VisID = "bar"
	VisCalendar      VisID = "calendar"
	VisScatter       VisID = "scatter"
	VisBubble        VisID = "bubble"
	VisChoropleth    VisID = "choropleth"
	VisWordCloud     VisID = "word-cloud"
	VisLine          VisID = "line"
	VisStackedBar    VisID = "stacked-bar"
	VisGroupedBar    VisID = "grouped-bar"
	VisSpider        VisID = "spider"
	VisTreemap       VisID = "treemap"
	VisHierarchyTree VisID = "hierarchy-tree"
	VisCirclePacking VisID = "circle-packing"
	VisSankey        VisID = "sankey"
	VisChord         VisID = "chord"
)

// VisualisationOption is one chart the caller can render. Title is only set
// in exploration mode.
type VisualisationOption struct {
	VisID          VisID    `json:"visId"`
	DisplayName    string   `json:"displayName"`
	Key1           string   `json:"key1"`
	Key2           string   `json:"key2"`
	AttributeNames []string `json:"attributeNames"`
	Title          string   `json:"title"`
}
