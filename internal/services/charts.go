package services

import "github.com/Abdus2609/vizor/internal/models"

// chart describes one chart type: which pattern it renders, how many
// attributes it binds and when it is compatible.
type chart struct {
	ID          models.VisID
	DisplayName string
	Pattern     models.Pattern
	Arity       int
	Accepts     func(chartInput) bool
}

// charts is ordered the way options are presented.
var charts = []chart{
	{models.VisBar, "Bar Chart", models.PatternBasic, 1, acceptsBar},
	{models.VisCalendar, "Calendar", models.PatternBasic, 1, acceptsCalendar},
	{models.VisScatter, "Scatter Chart", models.PatternBasic, 2, acceptsScatter},
	{models.VisBubble, "Bubble Chart", models.PatternBasic, 3, acceptsBubble},
	{models.VisChoropleth, "Choropleth Map", models.PatternBasic, 1, acceptsChoropleth},
	{models.VisWordCloud, "Word Cloud", models.PatternBasic, 1, acceptsWordCloud},

	{models.VisLine, "Line Chart", models.PatternWeak, 1, acceptsLine},
	{models.VisStackedBar, "Stacked Bar Chart", models.PatternWeak, 1, singleScalar},
	{models.VisGroupedBar, "Grouped Bar Chart", models.PatternWeak, 1, singleScalar},
	{models.VisSpider, "Spider Chart", models.PatternWeak, 1, singleScalar},

	{models.VisTreemap, "Treemap", models.PatternOneMany, 1, singleScalar},
	{models.VisHierarchyTree, "Hierarchy Tree", models.PatternOneMany, 0, acceptsHierarchyTree},
	{models.VisCirclePacking, "Circle Packing", models.PatternOneMany, 1, singleScalar},

	{models.VisSankey, "Sankey Diagram", models.PatternManyMany, 1, singleScalar},

	{models.VisChord, "Chord Diagram", models.PatternReflexive, 1, singleScalar},
}

func lookupChart(id models.VisID) (chart, bool) {
	for _, c := range charts {
		if c.ID == id {
			return c, true
		}
	}
	return chart{}, false
}

func chartsFor(pattern models.Pattern) []chart {
	var out []chart
	for _, c := range charts {
		if c.Pattern == pattern {
			out = append(out, c)
		}
	}
	return out
}

// ChartInfo is the public description of a supported chart type.
type ChartInfo struct {
	VisID       models.VisID   `json:"visId"`
	DisplayName string         `json:"displayName"`
	Pattern     models.Pattern `json:"pattern"`
	Arity       int            `json:"arity"`
}

// SupportedCharts lists every chart type in presentation order.
func SupportedCharts() []ChartInfo {
	out := make([]ChartInfo, len(charts))
	for i, c := range charts {
		out[i] = ChartInfo{VisID: c.ID, DisplayName: c.DisplayName, Pattern: c.Pattern, Arity: c.Arity}
	}
	return out
}
