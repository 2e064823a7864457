package provinces

// bucket is a population threshold and the color used above it.
type bucket struct {
	above int64
	color string
}

// buckets are ordered from the most populated down, first match wins.
var buckets = []bucket{
	{above: 8_000_000, color: "#800026"},
	{above: 4_000_000, color: "#BD0026"},
	{above: 2_000_000, color: "#E31A1C"},
	{above: 1_000_000, color: "#FC4E2A"},
	{above: 500_000, color: "#FD8D3C"},
	{above: 200_000, color: "#FEB24C"},
	{above: 100_000, color: "#FED976"},
}

const baseColor = "#FFEDA0"

// ColorFor returns the fill color for a population. Thresholds are exclusive.
func ColorFor(population int64) string {
	for _, b := range buckets {
		if population > b.above {
			return b.color
		}
	}
	return baseColor
}

// LegendItem is one row of the map legend.
type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend returns the legend rows shown next to the map.
func Legend() []LegendItem {
	return []LegendItem{
		{Label: "8M+", Color: ColorFor(8_000_001)},
		{Label: "4M-8M", Color: ColorFor(4_000_001)},
		{Label: "2M-4M", Color: ColorFor(2_000_001)},
		{Label: "1M-2M", Color: ColorFor(1_000_001)},
		{Label: "<1M", Color: ColorFor(500_001)},
	}
}
