package priority

// DurationHours maps the categorical duration codes to canonical hour
// estimates used by efficiency and reporting math.
var DurationHours = map[string]float64{
	"XS": 0.5, // < 1 hour
	"S":  2,   // 1-4 hours
	"M":  6,   // 4-8 hours
	"L":  16,  // 1-3 days
	"XL": 40,  // 3+ days
}

var DurationLabels = map[string]string{
	"XS": "Very short (<1h)",
	"S":  "Short (1-4h)",
	"M":  "Medium (4-8h)",
	"L":  "Long (1-3 days)",
	"XL": "Very long (3+ days)",
}

var DurabilityLabels = map[string]string{
	"SHORT":  "Short term (<1 day)",
	"MEDIUM": "Medium term (1-5 days)",
	"LONG":   "Long term (5+ days)",
}

var UrgencyLabels = map[int]string{
	1: "Very low",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Critical",
}

var ImportanceLabels = map[int]string{
	1: "Minimal",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Critical",
}

var ComplexityLabels = map[int]string{
	1: "Trivial",
	2: "Simple",
	3: "Moderate",
	4: "Complex",
	5: "Very complex",
}

// QuadrantInfo is display metadata for a quadrant bucket.
type QuadrantInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var QuadrantLabels = map[Quadrant]QuadrantInfo{
	QuadrantDoNow: {
		Label:       "Do now",
		Description: "Urgent and important - needs immediate attention",
		Color:       "red",
	},
	QuadrantSchedule: {
		Label:       "Schedule",
		Description: "Important but not urgent - plan for later",
		Color:       "blue",
	},
	QuadrantDelegate: {
		Label:       "Delegate",
		Description: "Urgent but less important - hand to someone else",
		Color:       "amber",
	},
	QuadrantEliminate: {
		Label:       "Eliminate",
		Description: "Neither urgent nor important - reconsider priority",
		Color:       "gray",
	},
}
