package schedule

import "strings"

// Visual is the display identity of a block: glyph, hex color and short label.
type Visual struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// DefaultVisual is used for block names the catalog does not know.
var DefaultVisual = Visual{Icon: "◆", Color: "#888888", Label: "FOCUS"}

// Catalog holds the static lookup tables used to enrich parsed blocks.
// It is built once and passed explicitly; the zero value knows no blocks.
type Catalog struct {
	categories  map[string]Category
	visuals     map[string]Visual
	details     map[string][]string
	required    map[string]bool
	triggers    map[string][]string
	sopPrefixes []string
}

// CatalogEntry describes one block name for NewCatalog.
type CatalogEntry struct {
	Name     string
	Category Category
	Visual   Visual
	Details  []string
	Required bool
}

// NewCatalog builds a Catalog from entries and a keystone trigger map
// (keystone id -> interchangeable block names).
func NewCatalog(entries []CatalogEntry, triggers map[string][]string, sopPrefixes []string) *Catalog {
	c := &Catalog{
		categories:  make(map[string]Category, len(entries)),
		visuals:     make(map[string]Visual, len(entries)),
		details:     make(map[string][]string, len(entries)),
		required:    make(map[string]bool, len(entries)),
		triggers:    make(map[string][]string, len(triggers)),
		sopPrefixes: append([]string(nil), sopPrefixes...),
	}
	for _, e := range entries {
		if e.Category != "" {
			c.categories[e.Name] = e.Category
		}
		if e.Visual != (Visual{}) {
			c.visuals[e.Name] = e.Visual
		}
		if len(e.Details) > 0 {
			c.details[e.Name] = append([]string(nil), e.Details...)
		}
		if e.Required {
			c.required[e.Name] = true
		}
	}
	for id, names := range triggers {
		c.triggers[id] = append([]string(nil), names...)
	}
	return c
}

// Category returns the block's category, defaulting to work.
func (c *Catalog) Category(name string) Category {
	if cat, ok := c.categories[name]; ok {
		return cat
	}
	return CategoryWork
}

// Visual returns the block's visual identity or DefaultVisual.
func (c *Catalog) Visual(name string) Visual {
	if v, ok := c.visuals[name]; ok {
		return v
	}
	return DefaultVisual
}

// Details returns a copy of the block's detail list (never nil).
func (c *Catalog) Details(name string) []string {
	return append([]string{}, c.details[name]...)
}

// IsSOP reports whether a file reference names a standard operating procedure.
func (c *Catalog) IsSOP(fileRef string) bool {
	for _, p := range c.sopPrefixes {
		if strings.HasPrefix(fileRef, p) {
			return true
		}
	}
	return false
}

// IsRequired reports whether a block is keystone-backed or points at an SOP.
func (c *Catalog) IsRequired(name, fileRef string) bool {
	return c.required[name] || c.IsSOP(fileRef)
}

// Triggers returns the block names that satisfy a keystone.
func (c *Catalog) Triggers(keystoneID string) []string {
	return c.triggers[keystoneID]
}

var (
	visualFoundation = Visual{Icon: "☀", Color: "#f0a030", Label: "FOUNDATION"}
	visualCreation   = Visual{Icon: "✦", Color: "#e84393", Label: "CREATION"}
	visualPowerHour  = Visual{Icon: "⚡", Color: "#00e676", Label: "POWER HOUR"}
	visualDevelop    = Visual{Icon: "◈", Color: "#00bcd4", Label: "DEVELOP"}
	visualExecute    = Visual{Icon: "▸", Color: "#ff9800", Label: "EXECUTE"}
	visualNightLab   = Visual{Icon: "⬢", Color: "#7c4dff", Label: "NIGHT LAB"}
	visualFamily     = Visual{Icon: "♥", Color: "#ce93d8", Label: "FAMILY"}
	visualRestore    = Visual{Icon: "☾", Color: "#5c6bc0", Label: "RESTORE"}

	detailsCreation = []string{"Walk (15 min)", "Pre-Record Skool (15 min)", "Deep Work (60 min)"}
	detailsWorkout  = []string{"Run w/ sprints", "Lift routine", "Cool-down", "Smoothie"}
	detailsFamily   = []string{"Transition (15 min)", "Dinner - present, no devices", "Connection time"}
	detailsRestore  = []string{"Gratitude journal", "Yoga Nidra / sleep transition", "Lights out 9 PM"}
)

// DefaultCatalog returns the catalog for the stack-based day described in philosophy.md.
// Several names are historical synonyms ("Creation" / "Creation Stack") and share entries.
func DefaultCatalog() *Catalog {
	entries := []CatalogEntry{
		{Name: "Morning Foundation", Category: CategoryHealth, Visual: visualFoundation, Required: true,
			Details: []string{"Stretch", "Read + Coffee", "Journal", "Breathwork + Vision"}},
		{Name: "Creation", Category: CategoryWork, Visual: visualCreation, Details: detailsCreation, Required: true},
		{Name: "Creation Stack", Category: CategoryWork, Visual: visualCreation, Details: detailsCreation, Required: true},
		{Name: "Breakfast", Category: CategoryHealth, Visual: Visual{Icon: "☕", Color: "#a0a0a0", Label: "BREAKFAST"}},
		{Name: "Workout", Category: CategoryHealth, Visual: visualPowerHour, Details: detailsWorkout, Required: true},
		{Name: "Power Hour", Category: CategoryHealth, Visual: visualPowerHour, Details: detailsWorkout, Required: true},
		{Name: "DEV-1", Category: CategoryWork, Visual: visualDevelop, Required: true,
			Details: []string{"JINTENT: Outreach, LinkedIn, client work"}},
		{Name: "DEV-2", Category: CategoryWork, Visual: visualDevelop, Required: true,
			Details: []string{"Communities: 5 min x 4 brands"}},
		{Name: "DEV-3", Category: CategoryWork, Visual: visualDevelop, Required: true,
			Details: []string{"Projects: Deep focus task"}},
		{Name: "Clean Mama", Category: CategoryHealth, Visual: Visual{Icon: "✨", Color: "#81c784", Label: "CLEAN MAMA"}, Required: true,
			Details: []string{"Rotating chore (25 min)", "Transition (5 min)"}},
		{Name: "Midday Reset", Category: CategoryHealth, Visual: Visual{Icon: "◎", Color: "#81c784", Label: "RESET"}, Required: true,
			Details: []string{"Lunch - mindful, no screens", "Class (optional)", "Nap ~1:30 PM", "Meditation"}},
		{Name: "EXEC-1", Category: CategoryWork, Visual: visualExecute, Details: []string{"Daily editing touchpoint"}},
		{Name: "EXEC-2", Category: CategoryWork, Visual: visualExecute, Details: []string{"Communities PM: second pass, Skool deep"}},
		{Name: "EXEC-3", Category: CategoryWork, Visual: visualExecute, Details: []string{"Pipeline work, admin"}},
		{Name: "EXEC-4", Category: CategoryWork, Visual: visualExecute, Details: []string{"Claude ecosystem improvements"}},
		{Name: "BACKLOG", Category: CategoryWork, Visual: Visual{Icon: "▣", Color: "#78909c", Label: "BACKLOG"},
			Details: []string{"Pull ONE item from High Priority", "Work it, check off"}},
		{Name: "Research", Category: CategoryWork, Visual: Visual{Icon: "◉", Color: "#ab47bc", Label: "RESEARCH"},
			Details: []string{"Watch Later: process 2-3 videos", "Extract golden nuggets"}},
		{Name: "LAB-1", Category: CategoryWork, Visual: visualNightLab, Details: []string{"Watch Later content processing"}},
		{Name: "LAB-2", Category: CategoryWork, Visual: visualNightLab, Details: []string{"Queue renders, exports"}},
		{Name: "LAB-3", Category: CategoryWork, Visual: visualNightLab, Details: []string{"Tech Sprint: micro-tasks"}},
		{Name: "PM Reflection", Category: CategoryWork, Visual: Visual{Icon: "◐", Color: "#78909c", Label: "REFLECT"}},
		{Name: "Family", Category: CategoryFamily, Visual: visualFamily, Details: detailsFamily, Required: true},
		{Name: "Family Time", Category: CategoryFamily, Visual: visualFamily, Details: detailsFamily, Required: true},
		{Name: "Night Restoration", Category: CategoryHealth, Visual: visualRestore, Details: detailsRestore, Required: true},
		{Name: "Wind-Down", Category: CategoryHealth, Visual: visualRestore, Details: detailsRestore, Required: true},
	}

	triggers := map[string][]string{
		"K1": {"Morning Foundation"},
		"K2": {"Creation", "Creation Stack"},
		"K3": {"Workout", "Power Hour"},
		"K4": {"DEV-1"},
		"K5": {"Midday Reset", "Clean Mama"},
		"K6": {"Family", "Family Time"},
		"K7": {"Night Restoration", "Wind-Down"},
	}

	return NewCatalog(entries, triggers, []string{"SOP-"})
}
