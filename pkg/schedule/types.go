package schedule

// Category groups blocks by the part of life they serve.
type Category string

const (
	CategoryHealth Category = "health"
	CategoryWork   Category = "work"
	CategoryFamily Category = "family"
)

// Block is one time segment from the day's schedule table.
type Block struct {
	Time      string   `json:"time"`
	Name      string   `json:"block"`
	Task      string   `json:"task"`
	File      string   `json:"file"`
	Source    string   `json:"source"`
	Done      bool     `json:"done"`
	IsCurrent bool     `json:"is_current"`
	Category  Category `json:"type"`
	Required  bool     `json:"required"`
	Icon      string   `json:"icon"`
	Color     string   `json:"color"`
	Label     string   `json:"label"`
	Details   []string `json:"details"`
}

// Now is the "what should I be doing" section of the board.
type Now struct {
	Block    string   `json:"block"`
	Task     string   `json:"task"`
	File     string   `json:"file"`
	Source   string   `json:"source"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Label    string   `json:"label"`
	Details  []string `json:"details"`
	Category Category `json:"type"`
}

// SOPTask is a block whose file reference is a standard operating procedure.
type SOPTask struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Block string `json:"block"`
}

// RecordingReady holds the per-channel counts from the status line.
type RecordingReady struct {
	CC       int `json:"cc"`
	Pioneers int `json:"pioneers"`
	HA       int `json:"ha"`
	Zendo    int `json:"zendo"`
	Total    int `json:"total"`
}

// Focus is tomorrow's plan from focus.md.
type Focus struct {
	Task     string `json:"task"`
	Action   string `json:"action"`
	OneThing string `json:"one_thing"`
	File     string `json:"file"`
}

// BacklogItem is the next prioritized task from TASKS.md.
type BacklogItem struct {
	Task     string `json:"task"`
	Priority string `json:"priority"`
	Time     string `json:"time"`
	Context  string `json:"context"`
}

// TaskCounts summarizes open priorities and quick wins.
type TaskCounts struct {
	P1Count   int    `json:"p1_count"`
	P2Count   int    `json:"p2_count"`
	QuickWins int    `json:"quick_wins"`
	TopP1     string `json:"top_p1"`
}

// DailyLog holds wins and blockers from the daily log file.
type DailyLog struct {
	Wins       []string `json:"wins"`
	Blockers   []string `json:"blockers"`
	EntryCount int      `json:"entry_count"`
}
