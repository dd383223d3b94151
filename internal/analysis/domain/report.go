package domain

import "time"

// PeakHour is an hour-of-day bucket ranked by completion density.
type PeakHour struct {
	Hour        int     `json:"hour"`
	Completions int     `json:"completions"`
	Density     float64 `json:"density"`
}

// ProductivityReport is the output aggregate of one analysis. All score
// fields are in [0,1]; the report is never mutated after construction.
type ProductivityReport struct {
	UserID               string     `json:"user_id"`
	WindowStart          time.Time  `json:"window_start"`
	WindowEnd            time.Time  `json:"window_end"`
	SampleSize           int        `json:"sample_size"`
	CompletionRate       float64    `json:"completion_rate"`
	ProductivityScore    float64    `json:"productivity_score"`
	ProcrastinationScore float64    `json:"procrastination_score"`
	ConsistencyScore     float64    `json:"consistency_score"`
	PeakHours            []PeakHour `json:"peak_hours"`
	Recommendations      []string   `json:"recommendations"`
}
