package stats

// Stat is the summary of the values recorded under one name. Collectors may
// summarise Min, Max, Mean and Median over the latest values only.
type Stat struct {
	Count  int     `json:"count"`
	Sum    int64   `json:"sum"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// Last is the most recently recorded value.
	Last int64 `json:"last"`
}

// Stats maps stat names to their summaries.
type Stats map[string]*Stat
