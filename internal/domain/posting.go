package domain

// Posting is one job listing loaded from the dataset. Immutable after load;
// the vector index owns it for its lifetime.
type Posting struct {
	ID              string
	Title           string
	Skills          []string // normalized skill tokens, first-occurrence order
	SkillsRaw       string   // original skills column value, shown in match output
	Experience      string
	RoleCategory    string
	FunctionalArea  string
	Industry        string
	SalaryRaw       string
	SalaryNumeric   *float64 // derived; nil when not disclosed or unparsable
	ExperienceYears *float64 // derived; nil when unparsable
	Source          string   // source file the row came from
}

// JobMatch is a single retrieval hit: posting display metadata plus a
// similarity score. Derived per query, never persisted.
type JobMatch struct {
	JobTitle       string  `json:"job_title"`
	Skills         string  `json:"skills"`
	Experience     string  `json:"experience"`
	RoleCategory   string  `json:"role_category"`
	Industry       string  `json:"industry"`
	Salary         string  `json:"salary"`
	RelevanceScore float64 `json:"relevance_score"` // in [0,1], non-increasing with Rank
	Rank           int     `json:"rank"`
}
