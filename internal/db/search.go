package db

// ScoreField is the FT.SEARCH alias carrying the KNN distance for each hit.
const ScoreField = "__vector_score"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64 // similarity in [0,1] (1 - cosine distance, clamped)
	Fields map[string]string
}
