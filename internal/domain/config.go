package domain

// KeyPrefix namespaces every Redis key written by this service.
const KeyPrefix = "careerlens:"

// DefaultCollection is the fixed name of the persisted job index.
const DefaultCollection = "job_database"

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model      string
	Dimensions int
}

// DefaultVectorConfig returns defaults tuned for all-MiniLM-L6-v2 width
// served through an OpenAI-compatible endpoint.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:      "all-MiniLM-L6-v2",
		Dimensions: 384,
	}
}
