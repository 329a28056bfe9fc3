package model

// ================ Config ================
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"24h"`
}

type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.0"`
}

type DrafterModelConfig struct {
	Model       string  `envconfig:"DRAFTER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"DRAFTER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"DRAFTER_TEMPERATURE" default:"0.4"`
}

type StorageConfig struct {
	// LocalDir is the directory local draft saves land in.
	LocalDir string `envconfig:"STORAGE_LOCAL_DIR" default:"drafts"`
	// RemoteBucket names the bucket used when a save targets remote storage.
	RemoteBucket string `envconfig:"STORAGE_REMOTE_BUCKET" default:"replypilot-drafts"`
}
