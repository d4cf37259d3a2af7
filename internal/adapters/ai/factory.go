package ai

import (
	"degenindex/internal/adapters/config"
	"degenindex/internal/domain/classification"
	"degenindex/pkg/errors"
)

// Provider names accepted in AIConfig.Provider
const (
	ProviderHeuristic = "heuristic"
	ProviderOpenAI    = "openai"
)

// NewClassifier builds the configured classifier. The heuristic engine is
// the default and needs no credentials; "openai" requires an API key.
func NewClassifier(cfg config.AIConfig, vocab classification.Vocabulary) (classification.Classifier, error) {
	switch cfg.Provider {
	case "", ProviderHeuristic:
		return classification.NewEngine(vocab, nil), nil
	case ProviderOpenAI:
		return NewOpenAIClassifier(cfg)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownProvider, "%q", cfg.Provider)
	}
}
