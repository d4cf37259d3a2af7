package classification

import (
	"context"
	"math/rand/v2"
)

// Classifier turns a raw comment body into a structured Record.
// Implementations must accept any input, including the empty string.
type Classifier interface {
	Classify(ctx context.Context, body string) (Record, error)

	// Name identifies the implementation in archive rows and metrics
	Name() string
}

// MoodSource supplies the random draw used when a comment carries no meme
// language and the mood cannot be inferred from features.
type MoodSource interface {
	Pick(moods []Mood) Mood
}

// processSource draws from the process-wide generator, safe for
// concurrent use across a batch.
type processSource struct{}

func (processSource) Pick(moods []Mood) Mood {
	return moods[rand.IntN(len(moods))]
}

type seededSource struct {
	rng *rand.Rand
}

func (s *seededSource) Pick(moods []Mood) Mood {
	return moods[s.rng.IntN(len(moods))]
}

// SeededMoodSource returns a deterministic source for reproducible runs.
// Not safe for concurrent use; intended for tests and replay.
func SeededMoodSource(seed uint64) MoodSource {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed))}
}
