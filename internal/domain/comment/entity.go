package comment

import "time"

// Comment represents a single top-level comment pulled from a submission
type Comment struct {
	ID           string
	SubmissionID string
	Subreddit    string
	Author       *string // nil when the account is deleted or suspended
	Body         string
	Score        int
	CreatedAt    time.Time
	Permalink    string
}

// AuthorName returns the display name, substituting deleted accounts
func (c Comment) AuthorName() string {
	if c.Author == nil || *c.Author == "" {
		return "[deleted]"
	}
	return *c.Author
}

// Submission represents the thread a batch of comments belongs to
type Submission struct {
	ID          string
	Subreddit   string
	Title       string
	Author      *string
	Score       int
	NumComments int
	Permalink   string
	CreatedAt   time.Time
}

// AuthorName returns the display name, substituting deleted accounts
func (s Submission) AuthorName() string {
	if s.Author == nil || *s.Author == "" {
		return "[deleted]"
	}
	return *s.Author
}
