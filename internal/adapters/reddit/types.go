package reddit

import (
	"strings"
	"time"

	"degenindex/internal/domain/comment"
)

// Reddit API OAuth response
type oauthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// Listing envelope shared by all listing endpoints
type listing struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
	After    string  `json:"after"`
}

// thing is one child of a listing. Kind discriminates: t1 comment,
// t3 submission, "more" collapsed-comment placeholder.
type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

// thingData is the superset of the t1 and t3 fields used here
type thingData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Body        string  `json:"body"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	LinkID      string  `json:"link_id"` // t3_<submission id> on comments
}

const (
	kindComment    = "t1"
	kindSubmission = "t3"
)

func (d thingData) author() *string {
	if d.Author == "" || d.Author == "[deleted]" {
		return nil
	}
	a := d.Author
	return &a
}

func (d thingData) created() time.Time {
	return time.Unix(int64(d.CreatedUTC), 0).UTC()
}

func toSubmission(d thingData) comment.Submission {
	return comment.Submission{
		ID:          d.ID,
		Subreddit:   d.Subreddit,
		Title:       d.Title,
		Author:      d.author(),
		Score:       d.Score,
		NumComments: d.NumComments,
		Permalink:   d.Permalink,
		CreatedAt:   d.created(),
	}
}

func toComment(d thingData) comment.Comment {
	return comment.Comment{
		ID:           d.ID,
		SubmissionID: strings.TrimPrefix(d.LinkID, "t3_"),
		Subreddit:    d.Subreddit,
		Author:       d.author(),
		Body:         d.Body,
		Score:        d.Score,
		CreatedAt:    d.created(),
		Permalink:    d.Permalink,
	}
}
