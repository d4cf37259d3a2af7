package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"degenindex/internal/adapters/config"
	"degenindex/internal/adapters/ratelimit"
	"degenindex/internal/domain/comment"
	"degenindex/internal/metrics"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// Client talks to the Reddit data API using the OAuth client_credentials
// flow of a script-type app. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	cfg        config.RedditConfig
	log        *logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Reddit API client
func NewClient(cfg config.RedditConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimit.NewLimiter("reddit", cfg.RequestsPerMinute),
		cfg:        cfg,
		log:        logger.Get().With("component", "reddit_client"),
	}
}

// Thread fetches a submission together with up to limit top-level comments.
// Collapsed "more" placeholders are skipped, matching a replace_more(limit=0)
// traversal that stops at depth 1.
func (c *Client) Thread(ctx context.Context, submissionID string, limit int) (*comment.Submission, []comment.Comment, error) {
	if limit <= 0 {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "comment limit must be positive")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("depth", "1")

	var listings []listing
	if err := c.get(ctx, "comments", "/comments/"+submissionID, query, &listings); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil, errors.Wrapf(errors.ErrSubmissionNotFound, "id %s", submissionID)
		}
		return nil, nil, err
	}

	return parseThread(listings, limit)
}

// HotSubmissions fetches the current hot submissions of a subreddit
func (c *Client) HotSubmissions(ctx context.Context, subreddit string, limit int) ([]comment.Submission, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var l listing
	if err := c.get(ctx, "hot", fmt.Sprintf("/r/%s/hot", subreddit), query, &l); err != nil {
		return nil, err
	}

	subs := make([]comment.Submission, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != kindSubmission {
			continue
		}
		subs = append(subs, toSubmission(child.Data))
	}
	return subs, nil
}

// parseThread extracts the submission and its top-level comments from the
// two-listing payload of the /comments endpoint
func parseThread(listings []listing, limit int) (*comment.Submission, []comment.Comment, error) {
	if len(listings) < 2 || len(listings[0].Data.Children) == 0 {
		return nil, nil, errors.New("unexpected comments payload shape")
	}

	head := listings[0].Data.Children[0]
	if head.Kind != kindSubmission {
		return nil, nil, errors.Newf("expected submission child, got kind %q", head.Kind)
	}
	sub := toSubmission(head.Data)

	comments := make([]comment.Comment, 0, limit)
	for _, child := range listings[1].Data.Children {
		if child.Kind != kindComment {
			continue
		}
		cm := toComment(child.Data)
		if cm.SubmissionID == "" {
			cm.SubmissionID = sub.ID
		}
		if cm.Subreddit == "" {
			cm.Subreddit = sub.Subreddit
		}
		comments = append(comments, cm)
		if len(comments) == limit {
			break
		}
	}

	return &sub, comments, nil
}

// get performs an authenticated GET against the data API
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("raw_json", "1")

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "create API request")
	}

	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordRedditRequest(endpoint, 0, time.Since(start))
		return errors.Wrap(err, "API request failed")
	}
	defer resp.Body.Close()

	metrics.RecordRedditRequest(endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		c.log.Warnw("API rate limit reached", "endpoint", endpoint)
		return errors.ErrRateLimited
	case http.StatusNotFound:
		return errors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return errors.Newf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "decode API response")
	}
	return nil
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// ensureToken refreshes the OAuth token when missing or near expiry
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return errors.ErrMissingCredentials
	}

	c.log.Debug("Refreshing OAuth token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.TokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return errors.Wrap(err, "create OAuth request")
	}

	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordRedditRequest("token", 0, time.Since(start))
		return errors.Wrap(errors.ErrTokenExchange, err.Error())
	}
	defer resp.Body.Close()

	metrics.RecordRedditRequest("token", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Wrapf(errors.ErrTokenExchange, "status %d: %s", resp.StatusCode, string(body))
	}

	var oauth oauthResponse
	if err := json.NewDecoder(resp.Body).Decode(&oauth); err != nil {
		return errors.Wrap(err, "decode OAuth response")
	}

	c.accessToken = oauth.AccessToken
	// Refresh a minute early so in-flight requests never carry a stale token
	c.tokenExpiry = time.Now().Add(time.Duration(oauth.ExpiresIn)*time.Second - time.Minute)

	c.log.Debugw("OAuth token refreshed", "expires_in", oauth.ExpiresIn)
	return nil
}
