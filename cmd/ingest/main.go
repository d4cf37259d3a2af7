package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"degenindex/internal/adapters/config"
	"degenindex/internal/adapters/reddit"
	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/comment"
)

const dividerWidth = 60

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	submissionID := flag.String("submission-id", "", "Reddit submission ID (the alphanumeric string from the URL)")
	limit := flag.Int("limit", 5, "Number of top-level comments to fetch")
	flag.Parse()

	if *submissionID == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --submission-id is required")
		fmt.Fprintln(os.Stderr, "")
		flag.Usage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	if missing := cfg.Reddit.MissingCredentials(); len(missing) > 0 {
		fmt.Println("ERROR: Missing Reddit API credentials.")
		fmt.Printf("Please set %s environment variables.\n", strings.Join(missing, " and "))
		fmt.Println("\nTo get credentials, create an app at: https://www.reddit.com/prefs/apps")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	banner("STAGE 1: INGESTION", "Fetching comments from Reddit...")

	client := reddit.NewClient(cfg.Reddit)
	submission, comments, err := client.Thread(ctx, *submissionID, *limit)
	if err != nil {
		fmt.Printf("ERROR: Could not fetch submission %q\n", *submissionID)
		fmt.Printf("Details: %v\n", err)
		return 1
	}

	fmt.Printf("\nThread: %s\n", submission.Title)
	fmt.Printf("URL: https://reddit.com%s\n", submission.Permalink)
	fmt.Printf("Subreddit: r/%s\n", submission.Subreddit)
	fmt.Printf("Upvotes: %s\n", humanize.Comma(int64(submission.Score)))
	fmt.Printf("\nFetched %d top-level comments\n", len(comments))

	banner("STAGE 2: CLASSIFICATION (heuristic)", "Analyzing sentiment, tickers, and mood...")

	engine := classification.NewEngine(classification.DefaultVocabulary(), nil)

	records := make([]classification.Record, 0, len(comments))
	for i, c := range comments {
		record, err := engine.Classify(ctx, c.Body)
		if err != nil {
			fmt.Printf("ERROR: Could not classify comment %s: %v\n", c.ID, err)
			return 1
		}
		records = append(records, record)
		printClassification(i+1, c, record)
	}

	printSummary(records)
	return 0
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s --submission-id <id> [--limit N]\n\n", os.Args[0])
	fmt.Fprintln(out, "Fetch and classify comments from a Reddit submission.")
	fmt.Fprintln(out, "")
	flag.PrintDefaults()
	fmt.Fprintln(out, `
Examples:
  ingest --submission-id 1k0abc123
  ingest --submission-id 1k0abc123 --limit 10

Environment variables:
  REDDIT_CLIENT_ID      Reddit app client ID
  REDDIT_CLIENT_SECRET  Reddit app client secret
  REDDIT_USER_AGENT     Optional custom user agent (default: DegenIndexDemo/0.1)`)
}

func banner(lines ...string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", dividerWidth))
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println(strings.Repeat("=", dividerWidth))
}

func printClassification(index int, c comment.Comment, record classification.Record) {
	fmt.Printf("\n%s\n", strings.Repeat("=", dividerWidth))
	fmt.Printf("Comment #%d\n", index)
	fmt.Println(strings.Repeat("=", dividerWidth))
	fmt.Printf("Author: u/%s\n", c.AuthorName())
	fmt.Printf("Upvotes: %s\n", humanize.Comma(int64(c.Score)))
	fmt.Printf("Permalink: https://reddit.com%s\n", c.Permalink)
	fmt.Println("\nText (truncated):")
	fmt.Printf("  %q\n", truncate(c.Body, 300))
	fmt.Println("\nClassification:")

	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		fmt.Printf("  (unrenderable: %v)\n", err)
		return
	}
	fmt.Println(string(encoded))
}

func printSummary(records []classification.Record) {
	banner("SUMMARY")

	summary, err := classification.Summarize(records)
	if err != nil {
		fmt.Println("\nNo comments to analyze.")
		return
	}

	tickers := "None"
	if len(summary.UniqueTickers) > 0 {
		tickers = strings.Join(summary.UniqueTickers, ", ")
	}

	fmt.Printf("\nComments analyzed: %d\n", summary.Count)
	fmt.Printf("Unique tickers mentioned: %s\n", tickers)
	fmt.Printf("Sentiment breakdown: %d bullish, %d bearish, %d neutral\n",
		summary.BullishCount, summary.BearishCount, summary.NeutralCount)
	fmt.Printf("Average degen score: %.1f/10\n", summary.AverageDegenScore)

	fmt.Printf("\n%s\n", strings.Repeat("-", dividerWidth))
	fmt.Println("NOTE: This demo uses the heuristic classifier. In production,")
	fmt.Println("an LLM analyzes each comment for more accurate results.")
	fmt.Println(strings.Repeat("-", dividerWidth))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
