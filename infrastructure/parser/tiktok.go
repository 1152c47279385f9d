package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"social-dashboard/domain/model"
	"social-dashboard/infrastructure/clients/apify"
	"social-dashboard/infrastructure/logger"
)

const (
	defaultTikTokActorID = "S5h7zRLfKFEr8pdj7"
	untitledTikTok       = "Untitled TikTok Video"
)

var (
	urlInTextRe    = regexp.MustCompile(`http\S+`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
	titleEmojiRe   = regexp.MustCompile(`[^\w\s#@.,!?-]`)
	tiktokPollWait = RetryPolicy{MaxAttempts: 15, Base: 1.2, Cap: 10 * time.Second}
)

// TikTokExtractor gets video metrics through an Apify scraping actor. The
// actor run is asynchronous: submit, poll until a terminal status, then read
// the run's default dataset.
type TikTokExtractor struct {
	client  *apify.Client
	actorID string
	poll    RetryPolicy

	// sleepFn is swapped out by tests to observe the backoff schedule.
	sleepFn func(ctx context.Context, d time.Duration) error
}

func NewTikTokExtractor(client *apify.Client) *TikTokExtractor {
	return &TikTokExtractor{
		client:  client,
		actorID: defaultTikTokActorID,
		poll:    tiktokPollWait,
		sleepFn: sleep,
	}
}

// WithSleep overrides the poll sleeper, used by tests.
func (e *TikTokExtractor) WithSleep(fn func(ctx context.Context, d time.Duration) error) *TikTokExtractor {
	e.sleepFn = fn
	return e
}

func (e *TikTokExtractor) Platform() model.Platform { return model.PlatformTikTok }

func (e *TikTokExtractor) ValidateURL(rawURL string) bool {
	return ValidateURL(model.PlatformTikTok, rawURL)
}

func (e *TikTokExtractor) Extract(ctx context.Context, rawURL string) (model.MetricsResult, error) {
	res := model.MetricsResult{Platform: model.PlatformTikTok}

	if ExtractID(model.PlatformTikTok, rawURL) == "" {
		return res, fmt.Errorf("%w: %s", ErrUnparseableID, rawURL)
	}

	input := map[string]interface{}{
		"postURLs":                      []string{rawURL},
		"shouldDownloadVideos":          false,
		"shouldDownloadCovers":          false,
		"shouldDownloadSubtitles":       false,
		"shouldDownloadSlideshowImages": false,
		"maxRequestRetries":             3,
		"maxConcurrency":                2,
		"proxyConfiguration":            map[string]interface{}{"useApifyProxy": true},
	}

	runID, err := e.client.StartRun(ctx, e.actorID, input)
	if err != nil {
		return res, wrapExtraction(err)
	}
	logger.GetLogger().WithField("runId", runID).Info("apify run started")

	status, err := e.waitForRun(ctx, runID)
	if err != nil {
		return res, err
	}

	item, err := e.fetchFirstItem(ctx, status.DatasetID)
	if err != nil {
		return res, err
	}

	description := firstString(item, "text", "desc")
	res.Title = cleanTikTokTitle(description)
	res.Owner = firstString(item, "authorMeta.name", "author.nickname")
	res.CreatedTime = firstString(item, "createTime", "createTimeISO")
	for _, g := range hashtagRe.FindAllStringSubmatch(description, -1) {
		res.Hashtags = append(res.Hashtags, g[1])
	}
	if v, ok := firstCount(item, "playCount", "stats.playCount"); ok {
		res.Views = model.Count(v)
	}
	if v, ok := firstCount(item, "likesCount", "diggCount", "stats.diggCount"); ok {
		res.Likes = model.Count(v)
	}
	if v, ok := firstCount(item, "commentsCount", "commentCount", "stats.commentCount"); ok {
		res.Comments = model.Count(v)
	}
	if v, ok := firstCount(item, "shareCount", "stats.shareCount"); ok {
		res.Shares = model.Count(v)
	}
	return res, nil
}

// waitForRun polls the run until it reaches a terminal status. The wait
// before attempt i grows as Base^i seconds so early polls are cheap while
// long runs back off toward the cap.
func (e *TikTokExtractor) waitForRun(ctx context.Context, runID string) (apify.RunStatus, error) {
	var status apify.RunStatus
	for attempt := 0; attempt < e.poll.MaxAttempts; attempt++ {
		if err := e.sleepFn(ctx, e.poll.Delay(attempt)); err != nil {
			return status, err
		}
		var err error
		status, err = e.client.GetRunStatus(ctx, runID)
		if err != nil {
			return status, wrapExtraction(err)
		}
		switch status.Status {
		case apify.StatusSucceeded:
			return status, nil
		case apify.StatusFailed, apify.StatusAborted, apify.StatusTimedOut:
			return status, fmt.Errorf("%w: run ended with status %s", ErrScrapeFailed, status.Status)
		}
	}
	return status, fmt.Errorf("%w: run %s still %s after %d polls", ErrScrapeTimeout, runID, status.Status, e.poll.MaxAttempts)
}

// fetchFirstItem reads the dataset, retrying a few times because items can
// land slightly after the run flips to SUCCEEDED.
func (e *TikTokExtractor) fetchFirstItem(ctx context.Context, datasetID string) (map[string]interface{}, error) {
	if datasetID == "" {
		return nil, fmt.Errorf("%w: run has no dataset", ErrScrapeFailed)
	}
	for i := 0; i < 5; i++ {
		if err := e.sleepFn(ctx, 2*time.Second); err != nil {
			return nil, err
		}
		items, err := e.client.GetDatasetItems(ctx, datasetID)
		if err != nil {
			logger.GetLogger().WithField("datasetId", datasetID).Warn("dataset fetch failed, retrying")
			continue
		}
		if len(items) > 0 {
			return items[0], nil
		}
	}
	return nil, fmt.Errorf("%w: dataset %s stayed empty", ErrScrapeFailed, datasetID)
}

// cleanTikTokTitle turns a raw video description into a short display title:
// links and emoji stripped, whitespace collapsed, truncated to 100 runes.
func cleanTikTokTitle(text string) string {
	text = urlInTextRe.ReplaceAllString(text, "")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = titleEmojiRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return untitledTikTok
	}
	if r := []rune(text); len(r) > 100 {
		text = string(r[:97]) + "..."
	}
	return text
}
