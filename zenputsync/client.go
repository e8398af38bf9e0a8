package zenputsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eplcas/cas_backend/config"
	"github.com/sirupsen/logrus"
)

type zenputClient struct {
	baseURL  string
	token    string
	tokenHdr string
	http     *http.Client
	limiter  <-chan time.Time
	pageSize int
}

func newZenputClient() (*zenputClient, error) {
	token := strings.TrimSpace(os.Getenv("ZENPUT_TOKEN"))
	if token == "" {
		return nil, errors.New("zenput api token is empty")
	}
	baseURL := strings.TrimSpace(os.Getenv("ZENPUT_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://www.zenput.com/api/v3"
	}
	tokenHeader := strings.TrimSpace(os.Getenv("ZENPUT_TOKEN_HEADER"))
	if tokenHeader == "" {
		tokenHeader = "X-API-TOKEN"
	}
	rateLimitPerMin := int64(120)
	if v := strings.TrimSpace(os.Getenv("ZENPUT_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			rateLimitPerMin = n
		}
	}
	interval := time.Minute / time.Duration(rateLimitPerMin)

	return &zenputClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		tokenHdr: tokenHeader,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  time.Tick(interval),
		pageSize: 100,
	}, nil
}

type submissionListResponse struct {
	Data []Submission `json:"data"`
}

// FetchSubmissions pages through the submissions endpoint at a fixed page
// size; a short page ends pagination. A transport or HTTP failure is logged
// and aborts pagination, returning what was accumulated so far: Zenput
// flakiness is common and partial data beats blocking forever. Ordering is
// whatever the upstream returns.
func (c *zenputClient) FetchSubmissions(ctx context.Context, formTemplateID int, after *time.Time) []Submission {
	logger := config.GetLogger()
	var all []Submission
	offset := 0

	for {
		page, err := c.fetchPage(ctx, formTemplateID, after, offset)
		if err != nil {
			config.LogError(logger, "zenputsync", "FetchSubmissions", "fetch page",
				map[string]any{"form_template_id": formTemplateID, "offset": offset}, err)
			break
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		logger.WithFields(logrus.Fields{
			"form_template_id": formTemplateID,
			"offset":           offset,
			"count":            len(page),
		}).Info("fetched submissions page")

		if len(page) < c.pageSize {
			break
		}
		offset += c.pageSize
	}
	return all
}

func (c *zenputClient) fetchPage(ctx context.Context, formTemplateID int, after *time.Time, offset int) ([]Submission, error) {
	<-c.limiter

	params := url.Values{}
	params.Set("form_template_id", strconv.Itoa(formTemplateID))
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("offset", strconv.Itoa(offset))
	if after != nil {
		params.Set("date_submitted_after", after.UTC().Format(time.RFC3339))
	}

	endpoint := c.baseURL + "/submissions/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(c.tokenHdr, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("zenput api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed submissionListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Data, nil
}
