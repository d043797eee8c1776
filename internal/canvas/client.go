package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tomnomnom/linkheader"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
)

// Client reads courses and assignments from the Canvas REST API.
// Every GET is retried under the policy; Canvas reads are idempotent.
type Client struct {
	http   *resty.Client
	policy retry.Policy
}

// NewClient creates a client for a Canvas instance, e.g. https://school.instructure.com
func NewClient(baseURL, token string, policy retry.Policy) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetTimeout(DefaultTimeout)
	return &Client{http: c, policy: policy}
}

// get fetches one resource and decodes it into result. It returns the next
// page URL from the Link header, if any.
func (c *Client) get(ctx context.Context, path string, pathID string, params url.Values, result any) (string, error) {
	res := retry.Do(ctx, c.policy, "canvas GET "+path, func(ctx context.Context) (string, error) {
		return c.getOnce(ctx, path, pathID, params, result)
	})
	return res.Value, res.Err
}

func (c *Client) getOnce(ctx context.Context, path string, pathID string, params url.Values, result any) (string, error) {
	log := logger.FromContext(ctx)
	req := c.http.R().SetContext(ctx)
	if pathID != "" {
		req.SetPathParam("id", pathID)
	}
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}

	start := time.Now()
	resp, err := req.Get(path)
	if err != nil {
		metrics.ObserveRemote(ServiceName, http.MethodGet, 0, time.Since(start))
		log.Warn(LogMsgRequestFailed, "path", path, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: canvas GET %s: %v", domain.ErrTransient, path, err)
	}
	metrics.ObserveRemote(ServiceName, http.MethodGet, resp.StatusCode(), time.Since(start))
	log.Debug(LogMsgRequest, "path", path, "status", resp.StatusCode())

	if resp.IsError() {
		var body apiError
		_ = json.Unmarshal(resp.Body(), &body)
		msg := body.text()
		if msg == "" {
			msg = resp.Status()
		}
		log.Warn(LogMsgRequestFailed, "path", path, "status", resp.StatusCode(), "error", msg)
		return "", fmt.Errorf("%w: canvas GET %s: %d %s", classify(resp.StatusCode()), path, resp.StatusCode(), msg)
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return "", fmt.Errorf("%w: canvas GET %s: decode response: %v", domain.ErrTransient, path, err)
	}
	return nextLink(resp.Header().Get("Link")), nil
}

// getAll follows rel="next" links until the collection is exhausted.
// Query parameters only go on the first request; next links carry them.
func getAll[T any](ctx context.Context, c *Client, path, pathID string, params url.Values) ([]T, error) {
	var all []T
	next := path
	first := true
	for next != "" {
		var page []T
		var p url.Values
		id := ""
		if first {
			p, id = params, pathID
		}
		link, err := c.get(ctx, next, id, p, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = link
		first = false
	}
	return all, nil
}

func nextLink(header string) string {
	if header == "" {
		return ""
	}
	for _, l := range linkheader.Parse(header).FilterByRel("next") {
		return l.URL
	}
	return ""
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.ErrAuth
	case status == http.StatusForbidden:
		return domain.ErrPermission
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return domain.ErrTransient
	default:
		return domain.ErrValidation
	}
}

func pageParams() url.Values {
	v := url.Values{}
	v.Set("per_page", strconv.Itoa(PageSize))
	return v
}
