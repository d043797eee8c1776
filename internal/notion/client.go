package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
)

// Client is a thin Notion REST client. It performs exactly one HTTP call per
// method invocation; retries belong to the caller.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the given API base URL and integration token
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader(HeaderVersion, APIVersion).
		SetHeader("Content-Type", "application/json").
		SetTimeout(DefaultTimeout)
	return &Client{http: c}
}

// GetDatabase retrieves a database with its property schema
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, pathDatabase, databaseID, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// UpdateDatabase patches database properties. properties is keyed by
// property name, each value in API wire shape.
func (c *Client) UpdateDatabase(ctx context.Context, databaseID string, properties map[string]any) (*Database, error) {
	var db Database
	body := updateDatabaseRequest{Properties: properties}
	if err := c.do(ctx, http.MethodPatch, pathDatabase, databaseID, body, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryDatabase runs a filtered query and returns the first page of results
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) ([]Page, error) {
	if q.PageSize <= 0 || q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, pathDatabaseQuery, databaseID, q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CreatePage creates a row in the database
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	var page Page
	body := createPageRequest{Parent: parent{DatabaseID: databaseID}, Properties: props}
	if err := c.do(ctx, http.MethodPost, pathPages, "", body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage patches the properties of an existing row
func (c *Client) UpdatePage(ctx context.Context, pageID string, props Properties) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPatch, pathPage, pageID, updatePageRequest{Properties: props}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUsers returns every workspace user, following cursors
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	cursor := ""
	for {
		req := c.http.R().SetQueryParam("page_size", strconv.Itoa(MaxPageSize))
		if cursor != "" {
			req.SetQueryParam("start_cursor", cursor)
		}
		var resp usersResponse
		if err := c.send(ctx, req, http.MethodGet, pathUsers, &resp); err != nil {
			return nil, err
		}
		users = append(users, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return users, nil
		}
		cursor = *resp.NextCursor
	}
}

// Me returns the bot user behind the token
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, pathMe, "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) do(ctx context.Context, method, path, id string, body, result any) error {
	req := c.http.R()
	if id != "" {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetBody(body)
	}
	return c.send(ctx, req, method, path, result)
}

func (c *Client) send(ctx context.Context, req *resty.Request, method, path string, result any) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		metrics.ObserveRemote(ServiceName, method, 0, time.Since(start))
		log.Warn(LogMsgRequestFailed, "method", method, "path", path, "error", err)
		return transportError(ctx, method+" "+path, err)
	}
	metrics.ObserveRemote(ServiceName, method, resp.StatusCode(), time.Since(start))
	log.Debug(LogMsgRequest, "method", method, "path", path, "status", resp.StatusCode())

	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode()}
		// A body that is not a Notion error object still yields a classified error.
		_ = json.Unmarshal(resp.Body(), apiErr)
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		apiErr.RetryAfter = parseRetryAfter(resp.Header().Get(HeaderRetryAfter))
		log.Warn(LogMsgRequestFailed, "method", method, "path", path, "status", apiErr.Status, "code", apiErr.Code, "error", apiErr.Message)
		return apiErr
	}

	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%w: notion %s %s: decode response: %v", domain.ErrTransient, method, path, err)
	}
	return nil
}
