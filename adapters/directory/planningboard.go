package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suaralabs/suara/adapters/cache"
	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

const (
	employeesPath   = "/planningboard/employees"
	allocationsPath = "/planningboard/allocations"
	defaultTimeout  = 15 * time.Second
	memoTTL         = 10 * time.Second
	memoMaxSize     = 128
)

// Config holds configuration for the planningboard Client
// Required fields:
// - BaseURL: root of the planningboard API
// Optional fields:
// - Cookie, Referer, Origin: forwarded on every request (the upstream is
//   cookie-authenticated)
// - Timeout: per-request deadline (default: 15s)
type Config struct {
	BaseURL string
	Cookie  string
	Referer string
	Origin  string
	Timeout time.Duration
}

// Client talks to the planningboard API. GET responses are memoized for a
// short TTL because the employee list changes rarely and one availability
// request fans out into many lookups.
type Client struct {
	baseURL    string
	cookie     string
	referer    string
	origin     string
	httpClient *http.Client
	memo       *cache.Memo
	logger     *zap.Logger
}

// Ensure Client implements the EmployeeDirectory interface
var _ repositories.EmployeeDirectory = (*Client)(nil)

type wireEmployee struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Tags    []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

type employeesResponse struct {
	Data []wireEmployee `json:"data"`
}

// NewClient creates a planningboard client
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("planningboard base URL is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		cookie:     config.Cookie,
		referer:    config.Referer,
		origin:     config.Origin,
		httpClient: &http.Client{Timeout: timeout},
		memo:       cache.NewMemo(memoTTL, memoMaxSize),
		logger:     logger,
	}, nil
}

// Employees returns the full directory.
func (c *Client) Employees(ctx context.Context) ([]domain.Employee, error) {
	wire, err := c.employees(ctx)
	if err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(wire))
	for _, employee := range wire {
		employees = append(employees, domain.Employee{
			ID:      employee.ID,
			Name:    employee.Name,
			Surname: employee.Surname,
		})
	}
	return employees, nil
}

// EmployeesByPractice returns the employees carrying a tag that matches
// practice, case-insensitively.
func (c *Client) EmployeesByPractice(ctx context.Context, practice string) ([]domain.Employee, error) {
	wire, err := c.employees(ctx)
	if err != nil {
		return nil, err
	}

	practice = strings.ToLower(practice)
	var found []domain.Employee
	for _, employee := range wire {
		for _, tag := range employee.Tags {
			if strings.ToLower(tag.Name) == practice {
				found = append(found, domain.Employee{
					ID:      employee.ID,
					Name:    employee.Name,
					Surname: employee.Surname,
				})
				break
			}
		}
	}
	return found, nil
}

// EmployeeAllocation returns one employee's free/occupied summary for a
// date range.
func (c *Client) EmployeeAllocation(ctx context.Context, employeeID int, fromDate, toDate string) (domain.Allocation, error) {
	query := url.Values{}
	query.Set("employee_id", strconv.Itoa(employeeID))
	query.Set("from_date", fromDate)
	query.Set("to_date", toDate)

	body, err := c.get(ctx, allocationsPath, query)
	if err != nil {
		return domain.Allocation{}, err
	}

	var allocation domain.Allocation
	if err := json.Unmarshal(body, &allocation); err != nil {
		return domain.Allocation{}, fmt.Errorf("failed to decode allocation response: %w", err)
	}
	return allocation, nil
}

func (c *Client) employees(ctx context.Context) ([]wireEmployee, error) {
	body, err := c.get(ctx, employeesPath, nil)
	if err != nil {
		return nil, err
	}

	var response employeesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode employees response: %w", err)
	}
	return response.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	if body, ok := c.memo.Get(fullURL); ok {
		return body, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	if c.cookie != "" {
		httpReq.Header.Set("Cookie", c.cookie)
	}
	if c.referer != "" {
		httpReq.Header.Set("Referer", c.referer)
	}
	if c.origin != "" {
		httpReq.Header.Set("Origin", c.origin)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("planningboard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planningboard returned %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read planningboard response: %w", err)
	}

	c.memo.Set(fullURL, body)
	c.logger.Debug("Fetched planningboard resource", zap.String("url", fullURL), zap.Int("bytes", len(body)))

	return body, nil
}
