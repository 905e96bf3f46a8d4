// Package sheets talks to the Google Apps Script web app that fronts the
// spreadsheet. The script is an opaque HTTP endpoint: GET with an action
// query returns a JSON array (or an explicit error object), POST takes a
// JSON body sent as plain text with a discriminating action field.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
)

// Apps Script serves these bodies instead of JSON when the deployment is
// broken or the viewer has no access.
var movedMarkers = []string{
	"Temporarily Moved",
	"The document has moved",
	"Page Not Found",
}

const deploymentErrMessage = "Google Sheet 連線失敗：Apps Script 部署或存取權設定有誤，請重新部署（執行身分：我 / 存取權：所有人）。"

// Client implements repository.SheetRepository against one script URL.
type Client struct {
	httpClient *http.Client
	scriptURL  string
	sheetID    string
}

// NewClient builds a sheet client. sheetID is kept for diagnostics only;
// the script URL is the single entry point for both reads and writes.
func NewClient(scriptURL, sheetID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.SheetRequestTimeoutSeconds * time.Second},
		scriptURL:  scriptURL,
		sheetID:    sheetID,
	}
}

var _ repository.SheetRepository = (*Client)(nil)

// FetchOrders returns the raw order rows from the responses sheet.
func (c *Client) FetchOrders(ctx context.Context) ([]entity.SheetRow, error) {
	var rows []entity.SheetRow
	if err := c.fetchArray(ctx, "read", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchProducts returns the product catalog from the Products sheet.
func (c *Client) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.fetchArray(ctx, "getProducts", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchGroups returns the sessions from the Groups sheet.
func (c *Client) FetchGroups(ctx context.Context) ([]entity.GroupSession, error) {
	var groups []entity.GroupSession
	if err := c.fetchArray(ctx, "getGroups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

type newOrderPayload struct {
	Action string `json:"action"`
	entity.OrderSubmission
}

type saveProductsPayload struct {
	Action   string           `json:"action"`
	Products []entity.Product `json:"products"`
}

type saveGroupPayload struct {
	Action string              `json:"action"`
	Group  entity.GroupSession `json:"group"`
}

// SubmitOrder appends one order row via the newOrder action.
func (c *Client) SubmitOrder(ctx context.Context, order entity.OrderSubmission) error {
	return c.post(ctx, newOrderPayload{Action: "newOrder", OrderSubmission: order})
}

// SaveProducts overwrites the whole Products sheet.
func (c *Client) SaveProducts(ctx context.Context, products []entity.Product) error {
	return c.post(ctx, saveProductsPayload{Action: "saveProducts", Products: products})
}

// SaveGroup upserts one row of the Groups sheet.
func (c *Client) SaveGroup(ctx context.Context, group entity.GroupSession) error {
	return c.post(ctx, saveGroupPayload{Action: "saveGroup", Group: group})
}

// fetchArray GETs one collection with a cache-busting query parameter and
// decodes the JSON array into out. Explicit {result:"error"} objects become
// a BackendError; any other non-array JSON becomes ErrNoUpdate.
func (c *Client) fetchArray(ctx context.Context, action string, out any) error {
	u := fmt.Sprintf("%s?action=%s&t=%d", c.scriptURL, action, time.Now().UnixNano())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: %s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sheets: %s status=%d", action, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
	if err != nil {
		return fmt.Errorf("sheets: %s read failed: %w", action, err)
	}

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("sheets: %s decode failed: %w", action, err)
		}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		if backendErr := decodeBackendError(trimmed); backendErr != nil {
			return backendErr
		}
		return repository.ErrNoUpdate
	default:
		if isMovedBody(trimmed) {
			return &repository.BackendError{Message: deploymentErrMessage}
		}
		return fmt.Errorf("sheets: %s returned non-JSON body", action)
	}
}

// post writes a JSON payload as text/plain. The Apps Script contract does
// not promise a readable response body, so any 2xx without a reported error
// counts as accepted.
func (c *Client) post(ctx context.Context, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sheets: post status=%d", resp.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if backendErr := decodeBackendError(bytes.TrimSpace(body)); backendErr != nil {
		return backendErr
	}
	return nil
}

func decodeBackendError(trimmed []byte) *repository.BackendError {
	var report struct {
		Result string `json:"result"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return nil
	}
	if report.Result != "error" {
		return nil
	}
	msg := report.Error
	if msg == "" {
		msg = "未知錯誤"
	}
	return &repository.BackendError{Message: fmt.Sprintf("後端回報錯誤：%s", msg)}
}

func isMovedBody(body []byte) bool {
	for _, marker := range movedMarkers {
		if bytes.Contains(body, []byte(marker)) {
			return true
		}
	}
	return false
}
