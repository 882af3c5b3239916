// internal/settlement/client.go
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Client posts match results to the external settlement/payout service. The
// call is best-effort: a failed notification is logged by the caller and the
// game result stands regardless.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClientFromEnv builds a client from SETTLEMENT_URL. An empty URL yields a
// disabled client whose NotifyWin is a no-op.
func NewClientFromEnv() *Client {
	return &Client{
		baseURL: os.Getenv("SETTLEMENT_URL"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a settlement endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type winNotification struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// NotifyWin reports the winning player's persistent identity for the room.
// No retries: a lost notification is a known gap handled out of band.
func (c *Client) NotifyWin(ctx context.Context, roomID string, winnerUserID uuid.UUID) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(winNotification{RoomID: roomID, UserID: winnerUserID.String()})
	if err != nil {
		return fmt.Errorf("encode win notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build win notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("post win notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("settlement service responded %d", resp.StatusCode)
	}
	return nil
}
