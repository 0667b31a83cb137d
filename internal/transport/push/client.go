package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const notificationImage = "/img/Logo.svg"

// Client sends mobile push notifications through the FCM HTTP endpoint.
// Failures are per token; the caller decides what to do with them.
type Client struct {
	url       string
	serverKey string
	http      *http.Client
}

func NewClient(url, serverKey string) *Client {
	return &Client{
		url:       url,
		serverKey: serverKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushRequest struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type pushResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(pushRequest{
		To: token,
		Notification: pushNotification{
			Title: title,
			Body:  body,
			Image: notificationImage,
		},
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call push provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	var out pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}

	if out.Failure > 0 {
		return fmt.Errorf("push provider rejected token")
	}
	return nil
}
