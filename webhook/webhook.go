// Package webhook posts Discord-style messages to a configured webhook URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
)

var ErrWebhook = errors.New("webhook error")

type Message struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Footer struct {
	Text string `json:"text"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return NewClientCustom(http.DefaultClient)
}

func NewClientCustom(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Send posts the message. Anything other than a 2xx response is an error.
func (c *Client) Send(ctx context.Context, url string, message Message) error {
	var payloadBuf bytes.Buffer
	if err := json.NewEncoder(&payloadBuf).Encode(message); err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &payloadBuf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBytes, _ := httputil.DumpResponse(resp, true)
		log.Printf("received bad webhook response:\n%s", string(respBytes))
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrWebhook)
	}
	return nil
}
