package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"sda-backend/internal/config"
)

// ErrNotConfigured is returned when no API key is set; handlers map it to
// 503 so the rest of the app keeps working without the assistant screens.
var ErrNotConfigured = errors.New("assistant API key not configured")

// ChatMessage is one turn of an assistant conversation
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// SearchSource is one grounding citation from a web-backed answer
type SearchSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult is a web-grounded answer with its citations
type SearchResult struct {
	Answer  string         `json:"answer"`
	Sources []SearchSource `json:"sources"`
}

// ImageResult carries one generated image as base64 data
type ImageResult struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Text     string `json:"text,omitempty"`
}

// Client is a thin pass-through to the Gemini REST API. Retries with
// backoff on transient upstream failures.
type Client struct {
	cfg  *config.Config
	http *retryablehttp.Client
}

func NewClient(cfg *config.Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil

	return &Client{cfg: cfg, http: retryClient}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool {
	return c.cfg.Assistant.APIKey != ""
}

func (c *Client) endpoint(model, method string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s?key=%s",
		c.cfg.Assistant.BaseURL, model, method, c.cfg.Assistant.APIKey)
}

func contentsFromMessages(messages []ChatMessage) []map[string]any {
	contents := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]any{{"text": m.Text}},
		})
	}
	return contents
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(respBody, "error.message").String()
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("assistant upstream error: %s", msg)
	}
	return respBody, nil
}

// ChatStream relays a streaming chat completion. Each text chunk is passed
// to emit as it arrives from the upstream SSE stream.
func (c *Client) ChatStream(ctx context.Context, systemPrompt string, messages []ChatMessage, emit func(text string) error) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	payload := map[string]any{
		"contents": contentsFromMessages(messages),
	}
	if systemPrompt != "" {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]any{{"text": systemPrompt}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := c.endpoint(c.cfg.Assistant.ChatModel, "streamGenerateContent") + "&alt=sse"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		msg := gjson.GetBytes(respBody, "error.message").String()
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("assistant upstream error: %s", msg)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		chunk := strings.TrimPrefix(line, "data: ")
		text := gjson.Get(chunk, "candidates.0.content.parts.0.text").String()
		if text == "" {
			continue
		}
		if err := emit(text); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Search answers a query grounded in web search results
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]any{{"text": query}}},
		},
		"tools": []map[string]any{
			{"google_search": map[string]any{}},
		},
	}

	respBody, err := c.post(ctx, c.endpoint(c.cfg.Assistant.ChatModel, "generateContent"), payload)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Answer:  gjson.GetBytes(respBody, "candidates.0.content.parts.0.text").String(),
		Sources: []SearchSource{},
	}
	chunks := gjson.GetBytes(respBody, "candidates.0.groundingMetadata.groundingChunks")
	chunks.ForEach(func(_, chunk gjson.Result) bool {
		result.Sources = append(result.Sources, SearchSource{
			Title: chunk.Get("web.title").String(),
			URI:   chunk.Get("web.uri").String(),
		})
		return true
	})
	return result, nil
}

// GenerateImage renders one image for a prompt
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	}

	respBody, err := c.post(ctx, c.endpoint(c.cfg.Assistant.ImageModel, "generateContent"), payload)
	if err != nil {
		return nil, err
	}

	result := &ImageResult{}
	parts := gjson.GetBytes(respBody, "candidates.0.content.parts")
	parts.ForEach(func(_, part gjson.Result) bool {
		if data := part.Get("inlineData.data"); data.Exists() {
			result.Data = data.String()
			result.MimeType = part.Get("inlineData.mimeType").String()
		} else if text := part.Get("text"); text.Exists() {
			result.Text = text.String()
		}
		return true
	})
	if result.Data == "" {
		return nil, fmt.Errorf("assistant returned no image")
	}
	return result, nil
}
