package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sda-backend/internal/assistant"
)

type AssistantHandler struct {
	Client *assistant.Client
	Live   *assistant.LiveRelay
}

func NewAssistantHandler(client *assistant.Client, live *assistant.LiveRelay) *AssistantHandler {
	return &AssistantHandler{Client: client, Live: live}
}

// Status reports whether the assistant screens can be shown
func (h *AssistantHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"enabled": h.Client.Enabled()})
}

// Chat relays a streaming conversation as server-sent events
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SystemPrompt string                  `json:"system_prompt"`
		Messages     []assistant.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := h.Client.ChatStream(r.Context(), req.SystemPrompt, req.Messages, func(text string) error {
		chunk, err := json.Marshal(map[string]string{"text": text})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if errors.Is(err, assistant.ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		// Stream may be partially written; emit the error as an event
		chunk, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(w, "data: %s\n\n", chunk)
		flusher.Flush()
		return
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// Search answers a product question grounded in web results
func (h *AssistantHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result, err := h.Client.Search(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, assistant.ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GenerateImage renders a product visual for a prompt
func (h *AssistantHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	result, err := h.Client.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, assistant.ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// LiveVoice upgrades to a websocket and relays the live voice session
func (h *AssistantHandler) LiveVoice(w http.ResponseWriter, r *http.Request) {
	h.Live.Handle(w, r)
}
