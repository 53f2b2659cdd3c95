package assistant

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"sda-backend/internal/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveRelay bridges a browser websocket to the live voice API. Frames are
// forwarded verbatim in both directions; the API key never reaches the
// client.
type LiveRelay struct {
	cfg *config.Config
}

func NewLiveRelay(cfg *config.Config) *LiveRelay {
	return &LiveRelay{cfg: cfg}
}

// Enabled reports whether an API key is configured
func (l *LiveRelay) Enabled() bool {
	return l.cfg.Assistant.APIKey != ""
}

func (l *LiveRelay) upstreamURL() string {
	base := strings.Replace(l.cfg.Assistant.BaseURL, "https://", "wss://", 1)
	return fmt.Sprintf("%s/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent?key=%s",
		base, l.cfg.Assistant.APIKey)
}

// Handle upgrades the client connection and pumps frames between client
// and upstream until either side closes.
func (l *LiveRelay) Handle(w http.ResponseWriter, r *http.Request) {
	if !l.Enabled() {
		http.Error(w, "assistant not configured", http.StatusServiceUnavailable)
		return
	}

	client, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live] WebSocket upgrade error: %v", err)
		return
	}
	defer client.Close()

	upstream, _, err := websocket.DefaultDialer.Dial(l.upstreamURL(), nil)
	if err != nil {
		log.Printf("[Live] Upstream dial error: %v", err)
		client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "upstream unavailable"))
		return
	}
	defer upstream.Close()

	var once sync.Once
	done := make(chan struct{})
	closeBoth := func() {
		once.Do(func() {
			close(done)
			client.Close()
			upstream.Close()
		})
	}

	go pump(client, upstream, closeBoth)
	go pump(upstream, client, closeBoth)
	<-done
}

func pump(src, dst *websocket.Conn, closeBoth func()) {
	defer closeBoth()
	for {
		msgType, data, err := src.ReadMessage()
		if err != nil {
			return
		}
		if err := dst.WriteMessage(msgType, data); err != nil {
			return
		}
	}
}
