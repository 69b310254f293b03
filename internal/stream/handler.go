package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Command is a control message sent by a browser.
type Command struct {
	Type string `json:"type"` // pause, resume, step or reset
}

// Handler upgrades requests to websockets and attaches them to a Hub.
// Commands from clients are delivered on Commands without blocking; a
// command is dropped when nobody is ready to receive it.
type Handler struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
	commands chan Command
}

func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		commands: make(chan Command, 16),
	}
}

func (h *Handler) Commands() <-chan Command { return h.commands }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id, err := h.hub.Subscribe(conn)
	if err != nil {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Disconnect(id)
			return
		}

		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			h.logger.Debug("discarding malformed message", "id", id, "err", err)
			continue
		}
		select {
		case h.commands <- cmd:
		default:
		}
	}
}

// Mux serves the viewer page at / and the websocket at /ws.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(viewerPage))
	})
	return mux
}

const viewerPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>territory</title>
<style>
body { background: #0a0a0a; color: #ccc; font-family: monospace; }
canvas { image-rendering: pixelated; width: 80vmin; height: 80vmin; }
</style>
</head>
<body>
<canvas id="grid"></canvas>
<div id="stats"></div>
<button onclick="send('pause')">pause</button>
<button onclick="send('resume')">resume</button>
<button onclick="send('step')">step</button>
<button onclick="send('reset')">reset</button>
<script>
const canvas = document.getElementById("grid");
const ctx = canvas.getContext("2d");
const stats = document.getElementById("stats");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
function send(type) { ws.send(JSON.stringify({type})); }
ws.onmessage = (ev) => {
  const f = JSON.parse(ev.data);
  const raw = atob(f.pixels);
  canvas.width = f.width; canvas.height = f.height;
  const img = ctx.createImageData(f.width, f.height);
  for (let i = 0, j = 0; i < raw.length; i += 3, j += 4) {
    img.data[j] = raw.charCodeAt(i);
    img.data[j+1] = raw.charCodeAt(i+1);
    img.data[j+2] = raw.charCodeAt(i+2);
    img.data[j+3] = 255;
  }
  ctx.putImageData(img, 0, 0);
  stats.textContent = "gen " + f.generation + "  active " + f.active + "  changed " + f.changed + (f.complete ? "  complete" : "");
};
</script>
</body>
</html>
`
