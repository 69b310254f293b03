// Package stream broadcasts engine generations to browsers over websockets.
package stream

import (
	"encoding/json"
	"time"

	"github.com/san-kum/territory/internal/engine"
)

// Frame is one rendered generation. Pixels holds Width*Height RGB
// triples in row-major order and is base64 encoded on the wire.
type Frame struct {
	Type       string `json:"type"`
	Generation int    `json:"generation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Active     int    `json:"active"`
	Changed    int    `json:"changed"`
	Complete   bool   `json:"complete"`
	Ambient    string `json:"ambient"`
	Pixels     []byte `json:"pixels"`
	ServerTime int64  `json:"serverTime"`
}

// Capture renders the engine's current state.
func Capture(e *engine.Engine, r engine.Report) Frame {
	w, h := e.Width(), e.Height()
	px := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := e.ColorAt(x, y)
			px = append(px, c.R, c.G, c.B)
		}
	}
	return Frame{
		Type:       "frame",
		Generation: r.Generation,
		Width:      w,
		Height:     h,
		Active:     r.Active,
		Changed:    r.Changed,
		Complete:   r.Complete,
		Ambient:    e.Ambient().Hex(),
		Pixels:     px,
		ServerTime: time.Now().UnixMilli(),
	}
}

func (f Frame) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

// Observer publishes a frame every `every` generations and always on the
// final one.
func Observer(h *Hub, every int) engine.Observer {
	if every < 1 {
		every = 1
	}
	return engine.ObserverFunc(func(e *engine.Engine, r engine.Report) {
		if r.Generation%every != 0 && !r.Complete {
			return
		}
		h.Publish(Capture(e, r))
	})
}
