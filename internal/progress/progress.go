// Package progress emits one-way, best-effort progress percentages for a
// supervising process.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/gorilla/websocket"
)

// step is the minimum advance required before Step re-emits.
const step = 0.5

type event struct {
	Percent float64 `json:"percent"`
}

// Reporter prints "[PROGRESS] N.N" lines. Emitted values are clamped to
// [0,100] and never decrease. An optional websocket sink mirrors the events
// as JSON; sink failures never abort the run.
type Reporter struct {
	out  io.Writer
	conn *websocket.Conn
	last float64
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// AttachWebsocket dials wsURL and mirrors progress events to it. A failed
// dial leaves the reporter without a sink.
func (r *Reporter) AttachWebsocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial progress sink: %w", err)
	}
	r.conn = conn
	return nil
}

func (r *Reporter) Close() {
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// Emit reports percent unconditionally, clamped and monotonic.
func (r *Reporter) Emit(percent float64) {
	p := math.Min(math.Max(percent, 0), 100)
	if p < r.last {
		p = r.last
	}
	r.last = p
	fmt.Fprintf(r.out, "[PROGRESS] %.1f\n", p)
	if r.conn != nil {
		if err := r.conn.WriteJSON(event{Percent: p}); err != nil {
			slog.Debug("progress sink write failed", "err", err)
			r.conn.Close()
			r.conn = nil
		}
	}
}

// Step reports percent only when it advances the previous emission by at
// least half a point.
func (r *Reporter) Step(percent float64) {
	p := math.Min(math.Max(percent, 0), 100)
	if p >= r.last+step {
		r.Emit(p)
	}
}
