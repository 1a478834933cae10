package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	tailLines = 100

	// Bytes read from the end of the file to find the initial tail.
	tailWindow = 64 << 10
)

// How often the log file is checked for new content.
var logPollInterval = 500 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Message types sent on /ws/logs.
const (
	logInitial = "initial"
	logUpdate  = "update"
	logReset   = "reset"
	logError   = "error"
)

type logMessage struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// LogsWS streams the log file over a websocket (GET /ws/logs). The client
// receives the last lines first, then appended content as it is written.
// A truncated file is sent again from the start as a reset.
func (h *Handlers) LogsWS(w http.ResponseWriter, r *http.Request) {
	if h.logFile == "" {
		writeError(w, http.StatusNotFound, "No log file configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go readPump(conn, closed)

	tail := &logTail{path: h.logFile}
	filename := filepath.Base(h.logFile)

	send := func(kind, content string) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(logMessage{Type: kind, Filename: filename, Content: content})
	}

	initial, err := tail.Initial(tailLines)
	if err != nil {
		h.logger.Warn("reading log tail", "file", h.logFile, "error", err)
		_ = send(logError, "Failed to read log file")
		return
	}
	if err := send(logInitial, initial); err != nil {
		return
	}

	poll := time.NewTicker(logPollInterval)
	ping := time.NewTicker(pingPeriod)
	defer poll.Stop()
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-h.streams.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-poll.C:
			content, truncated, err := tail.Next()
			if err != nil {
				h.logger.Warn("polling log file", "file", h.logFile, "error", err)
				continue
			}
			kind := logUpdate
			if truncated {
				kind = logReset
			} else if content == "" {
				continue
			}
			if err := send(kind, content); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are handled.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// logTail follows a file by offset.
type logTail struct {
	path   string
	offset int64
}

// Initial returns the last n lines and moves the offset to the end.
// A missing file reads as empty.
func (t *logTail) Initial(n int) (string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat log file: %w", err)
	}
	size := info.Size()

	start := max(size-tailWindow, 0)
	buf := make([]byte, size-start)
	if _, err := f.ReadAt(buf, start); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading log file: %w", err)
	}
	t.offset = size

	return lastLines(buf, n, start > 0), nil
}

// Next returns content appended since the last read. When the file has
// shrunk it reports truncated and returns the whole file.
func (t *logTail) Next() (content string, truncated bool, err error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			truncated = t.offset > 0
			t.offset = 0
			return "", truncated, nil
		}
		return "", false, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", false, fmt.Errorf("stat log file: %w", err)
	}

	if info.Size() < t.offset {
		truncated = true
		t.offset = 0
	}
	if info.Size() == t.offset {
		return "", truncated, nil
	}

	buf := make([]byte, info.Size()-t.offset)
	n, err := f.ReadAt(buf, t.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading log file: %w", err)
	}
	t.offset += int64(n)
	return string(buf[:n]), truncated, nil
}

// lastLines keeps the final n lines of buf. partial drops the first line
// when buf starts mid-file.
func lastLines(buf []byte, n int, partial bool) string {
	if partial {
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			buf = buf[i+1:]
		}
	}

	body := bytes.TrimSuffix(buf, []byte("\n"))
	if len(body) == 0 {
		return ""
	}
	lines := bytes.Split(body, []byte("\n"))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return string(bytes.Join(lines, []byte("\n"))) + "\n"
}
