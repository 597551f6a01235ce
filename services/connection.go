package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bellapacxx/bingo-client/config"
	"github.com/bellapacxx/bingo-client/models"
	"github.com/bellapacxx/bingo-client/utils/logger"
	"github.com/gorilla/websocket"
)

// Transport is what the engine needs from the connection layer. Kept
// narrow so engine tests can run against a fake.
type Transport interface {
	Send(v any)
	IsOpen() bool
	Connect()
	Close()
}

// Connection owns the duplex websocket, the reconnect policy and the
// liveness probe. Inbound frames are handed to the bound handler in
// receipt order; each reconnect is a resynchronization point, never a
// resume point, so the open callback replays identity every time.
type Connection struct {
	url          string
	baseDelay    time.Duration
	maxDelay     time.Duration
	maxAttempts  int
	pingInterval time.Duration

	handler    func([]byte)
	onOpen     func()
	onClose    func()
	onTerminal func()

	mu       sync.Mutex
	conn     *websocket.Conn
	send     chan []byte
	open     bool
	running  bool
	stopped  bool
	attempts int
	stop     chan struct{}
	done     chan struct{}
}

func NewConnection(cfg config.Config) *Connection {
	return &Connection{
		url:          cfg.ServerURL,
		baseDelay:    cfg.ReconnectBase,
		maxDelay:     cfg.ReconnectCap,
		maxAttempts:  cfg.ReconnectMaxAttempts,
		pingInterval: cfg.PingInterval,
	}
}

// Bind registers the inbound handler and lifecycle callbacks. Must be
// called before Connect.
func (c *Connection) Bind(handler func([]byte), onOpen, onClose, onTerminal func()) {
	c.handler = handler
	c.onOpen = onOpen
	c.onClose = onClose
	c.onTerminal = onTerminal
}

// Connect starts the dial loop. Calling it again after a terminal failure
// or an explicit Close starts a fresh loop with the attempt counter reset.
// A Connect racing a just-issued Close waits for the old loop to drain
// before restarting, so the new loop is never silently swallowed.
func (c *Connection) Connect() {
	c.mu.Lock()
	for c.running {
		if !c.stopped {
			c.mu.Unlock()
			return
		}
		done := c.done
		c.mu.Unlock()
		<-done
		c.mu.Lock()
	}
	c.running = true
	c.stopped = false
	c.attempts = 0
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.run(done)
}

func (c *Connection) run(done chan struct{}) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(done)
	}()

	for {
		conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			logger.Warnf("[ws] dial %s failed: %v", c.url, err)
			if !c.backoff() {
				return
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.send = make(chan []byte, 32)
		c.open = true
		c.attempts = 0
		stop := c.stop
		send := c.send
		c.mu.Unlock()

		logger.Infof("[ws] connected to %s", c.url)
		go c.writePump(conn, send, stop)
		if c.onOpen != nil {
			c.onOpen()
		}

		c.readPump(conn)

		c.mu.Lock()
		c.open = false
		c.conn = nil
		close(send)
		stopped := c.stopped
		c.mu.Unlock()

		if c.onClose != nil {
			c.onClose()
		}
		if stopped {
			return
		}
		if !c.backoff() {
			return
		}
	}
}

// backoff sleeps min(base*2^attempt, cap) before the next dial. It returns
// false once attempts are exhausted or the connection was closed, after
// reporting the terminal failure.
func (c *Connection) backoff() bool {
	c.mu.Lock()
	c.attempts++
	attempt := c.attempts
	stop := c.stop
	c.mu.Unlock()

	if attempt > c.maxAttempts {
		logger.Errorf("[ws] giving up after %d reconnect attempts", c.maxAttempts)
		if c.onTerminal != nil {
			c.onTerminal()
		}
		return false
	}

	delay := c.baseDelay << (attempt - 1)
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	logger.Infof("[ws] reconnecting in %v (%d/%d)", delay, attempt, c.maxAttempts)

	select {
	case <-time.After(delay):
		return true
	case <-stop:
		return false
	}
}

func (c *Connection) readPump(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[ws] closed by server")
			} else {
				logger.Warnf("[ws] read error: %v", err)
			}
			return
		}

		func(msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[ws] recovered handling message: %v", r)
				}
			}()
			if c.handler != nil {
				c.handler(msg)
			}
		}(message)
	}
}

func (c *Connection) writePump(conn *websocket.Conn, send chan []byte, stop chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	defer conn.Close()

	ping, _ := json.Marshal(models.PingMsg{Type: "ping"})
	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warnf("[ws] write error: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				logger.Warnf("[ws] ping error: %v", err)
				return
			}
		case <-stop:
			return
		}
	}
}

// Send marshals and enqueues an outbound record. Records are silently
// dropped, with a diagnostic, when the transport is not open.
func (c *Connection) Send(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("[ws] marshal %T: %v", v, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		logger.Debugf("[ws] dropping %T, transport closed", v)
		return
	}
	select {
	case c.send <- b:
	default:
		logger.Warnf("[ws] send buffer full, dropping %T", v)
	}
}

func (c *Connection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Close cancels any pending reconnect timer and tears down the socket.
// Used by the explicit leave action.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.stopped || c.stop == nil {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	close(c.stop)
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}
