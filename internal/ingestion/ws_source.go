package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/observability"
)

// WSConfig configures the live telemetry tap.
type WSConfig struct {
	// ReconnectDelay is the initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay caps the backoff between reconnect attempts.
	MaxReconnectDelay time.Duration
	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration
	// ReadTimeout is the per-message read deadline.
	ReadTimeout time.Duration
}

// DefaultWSConfig returns the default tap configuration.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		ReadTimeout:       60 * time.Second,
	}
}

// trackingMessage is the wire format of one telemetry feed message.
type trackingMessage struct {
	ID         string  `json:"id"`
	ActorID    string  `json:"actor_id"`
	TargetID   string  `json:"target_id"`
	ShopID     string  `json:"shop_id"`
	ActionType string  `json:"action_type"`
	TargetType string  `json:"target_type"`
	CreatedAt  int64   `json:"created_at"`
	VisitedAts []int64 `json:"visited_ats"`
}

// WSTelemetrySource delivers live behavioral events from the tracking feed.
type WSTelemetrySource struct {
	endpoint string
	config   WSConfig
	logger   *log.Logger
}

// NewWSTelemetrySource creates a live telemetry source for the endpoint.
func NewWSTelemetrySource(endpoint string, config *WSConfig, logger *log.Logger) *WSTelemetrySource {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WSTelemetrySource{endpoint: endpoint, config: cfg, logger: logger}
}

// Subscribe returns a channel of raw behavioral events from the live feed.
// The connection is re-established with exponential backoff on failure; the
// channel is closed when the context is cancelled.
func (s *WSTelemetrySource) Subscribe(ctx context.Context) (<-chan *domain.RawBehavioralEvent, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	eventsCh := make(chan *domain.RawBehavioralEvent, 100)

	go func() {
		defer close(eventsCh)
		defer conn.Close()

		delay := s.config.ReconnectDelay
		for {
			if err := s.readLoop(ctx, conn, eventsCh); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Printf("[ws-tap] read loop ended, reconnecting in %v: %v", delay, err)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			conn.Close()
			observability.RecordWSReconnect()
			next, err := s.dial(ctx)
			if err != nil {
				s.logger.Printf("[ws-tap] reconnect failed: %v", err)
				delay *= 2
				if delay > s.config.MaxReconnectDelay {
					delay = s.config.MaxReconnectDelay
				}
				continue
			}
			conn = next
			delay = s.config.ReconnectDelay
		}
	}()

	return eventsCh, nil
}

func (s *WSTelemetrySource) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: s.config.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", s.endpoint, err)
	}
	s.logger.Printf("[ws-tap] connected to %s", s.endpoint)
	return conn, nil
}

// readLoop reads feed messages until the connection or context fails.
func (s *WSTelemetrySource) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- *domain.RawBehavioralEvent) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.config.ReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
				return fmt.Errorf("set read deadline: %w", err)
			}
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		observability.RecordTrackingEventReceived()

		var msg trackingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			observability.RecordTrackingEventDropped("undecodable")
			s.logger.Printf("[ws-tap] dropping undecodable message: %v", err)
			continue
		}
		if msg.ID == "" || msg.TargetID == "" {
			observability.RecordTrackingEventDropped("missing_id")
			s.logger.Printf("[ws-tap] dropping message without id/target")
			continue
		}

		event := &domain.RawBehavioralEvent{
			ID:         msg.ID,
			ActorID:    msg.ActorID,
			TargetID:   msg.TargetID,
			ShopID:     msg.ShopID,
			ActionType: msg.ActionType,
			TargetType: msg.TargetType,
			CreatedAt:  msg.CreatedAt,
			VisitedAts: msg.VisitedAts,
		}

		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
