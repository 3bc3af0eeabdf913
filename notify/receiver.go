package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fiware-community/figo/metric"
	"github.com/fiware-community/figo/models"
)

// maxNotificationSize bounds the accepted request body.
const maxNotificationSize = 5 * 1024 * 1024 // 5MB

// RelayedNotification is the message body put on the bus for each received
// notification, one per entity in the payload.
type RelayedNotification struct {
	// ID identifies this relay event.
	ID string `json:"id"`

	// SubscriptionID is the broker subscription that fired.
	SubscriptionID string `json:"subscription_id"`

	// Service and ServicePath carry the tenancy headers of the incoming
	// notification.
	Service     string `json:"service,omitempty"`
	ServicePath string `json:"service_path,omitempty"`

	// ReceivedAt is when the receiver accepted the notification.
	ReceivedAt time.Time `json:"received_at"`

	// Entity is the notified entity.
	Entity models.ContextEntity `json:"entity"`
}

// Receiver is the HTTP endpoint the context broker posts notifications to.
type Receiver struct {
	publisher     Publisher
	subjectPrefix string
	logger        *slog.Logger
	metrics       *metric.Metrics
	now           func() time.Time
}

// ReceiverOption configures a Receiver.
type ReceiverOption func(*Receiver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ReceiverOption {
	return func(r *Receiver) {
		r.logger = logger
	}
}

// WithMetrics enables notification metrics.
func WithMetrics(m *metric.Metrics) ReceiverOption {
	return func(r *Receiver) {
		r.metrics = m
	}
}

// WithClock overrides the receiver's time source.
func WithClock(now func() time.Time) ReceiverOption {
	return func(r *Receiver) {
		r.now = now
	}
}

// NewReceiver creates a receiver that relays notifications through the
// publisher, under subjects of the form "<prefix>.<entity-type>".
func NewReceiver(publisher Publisher, subjectPrefix string, opts ...ReceiverOption) *Receiver {
	r := &Receiver{
		publisher:     publisher,
		subjectPrefix: strings.TrimSuffix(subjectPrefix, "."),
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ServeHTTP implements http.Handler for the notification endpoint. The
// broker expects a quick 2xx; relay failures are answered with 500 so the
// broker's retry logic kicks in.
func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxNotificationSize))
	if err != nil {
		r.metrics.RecordNotification("read_error")
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var msg models.NotifyMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		r.metrics.RecordNotification("decode_error")
		r.logger.Warn("discarding malformed notification", "error", err)
		http.Error(w, "malformed notification", http.StatusBadRequest)
		return
	}

	service := req.Header.Get("fiware-service")
	servicePath := req.Header.Get("fiware-servicepath")

	var relayErr error
	for _, entity := range msg.Data {
		relayed := RelayedNotification{
			ID:             uuid.NewString(),
			SubscriptionID: msg.SubscriptionID,
			Service:        service,
			ServicePath:    servicePath,
			ReceivedAt:     r.now().UTC(),
			Entity:         entity,
		}
		data, err := json.Marshal(relayed)
		if err != nil {
			relayErr = errors.Join(relayErr, err)
			continue
		}
		subject := r.subjectFor(entity.Type)
		if err := r.publisher.Publish(req.Context(), subject, data); err != nil {
			relayErr = errors.Join(relayErr, err)
			continue
		}
		r.metrics.RecordNotification("ok")
		r.logger.Debug("notification relayed",
			"subject", subject,
			"subscription", msg.SubscriptionID,
			"entity", entity.ID)
	}

	if relayErr != nil {
		r.metrics.RecordNotification("publish_error")
		r.logger.Error("notification relay failed",
			"subscription", msg.SubscriptionID,
			"error", relayErr)
		http.Error(w, "relay failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// subjectFor maps an entity type onto a bus subject under the prefix.
// Characters with subject syntax meaning are replaced.
func (r *Receiver) subjectFor(entityType string) string {
	if entityType == "" {
		entityType = "untyped"
	}
	sanitized := strings.Map(func(c rune) rune {
		switch c {
		case '.', '*', '>', ' ':
			return '_'
		}
		return c
	}, entityType)
	return r.subjectPrefix + "." + sanitized
}

// Server wraps the receiver in an HTTP server with lifecycle control.
type Server struct {
	receiver *Receiver
	server   *http.Server
	logger   *slog.Logger
}

// NewServer binds the receiver at path on addr.
func NewServer(addr, path string, receiver *Receiver) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, receiver)
	return &Server{
		receiver: receiver,
		server:   &http.Server{Addr: addr, Handler: mux},
		logger:   receiver.logger,
	}
}

// ListenAndServe blocks serving notifications until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("notification receiver listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
