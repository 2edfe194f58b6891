// Package handler contains the Pub/Sub push handlers of the account event worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"

	"bookreview/config"
	deliverycontext "bookreview/internal/delivery/context"
	"bookreview/internal/domain/entity"
	"bookreview/internal/domain/repository"
	"bookreview/internal/domain/service"
	"bookreview/internal/errors"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

var knownEventTypes = map[string]struct{}{
	service.AccountRegistered:  {},
	service.AccountRoleGranted: {},
	service.AccountDeleted:     {},
}

// PushHandler records account events pushed by Pub/Sub into the activity trail
type PushHandler struct {
	verifyPushAuth bool
	pushAudience   string
	validateToken  tokenValidator
	logger         *slog.Logger
	activityRepo   repository.AccountActivityRepository
	now            func() time.Time
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config       *config.Config
	Logger       *slog.Logger
	ActivityRepo repository.AccountActivityRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	handler := &PushHandler{
		validateToken: idtoken.Validate,
		logger:        params.Logger,
		activityRepo:  params.ActivityRepo,
		now:           time.Now,
	}
	if params.Config.Worker != nil {
		handler.verifyPushAuth = params.Config.Worker.VerifyPushAuth
		handler.pushAudience = params.Config.Worker.PushAudience
	}

	return handler
}

// HandlePush handles incoming Pub/Sub push messages.
// 2xx acknowledges the message, 503 asks Pub/Sub to redeliver it.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.AccountEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse account event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}
	if event.EventID == "" {
		event.EventID = pushMsg.Message.MessageID
	}
	if err := validateEvent(&event); err != nil {
		// Redelivery cannot fix a malformed event, so it is acknowledged.
		h.logger.Warn("[Worker] Dropping invalid account event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	activity := &entity.AccountActivity{
		EventID:    event.EventID,
		Type:       event.Type,
		Username:   event.Username,
		Role:       event.Role,
		RequestID:  requestID,
		OccurredAt: event.OccurredAt,
		RecordedAt: h.now().UTC(),
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = parsePublishTime(pushMsg.Message.PublishTime, activity.RecordedAt)
	}

	recorded, err := h.activityRepo.Record(ctx, activity)
	if err != nil {
		reqLogger.Error("[Worker] Failed to record account event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	if !recorded {
		reqLogger.Info("[Worker] Duplicate account event ignored", slog.String("event_id", event.EventID))

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Account event recorded",
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.Type),
		slog.String("username", event.Username),
	)

	return c.NoContent(http.StatusOK)
}

func validateEvent(event *service.AccountEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}
	if _, ok := knownEventTypes[event.Type]; !ok {
		return errors.Errorf("unknown event type %q", event.Type)
	}
	if strings.TrimSpace(event.Username) == "" {
		return errors.New("missing username")
	}

	return nil
}

func parsePublishTime(value string, fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}

	return fallback
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.AccountEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// Set by RequestIDMiddleware from the X-Request-Id header.
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.pushAudience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
