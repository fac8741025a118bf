// Package analytics wraps the PostHog client so event tracking degrades to a
// no-op when no API key is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// ClientWrapper guards a posthog.Client that may be absent when tracking is
// disabled. All methods are safe to call on an uninitialized wrapper.
type ClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializeClient creates the tracking client. An empty API key yields a
// disabled wrapper instead of an error.
func InitializeClient(apiKey string, logger *slog.Logger) *ClientWrapper {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, event tracking disabled.")
		return &ClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client, event tracking disabled.", slog.String("error", err.Error()))
		return &ClientWrapper{}
	}
	logger.Info("PostHog event tracking enabled.")
	return &ClientWrapper{client: client, logger: logger}
}

// IsInitialized reports whether events will actually be sent.
func (w *ClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue records one event for the given actor. Disabled wrappers drop the
// event silently.
func (w *ClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Error("Failed to enqueue tracking event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (w *ClientWrapper) Close() {
	if w.client == nil {
		return
	}
	if err := w.client.Close(); err != nil && w.logger != nil {
		w.logger.Error("Failed to close PostHog client", slog.String("error", err.Error()))
	}
}
