// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub provider names accepted in pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// LocalPubSubSubscription is the subscription name stamped on locally pushed messages.
const LocalPubSubSubscription = "projects/local/subscriptions/account-events"
