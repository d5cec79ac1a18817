package server

import "github.com/inference-gateway/adk/types"

// CapabilityGate enforces that a request against a method gated by an
// advertised capability is only delegated to the request handler when the
// agent card actually advertises that capability. Grounded on the reference
// implementation's GRPCHandler.ensure_streaming_supported /
// ensure_push_supported helpers (original_source/.../grpc_handler.rs), which
// are invoked before delegating to the shared RequestHandler trait.
type CapabilityGate struct {
	card *types.AgentCard
}

// NewCapabilityGate creates a gate backed by card. A nil card means every
// capability-gated method is rejected.
func NewCapabilityGate(card *types.AgentCard) *CapabilityGate {
	return &CapabilityGate{card: card}
}

// RequireStreaming gates message/stream and tasks/resubscribe.
func (g *CapabilityGate) RequireStreaming() error {
	if g.card == nil || g.card.Capabilities.Streaming == nil || !*g.card.Capabilities.Streaming {
		return NewUnsupportedOperationError("streaming is not supported by the agent")
	}
	return nil
}

// RequirePushNotifications gates tasks/pushNotificationConfig/set only.
// tasks/pushNotificationConfig/get is intentionally NOT routed through this
// check (see reference handle_get_push_notification_config comment: "Python
// does NOT gate this endpoint on push_notifications capability").
func (g *CapabilityGate) RequirePushNotifications() error {
	if g.card == nil || g.card.Capabilities.PushNotifications == nil || !*g.card.Capabilities.PushNotifications {
		return NewPushNotificationNotSupportedError()
	}
	return nil
}

// RequireAuthenticatedExtendedCard gates agent/authenticatedExtendedCard.
func (g *CapabilityGate) RequireAuthenticatedExtendedCard() error {
	if g.card == nil || g.card.SupportsAuthenticatedExtendedCard == nil || !*g.card.SupportsAuthenticatedExtendedCard {
		return NewUnsupportedOperationError("authenticated extended card is not supported by this agent")
	}
	return nil
}
