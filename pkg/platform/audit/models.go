package audit

import (
	"context"
	"time"

	"supstonad/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: every step
	// that changes what a bruker is paid. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers attempted violations of the four-eyes rule and
	// other access problems.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	SakID     domain.SakID
	// Subject is the revurdering the event is about.
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID is the NAV-ident of the saksbehandler or attestant.
	ActorID string
	// SubjectIDHash is a keyed digest of the bruker's fnr. Used for
	// traceability without storing raw PII.
	SubjectIDHash string
}

type AuditEvent string

const (
	// Revurdering lifecycle
	EventRevurderingOpprettet  AuditEvent = "revurdering_opprettet"
	EventRevurderingOppdatert  AuditEvent = "revurdering_oppdatert"
	EventBeregnetOgSimulert    AuditEvent = "beregnet_og_simulert"
	EventTilbakekrevingAvgjort AuditEvent = "tilbakekreving_avgjort"
	EventSendtTilAttestering   AuditEvent = "sendt_til_attestering"
	EventUnderkjent            AuditEvent = "underkjent"
	EventIverksatt             AuditEvent = "iverksatt"
	EventAvsluttet             AuditEvent = "avsluttet"

	// Avkorting
	EventAvkortingsvarselOpprettet AuditEvent = "avkortingsvarsel_opprettet"
	EventAvkortingsvarselAnnullert AuditEvent = "avkortingsvarsel_annullert"

	// Access
	EventAttesteringAvvist AuditEvent = "attestering_avvist"
	EventBrevutkastLaget   AuditEvent = "brevutkast_laget"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventRevurderingOpprettet:      CategoryCompliance,
	EventSendtTilAttestering:       CategoryCompliance,
	EventUnderkjent:                CategoryCompliance,
	EventIverksatt:                 CategoryCompliance,
	EventAvsluttet:                 CategoryCompliance,
	EventAvkortingsvarselOpprettet: CategoryCompliance,
	EventAvkortingsvarselAnnullert: CategoryCompliance,
	EventTilbakekrevingAvgjort:     CategoryCompliance,

	EventAttesteringAvvist: CategorySecurity,

	EventRevurderingOppdatert: CategoryOperations,
	EventBeregnetOgSimulert:   CategoryOperations,
	EventBrevutkastLaget:      CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// ComplianceEvent captures actions requiring guaranteed persistence.
// Use with the compliance publisher for fail-closed semantics.
type ComplianceEvent struct {
	Timestamp     time.Time    // When the event occurred (set automatically if zero)
	SakID         domain.SakID // The sak affected (required)
	RevurderingID domain.RevurderingID
	Action        AuditEvent
	Decision      string // Resulting tilstand
	Reason        string
	SubjectIDHash string
	RequestID     string
	ActorID       string
}

// ToEvent converts to the Event type stores accept.
func (e ComplianceEvent) ToEvent() Event {
	return Event{
		Category:      e.Action.Category(),
		Timestamp:     e.Timestamp,
		SakID:         e.SakID,
		Subject:       e.RevurderingID.String(),
		Action:        string(e.Action),
		Decision:      e.Decision,
		Reason:        e.Reason,
		SubjectIDHash: e.SubjectIDHash,
		RequestID:     e.RequestID,
		ActorID:       e.ActorID,
	}
}

// Store persists audit events. Append joins the transaction carried by the
// context so an event is stored exactly when the change it describes is.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySak(ctx context.Context, sakID domain.SakID) ([]Event, error)
}
