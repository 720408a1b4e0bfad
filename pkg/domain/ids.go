// Package domain holds the identity and calendar primitives shared across
// packages. Values are parsed at trust boundaries and are valid thereafter.
package domain

import (
	"github.com/google/uuid"

	dErrors "supstonad/pkg/domain-errors"
)

type (
	SakID              uuid.UUID
	RevurderingID      uuid.UUID
	VedtakID           uuid.UUID
	AvkortingsvarselID uuid.UUID
	UtbetalingID       uuid.UUID
	DokumentID         uuid.UUID
)

func (id SakID) String() string              { return uuid.UUID(id).String() }
func (id RevurderingID) String() string      { return uuid.UUID(id).String() }
func (id VedtakID) String() string           { return uuid.UUID(id).String() }
func (id AvkortingsvarselID) String() string { return uuid.UUID(id).String() }
func (id UtbetalingID) String() string       { return uuid.UUID(id).String() }
func (id DokumentID) String() string         { return uuid.UUID(id).String() }

func (id SakID) IsNil() bool              { return uuid.UUID(id) == uuid.Nil }
func (id RevurderingID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id VedtakID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id AvkortingsvarselID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func NewRevurderingID() RevurderingID           { return RevurderingID(uuid.New()) }
func NewAvkortingsvarselID() AvkortingsvarselID { return AvkortingsvarselID(uuid.New()) }
func NewUtbetalingID() UtbetalingID             { return UtbetalingID(uuid.New()) }
func NewDokumentID() DokumentID                 { return DokumentID(uuid.New()) }

func ParseSakID(s string) (SakID, error) {
	u, err := parseUUID(s, "sak_id")
	return SakID(u), err
}

func ParseRevurderingID(s string) (RevurderingID, error) {
	u, err := parseUUID(s, "revurdering_id")
	return RevurderingID(u), err
}

func ParseVedtakID(s string) (VedtakID, error) {
	u, err := parseUUID(s, "vedtak_id")
	return VedtakID(u), err
}

func ParseAvkortingsvarselID(s string) (AvkortingsvarselID, error) {
	u, err := parseUUID(s, "avkortingsvarsel_id")
	return AvkortingsvarselID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}

// Text marshaling keeps IDs readable in JSON documents and payloads.

func (id SakID) MarshalText() ([]byte, error)              { return uuid.UUID(id).MarshalText() }
func (id RevurderingID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id VedtakID) MarshalText() ([]byte, error)           { return uuid.UUID(id).MarshalText() }
func (id AvkortingsvarselID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id UtbetalingID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id DokumentID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }

func (id *SakID) UnmarshalText(b []byte) error              { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RevurderingID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VedtakID) UnmarshalText(b []byte) error           { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AvkortingsvarselID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UtbetalingID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DokumentID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
