package avkorting

import (
	"time"

	"github.com/google/uuid"

	"supstonad/internal/opphor"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// The claw-back view of a revurdering advances through four stages. Each
// stage is a closed set of variants exposing only the next legal transition:
//
//	Uhandtert      (decided at opprettelse)
//	DelvisHandtert (decided at beregning)
//	Handtert       (decided at simulering)
//	Iverksatt      (committed at iverksetting)

// Variant names used in snapshots.
const (
	VariantIngenUtestaende                                 = "INGEN_UTESTAENDE"
	VariantUtestaendeAvkorting                             = "UTESTAENDE_AVKORTING"
	VariantKanIkkeHandtere                                 = "KAN_IKKE_HANDTERE"
	VariantAnnullerUtestaende                              = "ANNULLER_UTESTAENDE"
	VariantIngenNyEllerUtestaende                          = "INGEN_NY_ELLER_UTESTAENDE"
	VariantOpprettNyttAvkortingsvarsel                     = "OPPRETT_NYTT_AVKORTINGSVARSEL"
	VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende = "OPPRETT_NYTT_AVKORTINGSVARSEL_OG_ANNULLER_UTESTAENDE"
	VariantKanIkkeHandteres                                = "KAN_IKKE_HANDTERES"
)

// -----------------------------------------------------------------------------
// Uhandtert
// -----------------------------------------------------------------------------

type Uhandtert interface {
	uhandtert()
	Variant() string
	// Handter decides the outstanding varsel at beregning.
	Handter() DelvisHandtert
	Utestaende() (Avkortingsvarsel, bool)
}

type UhandtertIngenUtestaende struct{}

// UhandtertUtestaendeAvkorting holds an outstanding varsel inside the revurderingsperiode.
type UhandtertUtestaendeAvkorting struct {
	Varsel Avkortingsvarsel
}

// UhandtertKanIkkeHandtere holds an outstanding varsel outside the revurderingsperiode.
type UhandtertKanIkkeHandtere struct {
	Varsel Avkortingsvarsel
}

func (UhandtertIngenUtestaende) uhandtert()     {}
func (UhandtertUtestaendeAvkorting) uhandtert() {}
func (UhandtertKanIkkeHandtere) uhandtert()     {}

func (UhandtertIngenUtestaende) Variant() string     { return VariantIngenUtestaende }
func (UhandtertUtestaendeAvkorting) Variant() string { return VariantUtestaendeAvkorting }
func (UhandtertKanIkkeHandtere) Variant() string     { return VariantKanIkkeHandtere }

func (UhandtertIngenUtestaende) Handter() DelvisHandtert { return DelvisIngenUtestaende{} }
func (u UhandtertUtestaendeAvkorting) Handter() DelvisHandtert {
	return DelvisAnnullerUtestaende(u)
}
func (u UhandtertKanIkkeHandtere) Handter() DelvisHandtert { return DelvisKanIkkeHandtere(u) }

func (UhandtertIngenUtestaende) Utestaende() (Avkortingsvarsel, bool)       { return Avkortingsvarsel{}, false }
func (u UhandtertUtestaendeAvkorting) Utestaende() (Avkortingsvarsel, bool) { return u.Varsel, true }
func (u UhandtertKanIkkeHandtere) Utestaende() (Avkortingsvarsel, bool)     { return u.Varsel, true }

// Vurder classifies the sak's outstanding varsel against a revurderingsperiode.
// A varsel that only partly overlaps cannot be reconciled and must be
// revurdert in its entirety.
func Vurder(utestaende *Avkortingsvarsel, periode domain.Periode) (Uhandtert, error) {
	if utestaende == nil {
		return UhandtertIngenUtestaende{}, nil
	}
	if !utestaende.ErUtestaende() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "utestaende avkortingsvarsel must be in SKAL_AVKORTES")
	}
	varselPeriode := utestaende.Periode()
	switch {
	case periode.InneholderPeriode(varselPeriode):
		return UhandtertUtestaendeAvkorting{Varsel: *utestaende}, nil
	case !periode.Overlapper(varselPeriode):
		return UhandtertKanIkkeHandtere{Varsel: *utestaende}, nil
	default:
		return nil, dErrors.NewReason(dErrors.CodeValidation, "utestaende_avkorting_ma_revurderes_i_sin_helhet",
			"revurderingsperioden må dekke hele perioden til utestående avkorting "+varselPeriode.String())
	}
}

// -----------------------------------------------------------------------------
// DelvisHandtert
// -----------------------------------------------------------------------------

type DelvisHandtert interface {
	delvisHandtert()
	Variant() string
	// Handter decides at simulering, given the new varsel if one is required.
	Handter(nytt *Avkortingsvarsel) Handtert
	Uhandtert() Uhandtert
}

type DelvisIngenUtestaende struct{}

type DelvisAnnullerUtestaende struct {
	Varsel Avkortingsvarsel
}

type DelvisKanIkkeHandtere struct {
	Varsel Avkortingsvarsel
}

func (DelvisIngenUtestaende) delvisHandtert()    {}
func (DelvisAnnullerUtestaende) delvisHandtert() {}
func (DelvisKanIkkeHandtere) delvisHandtert()    {}

func (DelvisIngenUtestaende) Variant() string    { return VariantIngenUtestaende }
func (DelvisAnnullerUtestaende) Variant() string { return VariantAnnullerUtestaende }
func (DelvisKanIkkeHandtere) Variant() string    { return VariantKanIkkeHandtere }

func (DelvisIngenUtestaende) Handter(nytt *Avkortingsvarsel) Handtert {
	if nytt != nil {
		return HandtertOpprettNyttAvkortingsvarsel{Nytt: *nytt}
	}
	return HandtertIngenNyEllerUtestaende{}
}

func (d DelvisAnnullerUtestaende) Handter(nytt *Avkortingsvarsel) Handtert {
	if nytt != nil {
		return HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende{Nytt: *nytt, Annulleres: d.Varsel}
	}
	return HandtertAnnullerUtestaende{Annulleres: d.Varsel}
}

// Handter ignores nytt: the outstanding varsel lies outside the
// revurderingsperiode and any new feilutbetaling is left to tilbakekreving.
func (d DelvisKanIkkeHandtere) Handter(*Avkortingsvarsel) Handtert {
	return HandtertKanIkkeHandteres(d)
}

func (DelvisIngenUtestaende) Uhandtert() Uhandtert { return UhandtertIngenUtestaende{} }
func (d DelvisAnnullerUtestaende) Uhandtert() Uhandtert {
	return UhandtertUtestaendeAvkorting(d)
}
func (d DelvisKanIkkeHandtere) Uhandtert() Uhandtert { return UhandtertKanIkkeHandtere(d) }

// -----------------------------------------------------------------------------
// Handtert
// -----------------------------------------------------------------------------

type Handtert interface {
	handtert()
	Variant() string
	// Iverksett commits the decision on behalf of the revurdering.
	Iverksett(behandling uuid.UUID, now time.Time) (Iverksatt, error)
	Uhandtert() Uhandtert
	// NyttVarsel is the varsel this revurdering creates, if any.
	NyttVarsel() (Avkortingsvarsel, bool)
}

type HandtertIngenNyEllerUtestaende struct{}

type HandtertOpprettNyttAvkortingsvarsel struct {
	Nytt Avkortingsvarsel
}

type HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende struct {
	Nytt       Avkortingsvarsel
	Annulleres Avkortingsvarsel
}

type HandtertAnnullerUtestaende struct {
	Annulleres Avkortingsvarsel
}

type HandtertKanIkkeHandteres struct {
	Varsel Avkortingsvarsel
}

func (HandtertIngenNyEllerUtestaende) handtert()                          {}
func (HandtertOpprettNyttAvkortingsvarsel) handtert()                     {}
func (HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende) handtert() {}
func (HandtertAnnullerUtestaende) handtert()                              {}
func (HandtertKanIkkeHandteres) handtert()                                {}

func (HandtertIngenNyEllerUtestaende) Variant() string { return VariantIngenNyEllerUtestaende }
func (HandtertOpprettNyttAvkortingsvarsel) Variant() string {
	return VariantOpprettNyttAvkortingsvarsel
}
func (HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende) Variant() string {
	return VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende
}
func (HandtertAnnullerUtestaende) Variant() string { return VariantAnnullerUtestaende }
func (HandtertKanIkkeHandteres) Variant() string   { return VariantKanIkkeHandteres }

func (HandtertIngenNyEllerUtestaende) Uhandtert() Uhandtert { return UhandtertIngenUtestaende{} }
func (HandtertOpprettNyttAvkortingsvarsel) Uhandtert() Uhandtert {
	return UhandtertIngenUtestaende{}
}
func (h HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende) Uhandtert() Uhandtert {
	return UhandtertUtestaendeAvkorting{Varsel: h.Annulleres}
}
func (h HandtertAnnullerUtestaende) Uhandtert() Uhandtert {
	return UhandtertUtestaendeAvkorting{Varsel: h.Annulleres}
}
func (h HandtertKanIkkeHandteres) Uhandtert() Uhandtert { return UhandtertKanIkkeHandtere(h) }

func (HandtertIngenNyEllerUtestaende) NyttVarsel() (Avkortingsvarsel, bool) {
	return Avkortingsvarsel{}, false
}
func (h HandtertOpprettNyttAvkortingsvarsel) NyttVarsel() (Avkortingsvarsel, bool) {
	return h.Nytt, true
}
func (h HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende) NyttVarsel() (Avkortingsvarsel, bool) {
	return h.Nytt, true
}
func (HandtertAnnullerUtestaende) NyttVarsel() (Avkortingsvarsel, bool) {
	return Avkortingsvarsel{}, false
}
func (HandtertKanIkkeHandteres) NyttVarsel() (Avkortingsvarsel, bool) {
	return Avkortingsvarsel{}, false
}

func (HandtertIngenNyEllerUtestaende) Iverksett(uuid.UUID, time.Time) (Iverksatt, error) {
	return IverksattIngenNyEllerUtestaende{}, nil
}

func (h HandtertOpprettNyttAvkortingsvarsel) Iverksett(_ uuid.UUID, now time.Time) (Iverksatt, error) {
	nytt, err := h.Nytt.SkalAvkortes(now)
	if err != nil {
		return nil, err
	}
	return IverksattOpprettNyttAvkortingsvarsel{Nytt: nytt}, nil
}

func (h HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende) Iverksett(behandling uuid.UUID, now time.Time) (Iverksatt, error) {
	nytt, err := h.Nytt.SkalAvkortes(now)
	if err != nil {
		return nil, err
	}
	annullert, err := h.Annulleres.Annuller(behandling, now)
	if err != nil {
		return nil, err
	}
	return IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende{Nytt: nytt, Annullert: annullert}, nil
}

func (h HandtertAnnullerUtestaende) Iverksett(behandling uuid.UUID, now time.Time) (Iverksatt, error) {
	annullert, err := h.Annulleres.Annuller(behandling, now)
	if err != nil {
		return nil, err
	}
	return IverksattAnnullerUtestaende{Annullert: annullert}, nil
}

func (h HandtertKanIkkeHandteres) Iverksett(uuid.UUID, time.Time) (Iverksatt, error) {
	return IverksattKanIkkeHandteres(h), nil
}

// -----------------------------------------------------------------------------
// Iverksatt
// -----------------------------------------------------------------------------

// Effekter are the varsel writes an iverksatt revurdering commits.
type Effekter struct {
	Opprettes  *Avkortingsvarsel
	Annulleres *Avkortingsvarsel
}

type Iverksatt interface {
	iverksatt()
	Variant() string
	Effekter() Effekter
}

type IverksattIngenNyEllerUtestaende struct{}

type IverksattOpprettNyttAvkortingsvarsel struct {
	Nytt Avkortingsvarsel
}

type IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende struct {
	Nytt      Avkortingsvarsel
	Annullert Avkortingsvarsel
}

type IverksattAnnullerUtestaende struct {
	Annullert Avkortingsvarsel
}

type IverksattKanIkkeHandteres struct {
	Varsel Avkortingsvarsel
}

func (IverksattIngenNyEllerUtestaende) iverksatt()                          {}
func (IverksattOpprettNyttAvkortingsvarsel) iverksatt()                     {}
func (IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende) iverksatt() {}
func (IverksattAnnullerUtestaende) iverksatt()                              {}
func (IverksattKanIkkeHandteres) iverksatt()                                {}

func (IverksattIngenNyEllerUtestaende) Variant() string { return VariantIngenNyEllerUtestaende }
func (IverksattOpprettNyttAvkortingsvarsel) Variant() string {
	return VariantOpprettNyttAvkortingsvarsel
}
func (IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende) Variant() string {
	return VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende
}
func (IverksattAnnullerUtestaende) Variant() string { return VariantAnnullerUtestaende }
func (IverksattKanIkkeHandteres) Variant() string   { return VariantKanIkkeHandteres }

func (IverksattIngenNyEllerUtestaende) Effekter() Effekter { return Effekter{} }
func (i IverksattOpprettNyttAvkortingsvarsel) Effekter() Effekter {
	return Effekter{Opprettes: &i.Nytt}
}
func (i IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende) Effekter() Effekter {
	return Effekter{Opprettes: &i.Nytt, Annulleres: &i.Annullert}
}
func (i IverksattAnnullerUtestaende) Effekter() Effekter { return Effekter{Annulleres: &i.Annullert} }
func (IverksattKanIkkeHandteres) Effekter() Effekter     { return Effekter{} }

// -----------------------------------------------------------------------------
// Reconciliation
// -----------------------------------------------------------------------------

// NyttVarsel returns the varsel an opphør requires, or nil. Only an opphør
// grounded in foreign residence with a feilutbetaling creates one.
func NyttVarsel(res opphor.Resultat, sim *simulering.Simulering, sakID domain.SakID, revurderingID domain.RevurderingID, now time.Time) (*Avkortingsvarsel, error) {
	if !res.HarGrunn(opphor.Utenlandsopphold) || !sim.HarFeilutbetalinger() {
		return nil, nil
	}
	v, err := Nytt(sakID, revurderingID, sim.FeilutbetalteBelop(), now)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
