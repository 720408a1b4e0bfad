package avkorting

import (
	dErrors "supstonad/pkg/domain-errors"
)

// Snapshot is the persisted form of any stage variant.
type Snapshot struct {
	Variant    string            `json:"variant"`
	Nytt       *Avkortingsvarsel `json:"nytt,omitempty"`
	Utestaende *Avkortingsvarsel `json:"utestaende,omitempty"`
}

func snapshot(variant string, nytt, utestaende *Avkortingsvarsel) Snapshot {
	return Snapshot{Variant: variant, Nytt: nytt, Utestaende: utestaende}
}

func ptr(v Avkortingsvarsel) *Avkortingsvarsel { return &v }

func SnapshotAvUhandtert(u Uhandtert) Snapshot {
	v, ok := u.Utestaende()
	if !ok {
		return snapshot(u.Variant(), nil, nil)
	}
	return snapshot(u.Variant(), nil, ptr(v))
}

func SnapshotAvDelvis(d DelvisHandtert) Snapshot {
	s := SnapshotAvUhandtert(d.Uhandtert())
	s.Variant = d.Variant()
	return s
}

func SnapshotAvHandtert(h Handtert) Snapshot {
	s := SnapshotAvUhandtert(h.Uhandtert())
	s.Variant = h.Variant()
	if nytt, ok := h.NyttVarsel(); ok {
		s.Nytt = ptr(nytt)
	}
	return s
}

func SnapshotAvIverksatt(i Iverksatt) Snapshot {
	switch v := i.(type) {
	case IverksattOpprettNyttAvkortingsvarsel:
		return snapshot(v.Variant(), ptr(v.Nytt), nil)
	case IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende:
		return snapshot(v.Variant(), ptr(v.Nytt), ptr(v.Annullert))
	case IverksattAnnullerUtestaende:
		return snapshot(v.Variant(), nil, ptr(v.Annullert))
	case IverksattKanIkkeHandteres:
		return snapshot(v.Variant(), nil, ptr(v.Varsel))
	default:
		return snapshot(i.Variant(), nil, nil)
	}
}

func ugyldigSnapshot(stage string, s Snapshot) error {
	return dErrors.New(dErrors.CodeInvariantViolation, "invalid "+stage+" avkorting snapshot: "+s.Variant)
}

func (s Snapshot) Uhandtert() (Uhandtert, error) {
	switch {
	case s.Variant == VariantIngenUtestaende:
		return UhandtertIngenUtestaende{}, nil
	case s.Variant == VariantUtestaendeAvkorting && s.Utestaende != nil:
		return UhandtertUtestaendeAvkorting{Varsel: *s.Utestaende}, nil
	case s.Variant == VariantKanIkkeHandtere && s.Utestaende != nil:
		return UhandtertKanIkkeHandtere{Varsel: *s.Utestaende}, nil
	}
	return nil, ugyldigSnapshot("uhandtert", s)
}

func (s Snapshot) DelvisHandtert() (DelvisHandtert, error) {
	switch {
	case s.Variant == VariantIngenUtestaende:
		return DelvisIngenUtestaende{}, nil
	case s.Variant == VariantAnnullerUtestaende && s.Utestaende != nil:
		return DelvisAnnullerUtestaende{Varsel: *s.Utestaende}, nil
	case s.Variant == VariantKanIkkeHandtere && s.Utestaende != nil:
		return DelvisKanIkkeHandtere{Varsel: *s.Utestaende}, nil
	}
	return nil, ugyldigSnapshot("delvis handtert", s)
}

func (s Snapshot) Handtert() (Handtert, error) {
	switch {
	case s.Variant == VariantIngenNyEllerUtestaende:
		return HandtertIngenNyEllerUtestaende{}, nil
	case s.Variant == VariantOpprettNyttAvkortingsvarsel && s.Nytt != nil:
		return HandtertOpprettNyttAvkortingsvarsel{Nytt: *s.Nytt}, nil
	case s.Variant == VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende && s.Nytt != nil && s.Utestaende != nil:
		return HandtertOpprettNyttAvkortingsvarselOgAnnullerUtestaende{Nytt: *s.Nytt, Annulleres: *s.Utestaende}, nil
	case s.Variant == VariantAnnullerUtestaende && s.Utestaende != nil:
		return HandtertAnnullerUtestaende{Annulleres: *s.Utestaende}, nil
	case s.Variant == VariantKanIkkeHandteres && s.Utestaende != nil:
		return HandtertKanIkkeHandteres{Varsel: *s.Utestaende}, nil
	}
	return nil, ugyldigSnapshot("handtert", s)
}

func (s Snapshot) Iverksatt() (Iverksatt, error) {
	switch {
	case s.Variant == VariantIngenNyEllerUtestaende:
		return IverksattIngenNyEllerUtestaende{}, nil
	case s.Variant == VariantOpprettNyttAvkortingsvarsel && s.Nytt != nil:
		return IverksattOpprettNyttAvkortingsvarsel{Nytt: *s.Nytt}, nil
	case s.Variant == VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende && s.Nytt != nil && s.Utestaende != nil:
		return IverksattOpprettNyttAvkortingsvarselOgAnnullerUtestaende{Nytt: *s.Nytt, Annullert: *s.Utestaende}, nil
	case s.Variant == VariantAnnullerUtestaende && s.Utestaende != nil:
		return IverksattAnnullerUtestaende{Annullert: *s.Utestaende}, nil
	case s.Variant == VariantKanIkkeHandteres && s.Utestaende != nil:
		return IverksattKanIkkeHandteres{Varsel: *s.Utestaende}, nil
	}
	return nil, ugyldigSnapshot("iverksatt", s)
}
