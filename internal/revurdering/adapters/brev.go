package adapters

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

var titler = map[ports.Brevtype]string{
	ports.BrevVedtakInnvilget: "Vedtak om endret supplerende stønad",
	ports.BrevVedtakOpphor:    "Vedtak om opphør av supplerende stønad",
	ports.BrevAvsluttet:       "Revurderingen er avsluttet",
}

// LokalBrev renders letters as plain text and keeps journalførte letters.
type LokalBrev struct {
	mu         sync.RWMutex
	dokumenter map[domain.DokumentID]ports.Dokument
	now        func() time.Time
}

func NewLokalBrev(now func() time.Time) *LokalBrev {
	if now == nil {
		now = time.Now
	}
	return &LokalBrev{dokumenter: make(map[domain.DokumentID]ports.Dokument), now: now}
}

func (b *LokalBrev) LagDokument(_ context.Context, cmd ports.BrevCommand) (*ports.Dokument, error) {
	tittel, ok := titler[cmd.Type]
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("ukjent brevtype %q", cmd.Type))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\nSaksnummer: %d\nPeriode: %s\n", tittel, cmd.Saksnummer, cmd.Periode)
	if len(cmd.Opphorsgrunner) > 0 {
		fmt.Fprintf(&buf, "Grunnlag for opphør: %s\n", strings.Join(cmd.Opphorsgrunner, ", "))
	}
	if cmd.Beregning != nil {
		for _, m := range cmd.Beregning.Maneder {
			fmt.Fprintf(&buf, "%s: %d kr\n", m.Maned, m.Belop)
		}
	}
	if cmd.Fritekst != "" {
		fmt.Fprintf(&buf, "\n%s\n", cmd.Fritekst)
	}
	fmt.Fprintf(&buf, "\nSaksbehandler: %s\n", cmd.Saksbehandler)
	if !cmd.Attestant.IsZero() {
		fmt.Fprintf(&buf, "Attestant: %s\n", cmd.Attestant)
	}

	dok := ports.Dokument{
		ID:        domain.NewDokumentID(),
		Tittel:    tittel,
		PDF:       buf.Bytes(),
		Opprettet: b.now(),
	}
	if !cmd.Utkast {
		b.mu.Lock()
		b.dokumenter[dok.ID] = dok
		b.mu.Unlock()
	}
	return &dok, nil
}

// Antall returns the number of journalførte letters.
func (b *LokalBrev) Antall() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.dokumenter)
}
