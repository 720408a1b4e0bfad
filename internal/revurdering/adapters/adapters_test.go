package adapters

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/platform/kafka"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/revurdering/ports/mocks"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/circuit"
	"supstonad/pkg/platform/privacy"
	"supstonad/pkg/platform/sentinel"
)

var (
	now     = time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	jan     = domain.NyManed(2021, time.January)
	periode = domain.MustPeriode(jan, domain.NyManed(2021, time.December))
	fastNow = func() time.Time { return now }
)

func grunnlagMed(bo grunnlag.Bosituasjonstype, fradrag ...grunnlag.Fradrag) revurdering.Beregningsgrunnlag {
	return revurdering.Beregningsgrunnlag{
		Periode: periode,
		Grunnlag: grunnlag.Grunnlagsdata{
			Fradrag:     fradrag,
			Bosituasjon: []grunnlag.Bosituasjon{{Type: bo, Periode: periode}},
		},
	}
}

func TestLokalBeregner(t *testing.T) {
	b := NewLokalBeregner(fastNow)
	ctx := context.Background()

	t.Run("enslig gets høy sats minus fradrag", func(t *testing.T) {
		res, err := b.Beregn(ctx, ports.BeregnRequest{
			Grunnlag: grunnlagMed(grunnlag.Enslig, grunnlag.Fradrag{
				Type: grunnlag.Arbeidsinntekt, Manedsbelop: 5000, Periode: periode, Tilhorer: grunnlag.Bruker,
			}),
			Begrunnelse: "ny inntekt",
		})
		require.NoError(t, err)
		require.Len(t, res.Maneder, 12)
		assert.Equal(t, 20946, res.Maneder[0].Sats)
		assert.Equal(t, 15946, res.Maneder[0].Belop)
		assert.Empty(t, res.Maneder[0].Merknader)
		assert.Equal(t, "ny inntekt", res.Begrunnelse)
	})

	t.Run("fradrag above sats gives BelopErNull", func(t *testing.T) {
		res, err := b.Beregn(ctx, ports.BeregnRequest{
			Grunnlag: grunnlagMed(grunnlag.EpsOver67, grunnlag.Fradrag{
				Type: grunnlag.Alderspensjon, Manedsbelop: 30000, Periode: periode, Tilhorer: grunnlag.Bruker,
			}),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Maneder[0].Belop)
		assert.True(t, res.AlleHarMerknad(beregning.BelopErNull))
	})

	t.Run("amount under two percent is marked", func(t *testing.T) {
		res, err := b.Beregn(ctx, ports.BeregnRequest{
			Grunnlag: grunnlagMed(grunnlag.Enslig, grunnlag.Fradrag{
				Type: grunnlag.Uforetrygd, Manedsbelop: 20946 - 100, Periode: periode, Tilhorer: grunnlag.Bruker,
			}),
		})
		require.NoError(t, err)
		assert.Equal(t, 100, res.Maneder[0].Belop)
		assert.True(t, res.Maneder[0].HarMerknad(beregning.BelopMellomNullOgToProsentAvHoySats))
	})

	t.Run("missing bosituasjon is an invariant violation", func(t *testing.T) {
		_, err := b.Beregn(ctx, ports.BeregnRequest{Grunnlag: revurdering.Beregningsgrunnlag{Periode: periode}})
		assert.Error(t, err)
	})
}

func beregningMed(belop int) *beregning.Beregning {
	var maneder []beregning.Manedsberegning
	for _, m := range periode.Maneder() {
		maneder = append(maneder, beregning.Manedsberegning{Maned: m, Sats: 20946, Belop: belop})
	}
	return beregning.Ny(periode, maneder, now)
}

func tidligereUtbetalt(ledger *Ledger, sakID domain.SakID, belop int) {
	utbetalt := make(map[domain.Maned]int)
	for _, m := range periode.Maneder() {
		utbetalt[m] = belop
	}
	ledger.Registrer(sakID, utbetalt)
}

func TestLokalSimulator(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	sakID := domain.SakID(uuid.New())
	tidligereUtbetalt(ledger, sakID, 20000)
	s := NewLokalSimulator(ledger, fastNow)

	t.Run("lower amount gives feilutbetaling for paid months only", func(t *testing.T) {
		res, err := s.SimulerUtbetaling(ctx, ports.SimuleringRequest{SakID: sakID, Periode: periode, Beregning: beregningMed(15000)})
		require.NoError(t, err)
		require.Len(t, res.Maneder, 12)
		assert.Equal(t, 5000, res.Maneder[0].Feilutbetaling)
		assert.Equal(t, 5000, res.Maneder[5].Feilutbetaling)
		assert.Equal(t, 0, res.Maneder[6].Feilutbetaling)
		assert.Equal(t, 6*5000, res.FeilutbetalteBelop().Sum())
	})

	t.Run("higher amount gives etterbetaling", func(t *testing.T) {
		res, err := s.SimulerUtbetaling(ctx, ports.SimuleringRequest{SakID: sakID, Periode: periode, Beregning: beregningMed(21000)})
		require.NoError(t, err)
		assert.False(t, res.HarFeilutbetalinger())
		assert.Equal(t, 1000, res.Maneder[0].Etterbetaling)
	})

	t.Run("opphør stops payment from opphørsdato", func(t *testing.T) {
		mai := domain.NyManed(2021, time.May)
		res, err := s.SimulerOpphor(ctx, ports.SimuleringRequest{
			SakID: sakID, Periode: periode, Beregning: beregningMed(20000), Opphorsdato: mai,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Maneder[0].Feilutbetaling)
		assert.Equal(t, 20000, res.Maneder[4].Feilutbetaling)
		assert.Equal(t, 0, res.Maneder[4].NyUtbetaling)
		assert.Equal(t, simulering.ManedBelop{Maned: mai, Belop: 20000}, res.FeilutbetalteBelop()[0])
	})

	t.Run("opphør requires opphørsdato", func(t *testing.T) {
		_, err := s.SimulerOpphor(ctx, ports.SimuleringRequest{SakID: sakID, Periode: periode, Beregning: beregningMed(0)})
		assert.Error(t, err)
	})
}

func TestLokalUtbetaler(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	u := NewLokalUtbetaler(ledger, fastNow)
	sakID := domain.SakID(uuid.New())
	req := ports.UtbetalingRequest{SakID: sakID, RevurderingID: domain.NewRevurderingID(), Beregning: beregningMed(18000)}

	first, err := u.Iverksett(ctx, req)
	require.NoError(t, err)
	second, err := u.Iverksett(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.UtbetalingID, second.UtbetalingID)
	assert.Equal(t, 18000, ledger.Utbetalt(sakID, jan))
}

func TestLokalVedtak(t *testing.T) {
	ctx := context.Background()
	v := NewLokalVedtak()
	sakID := domain.SakID(uuid.New())
	v.Registrer(sakID, periode, revurdering.Vedtaksdata{Maneder: beregningMed(20000).Maneder})

	halvar := domain.MustPeriode(domain.NyManed(2021, time.July), domain.NyManed(2021, time.December))
	data, err := v.HentGjeldendeVedtaksdata(ctx, sakID, halvar)
	require.NoError(t, err)
	assert.Len(t, data.Maneder, 6)

	_, err = v.HentGjeldendeVedtaksdata(ctx, sakID, domain.MustPeriode(jan, domain.NyManed(2022, time.March)))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = v.HentGjeldendeVedtaksdata(ctx, domain.SakID(uuid.New()), periode)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLokalOppgaveOgPerson(t *testing.T) {
	ctx := context.Background()
	o := NewLokalOppgave()
	id, err := o.OpprettAttestering(ctx, ports.OppgaveRequest{Saksnummer: 2021})
	require.NoError(t, err)
	assert.Equal(t, 1, o.Apne())
	require.NoError(t, o.Lukk(ctx, id))
	assert.Equal(t, 0, o.Apne())
	assert.ErrorIs(t, o.Lukk(ctx, "ukjent"), sentinel.ErrNotFound)

	p := NewLokalPerson()
	p.Registrer("12345678901", "1000012345678")
	aktor, err := p.HentAktorID(ctx, "12345678901")
	require.NoError(t, err)
	assert.Equal(t, domain.AktorID("1000012345678"), aktor)
	_, err = p.HentAktorID(ctx, "10987654321")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLokalBrev(t *testing.T) {
	ctx := context.Background()
	b := NewLokalBrev(fastNow)

	utkast, err := b.LagDokument(ctx, ports.BrevCommand{
		Type: ports.BrevVedtakOpphor, Periode: periode, Opphorsgrunner: []string{"UFORHET"}, Fritekst: "hilsen", Utkast: true,
	})
	require.NoError(t, err)
	assert.Contains(t, string(utkast.PDF), "UFORHET")
	assert.Contains(t, string(utkast.PDF), "hilsen")
	assert.Equal(t, 0, b.Antall())

	_, err = b.LagDokument(ctx, ports.BrevCommand{Type: ports.BrevVedtakInnvilget, Periode: periode})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Antall())

	_, err = b.LagDokument(ctx, ports.BrevCommand{Type: "UKJENT"})
	assert.Error(t, err)
}

func TestBreakerSimulator(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSimulator(ctrl)
	breaker := circuit.New("simulering", circuit.WithFailureThreshold(2), circuit.WithClock(fastNow))
	s := NewBreakerSimulator(next, breaker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	boom := errors.New("oppdrag utilgjengelig")

	next.EXPECT().SimulerUtbetaling(gomock.Any(), gomock.Any()).Return(nil, boom).Times(2)
	for range 2 {
		_, err := s.SimulerUtbetaling(ctx, ports.SimuleringRequest{})
		assert.ErrorIs(t, err, boom)
	}
	assert.True(t, breaker.IsOpen())

	_, err := s.SimulerOpphor(ctx, ports.SimuleringRequest{})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

type fakeProducer struct {
	msgs []kafka.Message
}

func (f *fakeProducer) Produce(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestStatistikkPublisher(t *testing.T) {
	producer := &fakeProducer{}
	p := NewStatistikkPublisher(producer, "statistikk", privacy.NewHasher([]byte("test-key")))
	sakID := domain.SakID(uuid.New())

	err := p.Publiser(context.Background(), ports.StatistikkHendelse{
		RevurderingID: domain.NewRevurderingID(),
		SakID:         sakID,
		Fnr:           "12345678901",
		Hendelse:      "IVERKSATT",
		Tilstand:      revurdering.TilstandIverksattOpphort,
		Periode:       periode,
		Tidspunkt:     now,
	})
	require.NoError(t, err)
	require.Len(t, producer.msgs, 1)

	msg := producer.msgs[0]
	assert.Equal(t, "statistikk", msg.Topic)
	assert.Equal(t, sakID.String(), string(msg.Key))
	assert.Equal(t, "IVERKSATT", msg.Headers["hendelse"])
	assert.NotContains(t, string(msg.Value), "12345678901")

	var payload statistikkPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "IVERKSATT_OPPHORT", payload.Tilstand)
	assert.NotEmpty(t, payload.PersonHash)
}
