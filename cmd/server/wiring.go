package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	avkortingstore "supstonad/internal/avkorting/store"
	jwttoken "supstonad/internal/jwt_token"
	"supstonad/internal/platform/config"
	"supstonad/internal/platform/kafka"
	"supstonad/internal/platform/lock"
	"supstonad/internal/platform/metrics"
	"supstonad/internal/platform/redis"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/adapters"
	"supstonad/internal/revurdering/handler"
	revmetrics "supstonad/internal/revurdering/metrics"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/revurdering/service"
	revstore "supstonad/internal/revurdering/store"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	"supstonad/pkg/platform/audit/consumer"
	"supstonad/pkg/platform/audit/publisher"
	auditmemory "supstonad/pkg/platform/audit/store/memory"
	auditpg "supstonad/pkg/platform/audit/store/postgres"
	"supstonad/pkg/platform/audit/relay"
	"supstonad/pkg/platform/circuit"
	"supstonad/pkg/platform/httputil"
	"supstonad/pkg/platform/middleware/admin"
	"supstonad/pkg/platform/middleware/auth"
	"supstonad/pkg/platform/middleware/metadata"
	"supstonad/pkg/platform/middleware/request"
	"supstonad/pkg/platform/middleware/requesttime"
	"supstonad/pkg/platform/postgres"
	"supstonad/pkg/platform/privacy"
	"supstonad/pkg/platform/tx"
)

type app struct {
	cfg           config.Config
	log           *slog.Logger
	db            *sql.DB
	pool          *pgxpool.Pool
	redis         *redis.Client
	producer      *kafka.Producer
	relay         *relay.Relay
	auditConsumer *kafka.Consumer
	revurderinger *handler.Handler
	httpMetrics   *metrics.Metrics
	jwt           *jwttoken.JWTServiceAdapter
}

// build connects the configured infrastructure. Postgres, Redis and Kafka
// are each optional; without them the service runs on in-memory stores and
// local locks.
func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, httpMetrics: metrics.New()}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	var (
		revurderinger service.RevurderingStore = revstore.NewInMemoryStore()
		avkortinger   service.AvkortingStore   = avkortingstore.NewInMemoryStore()
		auditStore    audit.Store              = auditmemory.NewInMemoryStore()
		runner        tx.Runner                = tx.NoopRunner{Timeout: cfg.Database.TxTimeout}
		locker        lock.Locker              = lock.NewMemoryLocker(cfg.Lock.Timeout)
	)

	if cfg.Database.DSN != "" {
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Database.DSN, MaxOpenConns: cfg.Database.MaxOpenConns})
		if err != nil {
			return nil, err
		}
		a.db = db
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open pgx pool: %w", err)
		}
		a.pool = pool
		revurderinger = revstore.NewPostgresStore(db)
		avkortinger = avkortingstore.NewPostgresStore(db)
		auditStore = auditpg.New(db)
		runner = tx.NewSQLRunner(db, cfg.Database.TxTimeout)
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		a.redis = rc
		locker = lock.NewRedisLocker(rc.Client, cfg.Lock.TTL, cfg.Lock.Timeout)
	}

	hasher := privacy.NewHasher([]byte(cfg.Auth.FnrHashKey))
	var statistikk ports.Statistikk = adapters.NewLoggStatistikk(log)
	if err := a.connectKafka(ctx, auditStore); err != nil {
		return nil, err
	}
	if a.producer != nil {
		statistikk = adapters.NewStatistikkPublisher(a.producer, cfg.Kafka.StatistikkTopic, hasher)
	} else if a.db != nil {
		log.Warn("kafka not configured; audit events stay in the outbox")
	}

	now := time.Now
	ledger := adapters.NewLedger()
	svc, err := service.New(revurderinger, avkortinger, service.Ports{
		Beregner:   adapters.NewLokalBeregner(now),
		Simulator:  adapters.NewBreakerSimulator(adapters.NewLokalSimulator(ledger, now), circuit.New("simulering"), log),
		Utbetaler:  adapters.NewLokalUtbetaler(ledger, now),
		Brev:       adapters.NewLokalBrev(now),
		Oppgave:    adapters.NewLokalOppgave(),
		Person:     adapters.NewLokalPerson(),
		Vedtak:     adapters.NewLokalVedtak(),
		Statistikk: statistikk,
	},
		service.WithLogger(log),
		service.WithAuditPublisher(publisher.New(auditStore,
			publisher.WithLogger(log),
			publisher.WithMetrics(publisher.NewMetrics(prometheus.DefaultRegisterer)),
		)),
		service.WithMetrics(revmetrics.New()),
		service.WithLocker(locker),
		service.WithTxRunner(runner),
		service.WithHasher(hasher),
		service.WithSimuleringsvalg(revurdering.Simuleringsvalg{
			SkalUtsetteTilbakekreving: cfg.Revurdering.SkalUtsetteTilbakekreving,
		}),
	)
	if err != nil {
		return nil, err
	}

	a.revurderinger = handler.New(svc, log)
	a.jwt = jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(
		cfg.Server.JWTSigningKey,
		cfg.Server.JWTIssuer,
		cfg.Server.JWTAudience,
		cfg.Auth.Grupper(),
	))
	ok = true
	return a, nil
}

// connectKafka starts the producer, makes sure the topics exist and, when
// the outbox lives in Postgres, sets up the relay and the audit consumer
// that materializes the audit trail.
func (a *app) connectKafka(ctx context.Context, auditStore audit.Store) error {
	cfg := a.cfg.Kafka
	producer, err := kafka.NewProducer(cfg.Brokers)
	if err != nil {
		return err
	}
	if producer == nil {
		return nil
	}
	a.producer = producer

	if cfg.EnsureTopics {
		if err := kafka.EnsureTopics(ctx, producer.Client(), cfg.TopicPartitions, cfg.TopicReplication,
			cfg.StatistikkTopic, cfg.AuditTopic); err != nil {
			return err
		}
	}

	pgStore, ok := auditStore.(*auditpg.Store)
	if !ok || a.pool == nil {
		return nil
	}
	a.relay = relay.New(a.pool, producer, cfg.AuditTopic, a.log)
	a.auditConsumer, err = kafka.NewConsumer(cfg.Brokers, cfg.AuditGroup, []string{cfg.AuditTopic},
		consumer.NewHandler(pgStore, a.log), a.log)
	return err
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.AccessLog(a.log))
	r.Use(a.httpMetrics.Middleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", a.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/drift", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(a.cfg.Server.AdminToken, a.log))
		r.Post("/audit/relay", a.relayNow)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.jwt, a.log))
		a.revurderinger.Register(r)
	})
	return r
}

func (a *app) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := http.StatusOK
	check := func(name string, err error) {
		if err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			return
		}
		checks[name] = "ok"
	}
	if a.db != nil {
		check("postgres", a.db.PingContext(ctx))
	}
	if a.redis != nil {
		check("redis", a.redis.Health(ctx))
	}
	if a.producer != nil {
		check("kafka", a.producer.Health(ctx))
	}
	httputil.WriteJSON(w, status, map[string]any{"checks": checks})
}

// relayNow publishes one outbox batch on demand, for draining the outbox
// while the background relay is backing off.
func (a *app) relayNow(w http.ResponseWriter, r *http.Request) {
	if a.relay == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "outbox relay is not configured"))
		return
	}
	n, err := a.relay.RelayBatch(r.Context())
	if err != nil {
		a.log.ErrorContext(r.Context(), "manual relay failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"relayed": n})
}

func (a *app) close() {
	if a.auditConsumer != nil {
		a.auditConsumer.Close()
	}
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
