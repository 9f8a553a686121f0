package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dreamware/rcoord/internal/coordinator"
	"github.com/dreamware/rcoord/internal/health"
	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	seeds, err := parseSeeds(cfg.Seeds)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing seed addresses")
	}

	reg := prometheus.NewRegistry()
	srv := newServer(log)

	h, err := coordinator.Start(seeds,
		coordinator.WithUpdateSlotWait(cfg.UpdateSlotWait),
		coordinator.WithMinReplicas(cfg.MinReplicas),
		coordinator.WithCloseWait(cfg.CloseWait),
		coordinator.WithLogger(log),
		coordinator.WithMetricsRegistry(reg, cfg.MetricsNS),
		coordinator.WithObservers(&loggingObserver{log: log}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("starting coordinator")
	}
	srv.coordinator = h

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/slotmap", srv.handleSlotMap)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("coordinator listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	h.Stop()
	log.Info().Msg("coordinator stopped")
}

type server struct {
	log         zerolog.Logger
	coordinator *coordinator.Handle
}

func newServer(log zerolog.Logger) *server {
	return &server{log: log}
}

// handleSlotMap serves the current canonical slot map as YAML via
// topology.DumpSlotMap, for operator diagnostics.
func (s *server) handleSlotMap(w http.ResponseWriter, r *http.Request) {
	info, err := s.coordinator.SlotMapInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	out, err := topology.DumpSlotMap(info.SlotMap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(out)
}

// loggingObserver logs every coordinator event through zerolog.
type loggingObserver struct {
	log zerolog.Logger
}

func (o *loggingObserver) ClusterOK() {
	o.log.Info().Msg("cluster_ok")
}

func (o *loggingObserver) ClusterNOK(reason health.Reason) {
	o.log.Warn().Str("reason", string(reason)).Msg("cluster_nok")
}

func (o *loggingObserver) SlotMapUpdated(slotMap topology.SlotMap, version uint64) {
	o.log.Info().Uint64("version", version).Int("ranges", len(slotMap)).Msg("slot_map_updated")
}

func (o *loggingObserver) ClusterSlotsError(err error) {
	o.log.Warn().Err(err).Msg("cluster_slots_error")
}

func (o *loggingObserver) ConnectionStatus(addr topology.Address, ev nodeclient.ConnEvent, isMaster bool) {
	o.log.Debug().
		Str("addr", addr.String()).
		Str("kind", string(ev.Kind)).
		Str("down_reason", string(ev.Down)).
		Bool("is_master", isMaster).
		Msg("connection_status")
}

// parseSeeds turns a list of "host:port" strings into Addresses.
func parseSeeds(raw []string) ([]topology.Address, error) {
	out := make([]topology.Address, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		host, portStr, ok := strings.Cut(s, ":")
		if !ok {
			return nil, errInvalidSeed(s)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, errInvalidSeed(s)
		}
		out = append(out, topology.NewAddress(host, port))
	}
	return out, nil
}

type seedFormatError string

func (e seedFormatError) Error() string { return "invalid seed address " + strconv.Quote(string(e)) }

func errInvalidSeed(s string) error { return seedFormatError(s) }
