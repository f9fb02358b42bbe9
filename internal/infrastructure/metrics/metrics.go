package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CardMetrics bundles every metric the engine exports.
type CardMetrics struct {
	// Generation
	CardsGeneratedTotal     prometheus.CounterVec
	PartialBatchesTotal     prometheus.Counter
	GenerationChunkDuration prometheus.Histogram

	// Lifecycle
	CardsAssignedTotal  prometheus.CounterVec
	CardsActivatedTotal prometheus.CounterVec
	CardsResetTotal     prometheus.Counter
	CardStatusGauge     prometheus.GaugeVec

	// Perks
	PerksGrantedTotal prometheus.Counter
	PerksClaimedTotal prometheus.Counter

	// Version sync
	VersionBumpsTotal      prometheus.CounterVec
	SyncPollsTotal         prometheus.Counter
	SyncPollErrorsTotal    prometheus.Counter
	SyncNotificationsTotal prometheus.CounterVec

	// Drafts
	DraftSavesTotal      prometheus.Counter
	DraftSaveErrorsTotal prometheus.Counter

	// Errors
	CardErrorsTotal prometheus.CounterVec
}

func NewCardMetrics() *CardMetrics {
	return &CardMetrics{
		CardsGeneratedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cards_generated_total",
				Help: "Total number of cards generated, by batch mode",
			},
			[]string{"mode"},
		),

		PartialBatchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cards_partial_batches_total",
				Help: "Total number of bulk generations that stopped partway",
			},
		),

		GenerationChunkDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cards_generation_chunk_duration_seconds",
				Help:    "Time to insert one chunk of generated cards",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		CardsAssignedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cards_assigned_total",
				Help: "Total number of cards assigned to clinics",
			},
			[]string{"clinic_code"},
		),

		CardsActivatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cards_activated_total",
				Help: "Total number of card activations",
			},
			[]string{"clinic_code"},
		),

		CardsResetTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cards_reset_total",
				Help: "Total number of administrative card resets",
			},
		),

		CardStatusGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cards_by_status",
				Help: "Current number of cards per lifecycle status",
			},
			[]string{"status"},
		),

		PerksGrantedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "card_perks_granted_total",
				Help: "Total number of perks granted at activation",
			},
		),

		PerksClaimedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "card_perks_claimed_total",
				Help: "Total number of perks claimed",
			},
		),

		VersionBumpsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "system_version_bumps_total",
				Help: "Total number of version counter increments per component",
			},
			[]string{"component"},
		),

		SyncPollsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "version_sync_polls_total",
				Help: "Total number of reconciler polling passes",
			},
		),

		SyncPollErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "version_sync_poll_errors_total",
				Help: "Total number of failed reconciler polling passes",
			},
		),

		SyncNotificationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "version_sync_notifications_total",
				Help: "Total number of update notifications emitted per component",
			},
			[]string{"component"},
		),

		DraftSavesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "session_draft_saves_total",
				Help: "Total number of persisted draft saves",
			},
		),

		DraftSaveErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "session_draft_save_errors_total",
				Help: "Total number of failed draft saves",
			},
		),

		CardErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "card_errors_total",
				Help: "Total number of rejected card operations, by error kind",
			},
			[]string{"operation", "kind"},
		),
	}
}
