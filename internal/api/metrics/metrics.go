// Package metrics defines and registers all custom Prometheus metrics for the
// patient portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "patient_portal"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through POST /register.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "patient" (redirected to the dashboard) or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// PasswordChangesTotal counts password change requests.
// Label:
//   - result: "changed" or "unknown_user"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change requests, by result.",
	},
	[]string{"result"},
)

// ── Patient metrics ───────────────────────────────────────────────────────────

// PatientsRegisteredTotal counts stored patient profiles.
var PatientsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "patients_registered_total",
		Help:      "Total number of patient profiles registered.",
	},
)

// ── Form metrics ──────────────────────────────────────────────────────────────

// ValidationFailuresTotal counts rejected form submissions.
// Label:
//   - form: the view that rejected the input (e.g. "register", "patient-registration")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of form submissions rejected by validation, by form.",
	},
	[]string{"form"},
)

// DuplicateSubmissionsTotal counts requests rejected because their
// Idempotency-Key was already claimed.
// Label:
//   - scope: the guarded route (e.g. "register")
var DuplicateSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_submissions_total",
		Help:      "Total number of form submissions rejected as duplicates, by scope.",
	},
	[]string{"scope"},
)
