package services

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	failedLoginWindow    = 10 * time.Minute
	failedLoginThreshold = 5
	alertCooldown        = time.Hour
	maxAlerts            = 100
)

// SecurityAlert is raised when one address keeps failing to log in
type SecurityAlert struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	Reason    string    `json:"reason"`
	Attempts  int       `json:"attempts"`
}

// LoginMonitor counts failed logins per client address over a sliding window
// and raises an alert once the threshold is crossed. Counters and alert
// cooldowns expire on their own.
type LoginMonitor struct {
	failures  *cache.Cache
	alerted   *cache.Cache
	threshold int

	mu     sync.Mutex
	alerts []SecurityAlert
}

func NewLoginMonitor() *LoginMonitor {
	return &LoginMonitor{
		failures:  cache.New(failedLoginWindow, 2*failedLoginWindow),
		alerted:   cache.New(alertCooldown, 2*alertCooldown),
		threshold: failedLoginThreshold,
	}
}

// RecordFailure counts a failed login from ip. It reports whether this
// failure raised a new alert.
func (m *LoginMonitor) RecordFailure(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var attempts []time.Time
	if v, ok := m.failures.Get(ip); ok {
		attempts = v.([]time.Time)
	}

	windowStart := now.Add(-failedLoginWindow)
	recent := attempts[:0]
	for _, t := range attempts {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures.SetDefault(ip, recent)

	if len(recent) < m.threshold {
		return false
	}
	if _, cooling := m.alerted.Get(ip); cooling {
		return false
	}
	m.alerted.SetDefault(ip, now)

	alert := SecurityAlert{Timestamp: now, IP: ip, Reason: "Multiple failed logins detected", Attempts: len(recent)}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[:maxAlerts]
	}

	zap.L().Warn("security alert",
		zap.String("reason", alert.Reason),
		zap.String("ip", ip),
		zap.Int("attempts", alert.Attempts),
	)
	return true
}

// Reset clears the failure count for ip after a successful login
func (m *LoginMonitor) Reset(ip string) {
	m.failures.Delete(ip)
}

// RecentAlerts returns a copy of the alert history, newest first
func (m *LoginMonitor) RecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SecurityAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}
