package ops

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/netmon"
	"github.com/kosmosbot/kosmos/internal/repository"
)

// collector exposes monitor counters and database depths as Prometheus
// metrics, read fresh on every scrape.
type collector struct {
	monitor   *netmon.Monitor
	users     *repository.UserRepository
	reminders *repository.ReminderRepository
	queue     *repository.PendingMessageRepository
	log       *zap.Logger

	sendSuccesses   *prometheus.Desc
	sendFailures    *prometheus.Desc
	consecutive     *prometheus.Desc
	alertActive     *prometheus.Desc
	pendingMessages *prometheus.Desc
	remindersByStat *prometheus.Desc
	usersTotal      *prometheus.Desc
}

func newCollector(monitor *netmon.Monitor, users *repository.UserRepository, reminders *repository.ReminderRepository, queue *repository.PendingMessageRepository, log *zap.Logger) *collector {
	return &collector{
		monitor:   monitor,
		users:     users,
		reminders: reminders,
		queue:     queue,
		log:       log,
		sendSuccesses: prometheus.NewDesc("kosmos_send_successes_total",
			"Successful sends to the Telegram API.", nil, nil),
		sendFailures: prometheus.NewDesc("kosmos_send_failures_total",
			"Transient send failures to the Telegram API.", nil, nil),
		consecutive: prometheus.NewDesc("kosmos_consecutive_send_failures",
			"Current streak of transient send failures.", nil, nil),
		alertActive: prometheus.NewDesc("kosmos_network_alert_active",
			"1 while the network failure alert is active.", nil, nil),
		pendingMessages: prometheus.NewDesc("kosmos_pending_messages",
			"Messages waiting in the delivery queue.", nil, nil),
		remindersByStat: prometheus.NewDesc("kosmos_reminders",
			"Reminders by lifecycle status.", []string{"status"}, nil),
		usersTotal: prometheus.NewDesc("kosmos_users_total",
			"Registered users.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sendSuccesses
	ch <- c.sendFailures
	ch <- c.consecutive
	ch <- c.alertActive
	ch <- c.pendingMessages
	ch <- c.remindersByStat
	ch <- c.usersTotal
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.monitor.Stats()
	ch <- prometheus.MustNewConstMetric(c.sendSuccesses, prometheus.CounterValue, float64(stats.TotalSuccesses))
	ch <- prometheus.MustNewConstMetric(c.sendFailures, prometheus.CounterValue, float64(stats.TotalFailures))
	ch <- prometheus.MustNewConstMetric(c.consecutive, prometheus.GaugeValue, float64(stats.ConsecutiveFailures))
	alert := 0.0
	if stats.AlertActive {
		alert = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.alertActive, prometheus.GaugeValue, alert)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if n, err := c.queue.Count(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.pendingMessages, prometheus.GaugeValue, float64(n))
	} else {
		c.log.Debug("failed to count pending messages", zap.Error(err))
	}

	if counts, err := c.reminders.CountByStatus(ctx); err == nil {
		for status, n := range counts {
			ch <- prometheus.MustNewConstMetric(c.remindersByStat, prometheus.GaugeValue, float64(n), status)
		}
	} else {
		c.log.Debug("failed to count reminders", zap.Error(err))
	}

	if n, err := c.users.Count(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.usersTotal, prometheus.GaugeValue, float64(n))
	} else {
		c.log.Debug("failed to count users", zap.Error(err))
	}
}
