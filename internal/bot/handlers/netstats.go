package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleNetstats reports transport health. Always in English; it is an
// operator command, not part of the user-facing catalog.
func (h *Handlers) handleNetstats(msg *tgbotapi.Message) {
	stats := h.monitor.Stats()
	recent := h.monitor.RecentHistory(5)

	var b strings.Builder
	b.WriteString("📊 **Network Statistics**\n\n")
	fmt.Fprintf(&b, "**Success Rate:** %.1f%%\n", stats.SuccessRate*100)
	fmt.Fprintf(&b, "**Total Successes:** %d\n", stats.TotalSuccesses)
	fmt.Fprintf(&b, "**Total Timeouts:** %d\n", stats.TotalFailures)
	fmt.Fprintf(&b, "**Consecutive Timeouts:** %d\n", stats.ConsecutiveFailures)

	if stats.AlertActive {
		fmt.Fprintf(&b, "\n⚠️ **ALERT ACTIVE** - %d consecutive timeouts!\n", stats.ConsecutiveFailures)
	} else {
		b.WriteString("\n✅ **Network Status:** OK\n")
	}

	if stats.LastFailure != nil {
		fmt.Fprintf(&b, "**Last Timeout:** %s\n", stats.LastFailure.Format("2006-01-02 15:04:05"))
	}

	if len(recent) > 0 {
		b.WriteString("\n**Recent Events (last 5):**\n")
		for _, event := range recent {
			icon := "✅"
			if !event.Success {
				icon = "❌"
			}
			fmt.Fprintf(&b, "%s %s - %s\n", icon, event.Timestamp.Format("15:04:05"), event.Operation)
		}
	}

	h.sendMessage(msg.Chat.ID, b.String(), "Markdown")
}
