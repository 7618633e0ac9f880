package reporter

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/featfeed/internal/model"
)

// Sender is the part of *tgbotapi.BotAPI the reporter needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reporter sends short messages to a Telegram admin chat.
// It is nil-safe: if adminID is 0 or the receiver is nil, Notify is a no-op.
type Reporter struct {
	bot     Sender
	adminID int64
}

func New(bot Sender, adminID int64) *Reporter {
	return &Reporter{bot: bot, adminID: adminID}
}

func (r *Reporter) Notify(msg string) {
	if r == nil || r.bot == nil || r.adminID == 0 {
		return
	}
	if _, err := r.bot.Send(tgbotapi.NewMessage(r.adminID, msg)); err != nil {
		slog.Error("failed to send notification", "err", err)
	}
}

// ReportRuns sends one line per run.
func (r *Reporter) ReportRuns(runs []model.Run) {
	if len(runs) == 0 {
		return
	}
	r.Notify(FormatRuns(runs))
}

func FormatRuns(runs []model.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "bench: %d features", len(runs))
	for _, run := range runs {
		fmt.Fprintf(&b, "\n%s: %d items in %s, checksum %08x", run.Feature, run.ItemsCount, run.Duration, run.Checksum)
	}
	return b.String()
}
