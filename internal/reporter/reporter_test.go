package reporter

import (
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/featfeed/internal/model"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestReporter_Notify(t *testing.T) {
	sender := &fakeSender{}
	New(sender, 42).Notify("hello")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Equal(t, "hello", sender.sent[0].Text)
}

func TestReporter_Notify_NoOp(t *testing.T) {
	sender := &fakeSender{}
	New(sender, 0).Notify("hello")
	assert.Empty(t, sender.sent)

	var r *Reporter
	assert.NotPanics(t, func() { r.Notify("hello") })
	assert.NotPanics(t, func() { New(nil, 1).Notify("hello") })
}

func TestReporter_Notify_SendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("unreachable")}
	assert.NotPanics(t, func() { New(sender, 1).Notify("hello") })
}

func TestReporter_ReportRuns(t *testing.T) {
	sender := &fakeSender{}
	r := New(sender, 7)

	r.ReportRuns(nil)
	assert.Empty(t, sender.sent)

	r.ReportRuns([]model.Run{
		{Feature: "Feat422", ItemsCount: 10, Duration: 2 * time.Millisecond, Checksum: 0xab},
		{Feature: "Feat424", ItemsCount: 10, Duration: time.Millisecond, Checksum: 0xcd},
	})
	require.Len(t, sender.sent, 1)
	assert.Equal(t,
		"bench: 2 features\nFeat422: 10 items in 2ms, checksum 000000ab\nFeat424: 10 items in 1ms, checksum 000000cd",
		sender.sent[0].Text,
	)
}
