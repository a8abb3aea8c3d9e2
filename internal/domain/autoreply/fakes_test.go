package autoreply

import (
	"context"
	"sync"

	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeSettings struct {
	rec          *recorder
	config       *settings.TrainingConfig
	configErr    error
	inference    *settings.InferenceSettings
	inferenceErr error
	channel      *settings.ChannelSettings
	channelErr   error
}

func (f *fakeSettings) GetTrainingConfig(context.Context) (*settings.TrainingConfig, error) {
	f.rec.record("settings.training")
	return f.config, f.configErr
}

func (f *fakeSettings) GetInferenceSettings(context.Context) (*settings.InferenceSettings, error) {
	f.rec.record("settings.inference")
	return f.inference, f.inferenceErr
}

func (f *fakeSettings) GetChannelSettings(context.Context) (*settings.ChannelSettings, error) {
	f.rec.record("settings.channel")
	return f.channel, f.channelErr
}

type sentMessage struct {
	content string
	private bool
}

type fakeChannel struct {
	rec         *recorder
	messages    []transcript.Message
	listErr     error
	sendErr     error
	noteErr     error
	markReadErr error
	sent        []sentMessage
}

func (f *fakeChannel) ListMessages(context.Context, *settings.ChannelSettings, string) ([]transcript.Message, error) {
	f.rec.record("channel.list")
	return f.messages, f.listErr
}

func (f *fakeChannel) SendMessage(_ context.Context, _ *settings.ChannelSettings, _ string, content string, private bool) error {
	if private {
		f.rec.record("channel.note")
	} else {
		f.rec.record("channel.send")
	}
	f.sent = append(f.sent, sentMessage{content: content, private: private})
	if private {
		return f.noteErr
	}
	return f.sendErr
}

func (f *fakeChannel) MarkAsRead(context.Context, *settings.ChannelSettings, string) error {
	f.rec.record("channel.mark_read")
	return f.markReadErr
}

type fakeInference struct {
	rec      *recorder
	reply    string
	err      error
	model    string
	messages []inference.Message
}

func (f *fakeInference) Complete(_ context.Context, _ *settings.InferenceSettings, model string, messages []inference.Message) (string, error) {
	f.rec.record("inference.complete")
	f.model = model
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeInference) Embed(context.Context, *settings.InferenceSettings, string, string) ([]float32, error) {
	f.rec.record("inference.embed")
	return nil, nil
}

type fakeSearcher struct {
	rec   *recorder
	docs  []retrieval.Document
	err   error
	query string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]retrieval.Document, error) {
	f.rec.record("retrieval.search")
	f.query = query
	return f.docs, f.err
}

type fakeTyping struct {
	rec    *recorder
	mu     sync.Mutex
	state  map[string]bool
	writes []bool
	err    error
}

func (f *fakeTyping) SetTyping(_ context.Context, conversationID string, typing bool) error {
	if typing {
		f.rec.record("typing.on")
	} else {
		f.rec.record("typing.off")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, typing)
	if f.err != nil {
		return f.err
	}
	f.state[conversationID] = typing
	return nil
}

type fakeAudit struct {
	rec     *recorder
	entries []AuditEntry
	err     error
}

func (f *fakeAudit) Append(_ context.Context, entry AuditEntry) error {
	f.rec.record("audit." + string(entry.Status))
	f.entries = append(f.entries, entry)
	return f.err
}

type fakeObserver struct {
	NoopObserver
	mu                sync.Mutex
	outcomes          []Outcome
	retrievalFailures int
	notes             []bool
}

func (f *fakeObserver) RetrievalFailed(context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retrievalFailures++
}

func (f *fakeObserver) ErrorNoteDelivered(_ context.Context, delivered bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, delivered)
}

func (f *fakeObserver) RunFinished(_ context.Context, outcome Outcome, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
}
