package transcript

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Direction tells who authored a message.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
	// DirectionOther covers activity and template entries emitted by the channel.
	DirectionOther Direction = "other"
)

const (
	AgentLabel         = "Agent"
	UserLabel          = "User"
	EmptyContentMarker = "[Tệp đính kèm hoặc tin nhắn trống]"
	TimestampLayout    = "15:04:05 2/1/2006"
)

// ErrEmptyTranscript is returned when there is nothing to format.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Message is one immutable transcript entry.
type Message struct {
	ID        int64
	Direction Direction
	Content   string
	CreatedAt time.Time
}

// Label returns the sender label used in formatted history.
func (m Message) Label() string {
	if m.Direction == DirectionOutbound {
		return AgentLabel
	}
	return UserLabel
}

// Sorted returns a copy of messages in ascending timestamp order. Ties keep source order.
func Sorted(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Format renders messages as one chronological block, one line per message.
func Format(messages []Message, loc *time.Location) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyTranscript
	}
	if loc == nil {
		loc = time.UTC
	}

	sorted := Sorted(messages)
	lines := make([]string, 0, len(sorted))
	for _, msg := range sorted {
		content := msg.Content
		if content == "" {
			content = EmptyContentMarker
		}
		lines = append(lines, "["+msg.CreatedAt.In(loc).Format(TimestampLayout)+"] "+msg.Label()+": "+content)
	}
	return strings.Join(lines, "\n"), nil
}

// LastInbound returns the most recent customer message.
func LastInbound(messages []Message) (Message, bool) {
	sorted := Sorted(messages)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Direction == DirectionInbound {
			return sorted[i], true
		}
	}
	return Message{}, false
}
