// Package chat owns the conversation log and the client-side shaping
// of retrieval results: grouping by source document and the markdown
// summaries the assistant answers with.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender discriminates the two message authors.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// LoadingMessage is the placeholder shown while a query is in flight.
const LoadingMessage = "Searching the collection…"

// NoResultsMessage is the fixed reply for an empty or unsuccessful
// retrieval.
const NoResultsMessage = "No relevant content found for your query."

// Message is one chat entry. Content is markdown; the view renders it
// through glamour. Pending marks the loading placeholder, which is
// replaced in place exactly once.
type Message struct {
	ID        string
	Sender    Sender
	Content   string
	Timestamp time.Time
	Pending   bool
}

// Log is the append-only message sequence.
type Log struct {
	messages []Message
}

// Append adds a settled message and returns its id.
func (l *Log) Append(sender Sender, content string) string {
	id := uuid.NewString()
	l.messages = append(l.messages, Message{
		ID:        id,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	})
	return id
}

// AppendPending adds the assistant loading placeholder and returns its
// id for the later Resolve.
func (l *Log) AppendPending() string {
	id := uuid.NewString()
	l.messages = append(l.messages, Message{
		ID:        id,
		Sender:    SenderAssistant,
		Content:   LoadingMessage,
		Timestamp: time.Now(),
		Pending:   true,
	})
	return id
}

// Resolve replaces the pending placeholder's content in place, at most
// once. Later calls for the same id report false and change nothing.
func (l *Log) Resolve(id, content string) bool {
	for i := range l.messages {
		if l.messages[i].ID == id && l.messages[i].Pending {
			l.messages[i].Content = content
			l.messages[i].Pending = false
			l.messages[i].Timestamp = time.Now()
			return true
		}
	}
	return false
}

// Messages returns the log in append order.
func (l *Log) Messages() []Message { return l.messages }

// Len reports the number of messages.
func (l *Log) Len() int { return len(l.messages) }

// Reset drops the conversation.
func (l *Log) Reset() { l.messages = nil }
