package chat_test

import (
	"testing"

	"docpane/internal/chat"
)

func TestLogAppendKeepsOrder(t *testing.T) {
	var log chat.Log
	log.Append(chat.SenderUser, "first")
	log.Append(chat.SenderAssistant, "second")

	msgs := log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "second" {
		t.Errorf("order broken: %v", msgs)
	}
	if msgs[0].ID == msgs[1].ID {
		t.Error("message ids must be unique")
	}
}

func TestResolveReplacesPlaceholderExactlyOnce(t *testing.T) {
	var log chat.Log
	log.Append(chat.SenderUser, "query")
	id := log.AppendPending()

	if got := log.Messages()[1]; !got.Pending || got.Content != chat.LoadingMessage {
		t.Fatalf("placeholder = %+v", got)
	}

	if !log.Resolve(id, "answer") {
		t.Fatal("first Resolve must succeed")
	}
	if log.Resolve(id, "second answer") {
		t.Fatal("second Resolve must be rejected")
	}

	got := log.Messages()[1]
	if got.Pending || got.Content != "answer" {
		t.Errorf("message after resolve = %+v", got)
	}
	if log.Len() != 2 {
		t.Errorf("resolve must replace in place, len = %d", log.Len())
	}
}

func TestResolveUnknownIDIsNoOp(t *testing.T) {
	var log chat.Log
	log.Append(chat.SenderUser, "hello")
	if log.Resolve("missing", "x") {
		t.Fatal("resolving an unknown id must fail")
	}
}

func TestReset(t *testing.T) {
	var log chat.Log
	log.Append(chat.SenderUser, "a")
	log.Reset()
	if log.Len() != 0 {
		t.Fatal("reset must drop all messages")
	}
}
