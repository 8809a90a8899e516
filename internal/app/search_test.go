package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docpane/internal/api"
	"docpane/internal/chat"
	"docpane/internal/config"
	"docpane/internal/preview"
)

// collect executes a command tree and returns every message it
// produces. Only safe for commands that settle immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// startQuery types a question into the chat pane and submits it,
// returning the pending placeholder id. The search command itself is
// not executed.
func startQuery(t *testing.T, m Model, text string) (Model, string) {
	t.Helper()
	m.focusChatPane()
	m, _ = apply(t, m, keyRunes(text))
	m, _ = apply(t, m, special(tea.KeyEnter))
	msgs := m.chatLog.Messages()
	last := msgs[len(msgs)-1]
	if !last.Pending {
		t.Fatal("no pending placeholder after submit")
	}
	return m, last.ID
}

func resultFor(id int, name, text string, score float64) api.SearchResult {
	return api.SearchResult{
		Document: api.DocumentRef{ID: id, Name: name},
		Text:     text,
		Score:    score,
	}
}

func TestQueryFlowAppendsUserAndPlaceholder(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m.focusChatPane()
	m, _ = apply(t, m, keyRunes("where is the budget"))
	m, cmd := apply(t, m, special(tea.KeyEnter))

	if cmd == nil {
		t.Fatal("submit returned no search command")
	}
	if m.chatLog.Len() != 2 {
		t.Fatalf("chat log len = %d, want user + placeholder", m.chatLog.Len())
	}
	msgs := m.chatLog.Messages()
	if msgs[0].Sender != chat.SenderUser || msgs[0].Content != "where is the budget" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if !msgs[1].Pending || msgs[1].Content != chat.LoadingMessage {
		t.Errorf("placeholder = %+v", msgs[1])
	}
	if !m.searching {
		t.Error("searching flag not set")
	}
	if m.chatInput.Value() != "" {
		t.Error("input not cleared after submit")
	}
}

func TestSearchScopesToSelectedDocument(t *testing.T) {
	svc := newStub(t)
	svc.results = []api.SearchResult{
		resultFor(2, "Report.pdf", "Revenue grew nine percent.", 0.92),
		resultFor(2, "Report.pdf", "Costs held flat.", 0.87),
	}
	m := newTestModel(t, svc)
	m = openAndSettle(t, m, 2)

	m.focusChatPane()
	m, _ = apply(t, m, keyRunes("growth"))
	m, cmd := apply(t, m, special(tea.KeyEnter))

	var done tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(searchDoneMsg); ok {
			done = msg
		}
	}
	if done == nil {
		t.Fatal("search command produced no completion")
	}
	if svc.lastQuery != "growth" {
		t.Errorf("query sent = %q", svc.lastQuery)
	}
	if svc.lastTopK != 10 {
		t.Errorf("top_k sent = %d, want the configured 10", svc.lastTopK)
	}
	if svc.lastDocID == nil || *svc.lastDocID != 2 {
		t.Fatalf("document scope = %v, want 2", svc.lastDocID)
	}

	m, _ = apply(t, m, done)
	if m.searching {
		t.Error("searching flag not cleared")
	}
	msgs := m.chatLog.Messages()
	answer := msgs[len(msgs)-1]
	if answer.Pending {
		t.Fatal("placeholder not resolved")
	}
	if !strings.Contains(answer.Content, "Found relevant content in 1 document:") {
		t.Errorf("summary = %q", answer.Content)
	}
}

func TestSearchSummaryGroupsAndFlagsDocuments(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, pid := startQuery(t, m, "quarterly numbers")

	m, _ = apply(t, m, searchDoneMsg{
		gen:       m.chatGen,
		pendingID: pid,
		results: []api.SearchResult{
			resultFor(2, "Report.pdf", "Revenue grew nine percent.", 0.92),
			resultFor(4, "budget.xlsx", "Headcount line 40.", 0.81),
			resultFor(2, "Report.pdf", "Costs held flat.", 0.7),
		},
	})

	if m.searching {
		t.Error("searching flag not cleared")
	}
	if len(m.flagged) != 2 {
		t.Fatalf("flagged = %v, want documents 2 and 4", m.flagged)
	}
	for _, id := range []int{2, 4} {
		if _, ok := m.flagged[id]; !ok {
			t.Errorf("document %d not flagged", id)
		}
	}

	answer := m.chatLog.Messages()[1]
	if answer.Pending {
		t.Fatal("placeholder not resolved")
	}
	if !strings.Contains(answer.Content, "Found relevant content in 2 documents:") {
		t.Errorf("summary header wrong: %q", answer.Content)
	}
	report := strings.Index(answer.Content, "**Report.pdf**")
	budget := strings.Index(answer.Content, "**budget.xlsx**")
	if report < 0 || budget < 0 || report > budget {
		t.Errorf("group order must follow first appearance:\n%s", answer.Content)
	}
	if !strings.Contains(answer.Content, "92.0%") {
		t.Errorf("score annotation missing:\n%s", answer.Content)
	}
	if m.pv.sel != nil {
		t.Error("multiple groups must not auto-preview")
	}
}

func TestSingleGroupAutoPreviewsWithHighlight(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, pid := startQuery(t, m, "revenue")

	m, cmd := apply(t, m, searchDoneMsg{
		gen:       m.chatGen,
		pendingID: pid,
		results: []api.SearchResult{
			resultFor(2, "Report.pdf", "Revenue grew nine percent.", 0.92),
			resultFor(2, "Report.pdf", "Costs held flat.", 0.7),
		},
	})

	if cmd == nil {
		t.Fatal("auto-preview should schedule the detail fetch")
	}
	if m.pv.sel == nil || m.pv.sel.id != 2 {
		t.Fatalf("selection = %+v, want document 2", m.pv.sel)
	}
	if m.pv.status != preview.Loading {
		t.Errorf("status = %v, want Loading", m.pv.status)
	}
	if m.pv.highlight != "Revenue grew nine percent." {
		t.Errorf("highlight = %q, want the top chunk text", m.pv.highlight)
	}
	if len(m.breadcrumb) == 0 || m.breadcrumb[len(m.breadcrumb)-1].Name != "Report.pdf" {
		t.Error("breadcrumb not set by auto-preview")
	}
	if _, ok := m.flagged[2]; !ok {
		t.Error("referenced document not flagged")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d; auto-preview must not move it", m.cursor)
	}
}

func TestEmptySearchResolvesPlaceholderOnce(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, pid := startQuery(t, m, "nothing matches this")

	done := searchDoneMsg{gen: m.chatGen, pendingID: pid, err: api.ErrEmptyResult}
	m, _ = apply(t, m, done)

	if m.searching {
		t.Error("searching flag not cleared")
	}
	if m.chatLog.Len() != 2 {
		t.Fatalf("chat log len = %d, want 2", m.chatLog.Len())
	}
	answer := m.chatLog.Messages()[1]
	if answer.Pending || answer.Content != chat.NoResultsMessage {
		t.Fatalf("placeholder resolution = %+v", answer)
	}

	// A duplicate completion must change nothing.
	m, _ = apply(t, m, done)
	if m.chatLog.Len() != 2 {
		t.Errorf("duplicate completion grew the log to %d", m.chatLog.Len())
	}
	if got := m.chatLog.Messages()[1].Content; got != chat.NoResultsMessage {
		t.Errorf("duplicate completion rewrote the answer: %q", got)
	}
}

func TestStaleSearchResolvesPlaceholderWithoutSideEffects(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, firstPID := startQuery(t, m, "first question")
	staleGen := m.chatGen

	// A second query supersedes the first before it completes.
	m, _ = apply(t, m, keyRunes("second question"))
	m, _ = apply(t, m, special(tea.KeyEnter))
	secondPID := m.chatLog.Messages()[3].ID

	m, _ = apply(t, m, searchDoneMsg{
		gen:       staleGen,
		pendingID: firstPID,
		results: []api.SearchResult{
			resultFor(2, "Report.pdf", "Revenue grew nine percent.", 0.92),
		},
	})

	first := m.chatLog.Messages()[1]
	if first.Pending || !strings.Contains(first.Content, "Found relevant content") {
		t.Errorf("stale completion must still answer its own question: %+v", first)
	}
	if !m.searching {
		t.Error("the newer query is still in flight")
	}
	if len(m.flagged) != 0 {
		t.Error("stale completion must not flag documents")
	}
	if m.pv.sel != nil {
		t.Error("stale completion must not auto-preview")
	}

	m, _ = apply(t, m, searchDoneMsg{gen: m.chatGen, pendingID: secondPID, err: api.ErrEmptyResult})
	if m.searching {
		t.Error("current completion must clear the flag")
	}
	if got := m.chatLog.Messages()[3].Content; got != chat.NoResultsMessage {
		t.Errorf("second answer = %q", got)
	}
}

func TestServerFailureReadsAsNoResults(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, pid := startQuery(t, m, "broken backend")

	m, _ = apply(t, m, searchDoneMsg{
		gen:       m.chatGen,
		pendingID: pid,
		err:       &api.ServerError{Op: "search", Message: "index offline"},
	})

	answer := m.chatLog.Messages()[1]
	if answer.Content != chat.NoResultsMessage {
		t.Errorf("answer = %q, want the no-results reply", answer.Content)
	}
	if m.statusText != "" {
		t.Errorf("server failures resolve quietly, status = %q", m.statusText)
	}
}

func TestNetworkFailureResolvesPlaceholderAndWarns(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m, pid := startQuery(t, m, "unreachable")

	m, _ = apply(t, m, searchDoneMsg{
		gen:       m.chatGen,
		pendingID: pid,
		err:       &api.NetworkError{Op: "search", Err: errors.New("connection refused")},
	})

	answer := m.chatLog.Messages()[1]
	if answer.Pending {
		t.Fatal("placeholder not resolved")
	}
	if !strings.Contains(answer.Content, "Search failed") {
		t.Errorf("answer = %q", answer.Content)
	}
	if m.statusText != "cannot reach the document service" {
		t.Errorf("status = %q", m.statusText)
	}
	if !m.statusErr {
		t.Error("status should be an error notice")
	}
}

func TestFlagsClearOnlyForCurrentGeneration(t *testing.T) {
	m := newTestModel(t, newStub(t))
	m.flagged = map[int]struct{}{2: {}, 4: {}}
	m.flagGen = 3

	m, _ = apply(t, m, clearFlagsMsg{gen: 2})
	if len(m.flagged) != 2 {
		t.Fatal("an expired clear must not wipe newer flags")
	}

	m, _ = apply(t, m, clearFlagsMsg{gen: 3})
	if len(m.flagged) != 0 {
		t.Fatal("current clear did not wipe the flags")
	}
}

func TestConfigReloadAppliesAndNotesRestart(t *testing.T) {
	m := newTestModel(t, newStub(t))

	next := config.Default()
	next.Theme = "dark"
	next.SearchTopK = 5
	m, _ = apply(t, m, configReloadedMsg{cfg: next})

	if m.cfg.SearchTopK != 5 || m.cfg.Theme != "dark" {
		t.Fatalf("config not applied: %+v", m.cfg)
	}
	if m.statusText != "config reloaded" || m.statusErr {
		t.Errorf("status = %q (err=%v)", m.statusText, m.statusErr)
	}

	moved := next
	moved.ServiceURL = "http://elsewhere:9000"
	m, _ = apply(t, m, configReloadedMsg{cfg: moved})
	if !strings.Contains(m.statusText, "restart") {
		t.Errorf("service_url change should note the restart, status = %q", m.statusText)
	}
}
