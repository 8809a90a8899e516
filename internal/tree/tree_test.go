package tree_test

import (
	"testing"

	"docpane/internal/tree"
)

func sampleTree() []tree.Node {
	return []tree.Node{
		{ID: 1, Name: "Finance", Type: tree.Folder, Children: []tree.Node{
			{ID: 2, Name: "Report.pdf", Type: tree.File, FileType: "pdf"},
			{ID: 3, Name: "Q3", Type: tree.Folder, Children: []tree.Node{
				{ID: 4, Name: "budget.xlsx", Type: tree.File, FileType: "xlsx"},
			}},
		}},
		{ID: 5, Name: "Media", Type: tree.Folder, Children: []tree.Node{
			{ID: 6, Name: "intro.mp4", Type: tree.File, FileType: "mp4"},
		}},
		{ID: 7, Name: "notes.txt", Type: tree.File, FileType: "txt"},
	}
}

func newModel(t *testing.T) *tree.Model {
	t.Helper()
	m := tree.New()
	m.Replace(sampleTree())
	return m
}

func TestToggleFoldsOnlyFolders(t *testing.T) {
	m := newModel(t)

	m.Toggle(1)
	if !m.Collapsed(1) {
		t.Fatal("folder 1 should be collapsed after toggle")
	}
	m.Toggle(1)
	if m.Collapsed(1) {
		t.Fatal("folder 1 should be expanded after second toggle")
	}

	m.Toggle(2) // file
	if m.Collapsed(2) {
		t.Error("toggling a file id must be a no-op")
	}
	m.Toggle(99) // absent
	if m.Collapsed(99) {
		t.Error("toggling an absent id must be a no-op")
	}
}

func TestReplaceResetsFoldState(t *testing.T) {
	m := newModel(t)
	m.Toggle(1)
	m.Toggle(5)

	m.Replace(sampleTree())
	if m.Collapsed(1) || m.Collapsed(5) {
		t.Fatal("fold state must be empty after a fresh load")
	}
}

func TestFrozenCopyIsolation(t *testing.T) {
	m := newModel(t)

	// Mutating the canonical tree must not leak into the snapshot
	// that path and search lookups read.
	m.Roots()[0].Children[0].Name = "mutated"

	if got := m.Frozen()[0].Children[0].Name; got != "Report.pdf" {
		t.Fatalf("frozen copy changed, got %q", got)
	}
}

func TestFilesPreOrder(t *testing.T) {
	m := newModel(t)

	files := m.Files()
	want := []int{2, 4, 6, 7}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d", len(files), len(want))
	}
	for i, id := range want {
		if files[i].ID != id {
			t.Errorf("files[%d].ID = %d, want %d", i, files[i].ID, id)
		}
	}
}

func TestContains(t *testing.T) {
	m := newModel(t)
	if !m.Contains(4) {
		t.Error("id 4 should be present")
	}
	if m.Contains(42) {
		t.Error("id 42 should be absent")
	}
}
