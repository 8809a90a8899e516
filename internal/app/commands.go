package app

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"docpane/internal/api"
	"docpane/internal/config"
)

// Async command constructors. Each closure captures the service and
// the generation it runs under; nothing in here touches the model.

func (m *Model) loadTree() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		nodes, err := svc.Tree(context.Background())
		return treeLoadedMsg{nodes: nodes, err: err}
	}
}

func (m *Model) loadDetail(id, gen int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		detail, err := svc.Detail(context.Background(), id)
		return detailLoadedMsg{gen: gen, detail: detail, err: err}
	}
}

func (m *Model) loadPDFText(id, gen int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		data, err := svc.PDFText(context.Background(), id)
		return pdfTextMsg{gen: gen, data: data, err: err}
	}
}

func (m *Model) loadWord(id, gen int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		doc, err := svc.Word(context.Background(), id)
		return wordMsg{gen: gen, doc: doc, err: err}
	}
}

func (m *Model) loadExcel(id, gen int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		book, err := svc.Excel(context.Background(), id)
		return excelMsg{gen: gen, book: book, err: err}
	}
}

// loadImage fetches the document's bytes and renders them to terminal
// cells off the Update goroutine.
func (m *Model) loadImage(id, gen int) tea.Cmd {
	svc := m.svc
	url := svc.MediaURL("image", id)
	maxW, maxH := m.previewImageBudget()
	return func() tea.Msg {
		data, err := svc.Media(context.Background(), url)
		if err != nil {
			return imageMsg{gen: gen, err: err}
		}
		render, err := renderImageCells(data, maxW, maxH)
		return imageMsg{gen: gen, render: render, err: err}
	}
}

// fetchGalleryImage resolves an embedded word image reference and
// renders it for the overlay.
func (m *Model) fetchGalleryImage(ref string, gen int) tea.Cmd {
	svc := m.svc
	url := svc.Resolve(ref)
	maxW, maxH := m.overlayImageBudget()
	return func() tea.Msg {
		data, err := svc.Media(context.Background(), url)
		if err != nil {
			return galleryImageMsg{gen: gen, err: err}
		}
		render, err := renderImageCells(data, maxW, maxH)
		return galleryImageMsg{gen: gen, render: render, err: err}
	}
}

// runSearch posts the query. An empty result set is folded into the
// error channel so handleSearchDone has a single failure path.
func (m *Model) runSearch(query string, gen int, pendingID string) tea.Cmd {
	svc := m.svc
	topK := m.cfg.SearchTopK
	var docID *int
	if m.pv.sel != nil {
		id := m.pv.sel.id
		docID = &id
	}
	return func() tea.Msg {
		results, err := svc.Search(context.Background(), query, topK, docID)
		if err == nil && len(results) == 0 {
			err = api.ErrEmptyResult
		}
		return searchDoneMsg{gen: gen, pendingID: pendingID, results: results, err: err}
	}
}

func (m *Model) clearFlagsAfter(gen int) tea.Cmd {
	return tea.Tick(flagWindow, func(time.Time) tea.Msg {
		return clearFlagsMsg{gen: gen}
	})
}

// waitForConfigChange blocks on the fsnotify watcher until the config
// file is touched. The handler re-arms it after every delivery.
func (m *Model) waitForConfigChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	watcher, path := m.watcher, m.configPath
	return func() tea.Msg {
		if !config.WaitForChange(watcher, path) {
			return nil
		}
		return configChangedMsg{}
	}
}

func (m *Model) reloadConfigCmd() tea.Cmd {
	path := m.configPath
	return func() tea.Msg {
		cfg, err := config.Load(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// openInSystem hands a URL to the OS default handler.
func openInSystem(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return statusNoticeMsg{text: "could not open system handler", isError: true}
		}
		return statusNoticeMsg{text: "opened in system app", isError: false}
	}
}

// noticeFor translates a failure into status-bar text.
func noticeFor(err error) string {
	var netErr *api.NetworkError
	var srvErr *api.ServerError
	switch {
	case errors.As(err, &netErr):
		return "cannot reach the document service"
	case errors.As(err, &srvErr):
		if srvErr.Message != "" {
			return "service error: " + srvErr.Message
		}
		return "the document service reported an error"
	case errors.Is(err, api.ErrEmptyResult):
		return "nothing found"
	default:
		return err.Error()
	}
}
