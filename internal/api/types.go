package api

// DocumentRef identifies the source document of a search result.
type DocumentRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FileType string `json:"file_type,omitempty"`
}

// SearchResult is one ranked chunk returned by the semantic-search
// service. Score is normalized to [0,1].
type SearchResult struct {
	Document DocumentRef `json:"document"`
	Text     string      `json:"text"`
	Score    float64     `json:"score"`
}

// DocumentDetail is the per-document metadata record.
type DocumentDetail struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	FileType string         `json:"file_type"`
	Size     int64          `json:"size,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PDFText is the extracted text form of a PDF. Content carries the
// extractor's form-feed page delimiters.
type PDFText struct {
	Content  string         `json:"content"`
	Pages    int            `json:"pages"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// WordImage is one inline image reference of a Word document.
type WordImage struct {
	URL          string `json:"url"`
	Index        int    `json:"index"`
	OriginalName string `json:"original_name,omitempty"`
}

// WordDoc is the extracted form of a Word document.
type WordDoc struct {
	Content  string         `json:"content"`
	Images   []WordImage    `json:"images,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Sheet is one worksheet as a 2-D grid of cell values. Cells come
// back as whatever JSON type the extractor produced.
type Sheet struct {
	Name string  `json:"name"`
	Data [][]any `json:"data"`
}

// Workbook is the extracted form of a spreadsheet.
type Workbook struct {
	Sheets   []Sheet        `json:"sheets"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
