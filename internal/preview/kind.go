package preview

import "strings"

// Kind is the rendering strategy selected for a document's declared
// file type.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindWord
	KindExcel
	KindImage
	KindVideo
)

// String names the strategy for status lines and the debug log.
func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindWord:
		return "word"
	case KindExcel:
		return "excel"
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// KindOf maps a declared file type to its strategy. The type is
// normalized (trimmed, lowercased, leading dot stripped) before the
// match; anything unrecognized falls through to KindUnknown, the
// no-fetch placeholder strategy.
func KindOf(fileType string) Kind {
	switch NormalizeType(fileType) {
	case "pdf":
		return KindPDF
	case "doc", "docx":
		return KindWord
	case "xls", "xlsx":
		return KindExcel
	case "png", "jpg", "jpeg", "gif", "bmp", "webp":
		return KindImage
	case "mp4", "webm", "mov", "avi", "mkv", "wmv":
		return KindVideo
	}
	return KindUnknown
}

// NormalizeType canonicalizes a wire file type for dispatch.
func NormalizeType(fileType string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
}

// playableVideo lists the containers the platform player handoff is
// offered for; everything else renders the fallback text.
var playableVideo = map[string]struct{}{
	"mp4":  {},
	"webm": {},
	"mov":  {},
}

// Playable reports whether a video file type gets the playback
// affordance.
func Playable(fileType string) bool {
	_, ok := playableVideo[NormalizeType(fileType)]
	return ok
}
