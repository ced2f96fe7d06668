package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a file by what ffprobe can read a duration from.
type Kind string

const (
	KindUnknown Kind = ""
	KindAudio   Kind = "audio"
	KindVideo   Kind = "video"
)

var kindsByExt = map[string]Kind{
	".mp4":  KindVideo,
	".mkv":  KindVideo,
	".avi":  KindVideo,
	".mov":  KindVideo,
	".wmv":  KindVideo,
	".flv":  KindVideo,
	".webm": KindVideo,
	".m4v":  KindVideo,
	".mpeg": KindVideo,
	".mpg":  KindVideo,
	".3gp":  KindVideo,

	".mp3":  KindAudio,
	".wav":  KindAudio,
	".aac":  KindAudio,
	".flac": KindAudio,
	".ogg":  KindAudio,
	".m4a":  KindAudio,
	".wma":  KindAudio,
	".aiff": KindAudio,
}

// KindOf looks the extension up case-insensitively.
func KindOf(path string) Kind {
	return kindsByExt[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return KindOf(path) != KindUnknown
}
