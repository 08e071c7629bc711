package clipserver

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
)

// sourceFromInput turns the three mutually exclusive source fields into a
// clips.Source. Uploads are size-checked before they are read into memory.
func sourceFromInput(in GenerateContentInput, limit int64) (clips.Source, error) {
	path := strings.TrimSpace(in.VideoPath)
	encoded := strings.TrimSpace(in.VideoBase64)
	ref := strings.TrimSpace(in.YouTubeURL)

	set := 0
	for _, v := range []string{path, encoded, ref} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return clips.Source{}, fmt.Errorf("%w: one of video_path, video_base64 or youtube_url is required", clips.ErrConfiguration)
	case set > 1:
		return clips.Source{}, fmt.Errorf("%w: video_path, video_base64 and youtube_url are mutually exclusive", clips.ErrConfiguration)
	}

	switch {
	case ref != "":
		return clips.RemoteSource(ref), nil
	case encoded != "":
		if in.MIMEType == "" {
			return clips.Source{}, fmt.Errorf("%w: mime_type is required with video_base64", clips.ErrConfiguration)
		}
		// DecodedLen overshoots by up to two padding bytes; the resolver
		// enforces the exact limit.
		if n := int64(base64.StdEncoding.DecodedLen(len(encoded))); limit > 0 && n-2 > limit {
			return clips.Source{}, &clips.OversizedInputError{Size: n, Limit: limit}
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return clips.Source{}, fmt.Errorf("%w: video_base64: %w", clips.ErrConfiguration, err)
		}
		return clips.UploadSource(data, in.MIMEType), nil
	default:
		return readVideoFile(path, in.MIMEType, limit)
	}
}

func readVideoFile(path, mimeType string, limit int64) (clips.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return clips.Source{}, fmt.Errorf("%w: %w", clips.ErrConfiguration, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return clips.Source{}, fmt.Errorf("%w: %w", clips.ErrConfiguration, err)
	}
	if info.IsDir() {
		return clips.Source{}, fmt.Errorf("%w: %s is a directory", clips.ErrConfiguration, path)
	}
	if limit > 0 && info.Size() > limit {
		return clips.Source{}, &clips.OversizedInputError{Size: info.Size(), Limit: limit}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return clips.Source{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if mimeType == "" {
		mimeType = guessMIME(path, data)
	}
	return clips.UploadSource(data, mimeType), nil
}

// videoTypes covers the containers Gemini accepts; the mime package only
// knows them when the host has a mime.types file.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
}

// guessMIME prefers the extension and falls back to content sniffing.
func guessMIME(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return http.DetectContentType(data)
}

// decodeLogo accepts an optional base64 logo.
func decodeLogo(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: agency_logo: %w", clips.ErrConfiguration, err)
	}
	return data, nil
}
