package clipserver

import "github.com/anatolykoptev/go_clipverb/internal/engine/clips"

// GenerateContentInput is the input for generate_content.
type GenerateContentInput struct {
	VideoPath    string         `json:"video_path,omitempty" jsonschema:"Path to a local video file to upload"`
	VideoBase64  string         `json:"video_base64,omitempty" jsonschema:"Base64-encoded video bytes (requires mime_type)"`
	MIMEType     string         `json:"mime_type,omitempty" jsonschema:"MIME type of the uploaded video, e.g. video/mp4. Guessed from video_path when empty"`
	YouTubeURL   string         `json:"youtube_url,omitempty" jsonschema:"Public video URL (YouTube or any http(s) page)"`
	Mode         string         `json:"mode,omitempty" jsonschema:"Workspace mode that picks defaults: blog (default), report, social, audio"`
	Persona      string         `json:"persona,omitempty" jsonschema:"Writing persona, e.g. Professional AI, Investigative Journalist, Startup Founder"`
	ContentType  string         `json:"content_type,omitempty" jsonschema:"Output format: Summary, Blog Post, News Article, LinkedIn Post, X (Twitter) Thread, Explain Like I'm 5, Client Report"`
	Language     string         `json:"language,omitempty" jsonschema:"Output language: English, Hindi, Kannada, Tamil, Telugu, Spanish, French, German"`
	Template     string         `json:"template,omitempty" jsonschema:"Structure template, e.g. Standard Structure, Educational Course, Debate Summary"`
	ResearchMode string         `json:"research_mode,omitempty" jsonschema:"strict (source only) or enhanced (may search the web). Default: enhanced"`
	Segment      *clips.Segment `json:"segment,omitempty" jsonschema:"Optional time range {enabled, start, end} in HH:MM:SS"`
	AgencyName   string         `json:"agency_name,omitempty" jsonschema:"Agency name for branded reports"`
	ClientName   string         `json:"client_name,omitempty" jsonschema:"Client the report is prepared for"`
	AgencyLogo   string         `json:"agency_logo,omitempty" jsonschema:"Base64-encoded PNG or JPEG logo"`
}

// GenerateContentOutput is the result of generate_content.
type GenerateContentOutput struct {
	Text    string           `json:"text"`
	Sources []clips.Citation `json:"sources"`
	State   clips.State      `json:"state"`
	Partial bool             `json:"partial,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// GenerateAudioInput is the input for generate_audio.
type GenerateAudioInput struct {
	Text string `json:"text,omitempty" jsonschema:"Text to speak. Defaults to the last generated content"`
}

// GenerateAudioOutput describes the synthesized file.
type GenerateAudioOutput struct {
	Path            string  `json:"path"`
	MIMEType        string  `json:"mime_type"`
	DurationSeconds float64 `json:"duration_seconds"`
	InputChars      int     `json:"input_chars"`
}

// ExportDocumentInput is the input for export_document.
type ExportDocumentInput struct {
	Format       string           `json:"format" jsonschema:"txt or pdf"`
	Text         string           `json:"text,omitempty" jsonschema:"Document body. Defaults to the last generated content"`
	Sources      []clips.Citation `json:"sources,omitempty" jsonschema:"Sources to list at the end"`
	ContentType  string           `json:"content_type,omitempty" jsonschema:"Content type printed in the header"`
	Language     string           `json:"language,omitempty" jsonschema:"Language printed in the header"`
	ResearchMode string           `json:"research_mode,omitempty" jsonschema:"strict or enhanced"`
	AgencyName   string           `json:"agency_name,omitempty" jsonschema:"Agency name for the brand header"`
	ClientName   string           `json:"client_name,omitempty" jsonschema:"Client the report is prepared for"`
	AgencyLogo   string           `json:"agency_logo,omitempty" jsonschema:"Base64-encoded PNG or JPEG logo"`
}

// ExportDocumentOutput is the saved document.
type ExportDocumentOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Bytes  int    `json:"bytes"`
}

// SharePostInput is the input for share_post.
type SharePostInput struct {
	Platform string `json:"platform" jsonschema:"linkedin, twitter (or x), medium"`
	Text     string `json:"text,omitempty" jsonschema:"Post text. Defaults to the last generated content"`
	Adapt    bool   `json:"adapt,omitempty" jsonschema:"Rewrite the text to fit the platform before sharing"`
}

// PreferencesInput is the input for save_preferences.
type PreferencesInput struct {
	Language   string `json:"language,omitempty" jsonschema:"Preferred output language"`
	Persona    string `json:"persona,omitempty" jsonschema:"Preferred persona"`
	Template   string `json:"template,omitempty" jsonschema:"Preferred template"`
	AgencyName string `json:"agency_name,omitempty" jsonschema:"Agency name used for reports"`
	AgencyLogo string `json:"agency_logo,omitempty" jsonschema:"Base64-encoded PNG or JPEG logo"`
}

// PreferencesOutput mirrors the stored preferences.
type PreferencesOutput struct {
	Language   string `json:"language,omitempty"`
	Persona    string `json:"persona,omitempty"`
	Template   string `json:"template,omitempty"`
	AgencyName string `json:"agency_name,omitempty"`
	HasLogo    bool   `json:"has_logo"`
}

// SessionStatusOutput reports the calling client's generation state.
type SessionStatusOutput struct {
	SessionID string `json:"session_id"`
	clips.Status
	HasResult bool `json:"has_result"`
}
