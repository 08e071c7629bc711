package clips

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_clipverb/internal/engine/sources"
)

// SourceKind tags which variant of Source is populated.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceRemote SourceKind = "remote"
)

// Source is either an uploaded binary or a remote video reference.
type Source struct {
	Kind      SourceKind
	Data      []byte // upload only
	MIMEType  string // upload only
	Reference string // remote only
}

// UploadSource wraps an uploaded video.
func UploadSource(data []byte, mimeType string) Source {
	return Source{Kind: SourceUpload, Data: data, MIMEType: mimeType}
}

// RemoteSource wraps a video URL.
func RemoteSource(ref string) Source {
	return Source{Kind: SourceRemote, Reference: strings.TrimSpace(ref)}
}

// Segment bounds analysis to a time range. Start and End are kept even
// when Enabled is false; readers must check Enabled first.
type Segment struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Branding is optional agency and client identity for reports.
type Branding struct {
	AgencyName string `json:"agency_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Logo       []byte `json:"logo,omitempty"`
}

// Default segment bounds for a fresh draft.
const (
	DefaultSegmentStart = "00:00:00"
	DefaultSegmentEnd   = "00:10:00"
)

// Draft is the mutable state edited step by step before a request.
// Snapshot turns it into an immutable GenerationConfig.
type Draft struct {
	Source       Source       `json:"-"`
	Persona      Persona      `json:"persona"`
	ContentType  ContentType  `json:"content_type"`
	Language     Language     `json:"language"`
	Template     Template     `json:"template"`
	ResearchMode ResearchMode `json:"research_mode"`
	Segment      Segment      `json:"segment"`
	Branding     Branding     `json:"branding"`
}

// NewDraft returns a draft preloaded with the defaults for mode.
func NewDraft(mode Mode) *Draft {
	d := &Draft{
		Persona:      PersonaProfessional,
		ContentType:  ContentBlogPost,
		Language:     LangEnglish,
		Template:     TemplateStandard,
		ResearchMode: ResearchEnhanced,
		Segment:      Segment{Start: DefaultSegmentStart, End: DefaultSegmentEnd},
	}
	switch mode {
	case ModeReport:
		d.ContentType = ContentClientReport
	case ModeSocial:
		d.ContentType = ContentLinkedInPost
	case ModeAudio:
		d.ContentType = ContentSummary
	}
	return d
}

var timecodeRE = regexp.MustCompile(`^(\d{2}):([0-5]\d):([0-5]\d)$`)

// parseTimecode converts HH:MM:SS into seconds.
func parseTimecode(s string) (int, error) {
	m := timecodeRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: timecode %q is not HH:MM:SS", ErrConfiguration, s)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	se, _ := strconv.Atoi(m[3])
	return h*3600 + mi*60 + se, nil
}

// Snapshot validates the draft and returns an immutable config.
func (d *Draft) Snapshot() (GenerationConfig, error) {
	var c GenerationConfig

	switch d.Source.Kind {
	case SourceUpload:
		if len(d.Source.Data) == 0 {
			return c, fmt.Errorf("%w: upload is empty", ErrConfiguration)
		}
		if d.Source.Reference != "" {
			return c, fmt.Errorf("%w: source has both upload and reference", ErrConfiguration)
		}
		if d.Source.MIMEType == "" {
			return c, fmt.Errorf("%w: upload has no mime type", ErrConfiguration)
		}
	case SourceRemote:
		if len(d.Source.Data) > 0 {
			return c, fmt.Errorf("%w: source has both upload and reference", ErrConfiguration)
		}
		if !sources.ValidReference(d.Source.Reference) {
			return c, fmt.Errorf("%w: reference %q is not an http(s) URL", ErrConfiguration, d.Source.Reference)
		}
	default:
		return c, fmt.Errorf("%w: no source", ErrConfiguration)
	}

	var err error
	if c.persona, err = ParsePersona(string(d.Persona)); err != nil {
		return GenerationConfig{}, err
	}
	if c.contentType, err = ParseContentType(string(d.ContentType)); err != nil {
		return GenerationConfig{}, err
	}
	if c.language, err = ParseLanguage(string(d.Language)); err != nil {
		return GenerationConfig{}, err
	}
	if c.template, err = ParseTemplate(string(d.Template)); err != nil {
		return GenerationConfig{}, err
	}
	mode := d.ResearchMode
	if mode == "" {
		mode = ResearchEnhanced
	}
	if c.researchMode, err = ParseResearchMode(string(mode)); err != nil {
		return GenerationConfig{}, err
	}

	if d.Segment.Enabled {
		start, err := parseTimecode(d.Segment.Start)
		if err != nil {
			return GenerationConfig{}, err
		}
		end, err := parseTimecode(d.Segment.End)
		if err != nil {
			return GenerationConfig{}, err
		}
		if start >= end {
			return GenerationConfig{}, fmt.Errorf("%w: segment start %s is not before end %s", ErrConfiguration, d.Segment.Start, d.Segment.End)
		}
	}

	c.source = Source{
		Kind:      d.Source.Kind,
		Data:      bytes.Clone(d.Source.Data),
		MIMEType:  d.Source.MIMEType,
		Reference: d.Source.Reference,
	}
	c.segment = d.Segment
	c.branding = Branding{
		AgencyName: strings.TrimSpace(d.Branding.AgencyName),
		ClientName: strings.TrimSpace(d.Branding.ClientName),
		Logo:       bytes.Clone(d.Branding.Logo),
	}
	return c, nil
}

// GenerationConfig is the validated, read-only parameter set for one
// generation. Construct it with Draft.Snapshot.
type GenerationConfig struct {
	source       Source
	persona      Persona
	contentType  ContentType
	language     Language
	template     Template
	researchMode ResearchMode
	segment      Segment
	branding     Branding
}

// Source returns the video source. Data is a copy; the snapshot keeps its own.
func (c GenerationConfig) Source() Source {
	src := c.source
	src.Data = bytes.Clone(c.source.Data)
	return src
}

func (c GenerationConfig) Persona() Persona           { return c.persona }
func (c GenerationConfig) ContentType() ContentType   { return c.contentType }
func (c GenerationConfig) Language() Language         { return c.language }
func (c GenerationConfig) Template() Template         { return c.template }
func (c GenerationConfig) ResearchMode() ResearchMode { return c.researchMode }
func (c GenerationConfig) Segment() Segment           { return c.segment }

// Branding returns the branding with a copied logo.
func (c GenerationConfig) Branding() Branding {
	b := c.branding
	b.Logo = bytes.Clone(c.branding.Logo)
	return b
}
