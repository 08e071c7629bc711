package clips

import (
	"fmt"
	"strings"
)

// Persona is the narrative voice the content is written in.
type Persona string

const (
	PersonaProfessional Persona = "Professional AI"
	PersonaJournalist   Persona = "Investigative Journalist"
	PersonaComedian     Persona = "Stand-up Comedian"
	PersonaPolitician   Persona = "Diplomatic Politician"
	PersonaInfluencer   Persona = "Tech Influencer"
	PersonaAcademic     Persona = "Academic Researcher"
	PersonaFounder      Persona = "Startup Founder"
	PersonaCorporateHR  Persona = "Corporate HR"
)

// ContentType is the output format requested from the model.
type ContentType string

const (
	ContentSummary       ContentType = "Summary"
	ContentBlogPost      ContentType = "Blog Post"
	ContentNewsArticle   ContentType = "News Article"
	ContentLinkedInPost  ContentType = "LinkedIn Post"
	ContentTwitterThread ContentType = "X (Twitter) Thread"
	ContentELI5          ContentType = "Explain Like I'm 5"
	ContentClientReport  ContentType = "Client Report"
)

// Language is the output language.
type Language string

const (
	LangEnglish Language = "English"
	LangHindi   Language = "Hindi"
	LangKannada Language = "Kannada"
	LangTamil   Language = "Tamil"
	LangTelugu  Language = "Telugu"
	LangSpanish Language = "Spanish"
	LangFrench  Language = "French"
	LangGerman  Language = "German"
)

// Template is the structural skeleton of the piece.
type Template string

const (
	TemplateStandard     Template = "Standard Structure"
	TemplateOriginStory  Template = "Startup Origin Story"
	TemplateCourse       Template = "Educational Course"
	TemplateGeopolitical Template = "Geopolitical Analysis"
	TemplateSeminar      Template = "Live Seminar Coverage"
	TemplateDebate       Template = "Debate Summary"
)

// ResearchMode controls whether the model may consult knowledge beyond the source.
type ResearchMode string

const (
	ResearchStrict   ResearchMode = "strict"
	ResearchEnhanced ResearchMode = "enhanced"
)

// Mode selects defaults for a fresh draft, mirroring the tool entry points.
type Mode string

const (
	ModeBlog   Mode = "blog"
	ModeReport Mode = "report"
	ModeSocial Mode = "social"
	ModeAudio  Mode = "audio"
)

var (
	Personas = []Persona{
		PersonaProfessional, PersonaJournalist, PersonaComedian, PersonaPolitician,
		PersonaInfluencer, PersonaAcademic, PersonaFounder, PersonaCorporateHR,
	}
	ContentTypes = []ContentType{
		ContentSummary, ContentBlogPost, ContentNewsArticle, ContentLinkedInPost,
		ContentTwitterThread, ContentELI5, ContentClientReport,
	}
	Languages = []Language{
		LangEnglish, LangHindi, LangKannada, LangTamil,
		LangTelugu, LangSpanish, LangFrench, LangGerman,
	}
	Templates = []Template{
		TemplateStandard, TemplateOriginStory, TemplateCourse,
		TemplateGeopolitical, TemplateSeminar, TemplateDebate,
	}
	ResearchModes = []ResearchMode{ResearchStrict, ResearchEnhanced}
)

// parseEnum matches s case-insensitively against the display values in set.
func parseEnum[T ~string](kind, s string, set []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range set {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrConfiguration, kind, s)
}

func ParsePersona(s string) (Persona, error) { return parseEnum("persona", s, Personas) }
func ParseContentType(s string) (ContentType, error) {
	return parseEnum("content type", s, ContentTypes)
}
func ParseLanguage(s string) (Language, error) { return parseEnum("language", s, Languages) }
func ParseTemplate(s string) (Template, error) { return parseEnum("template", s, Templates) }
func ParseResearchMode(s string) (ResearchMode, error) {
	return parseEnum("research mode", s, ResearchModes)
}

// ParseMode accepts the draft mode names; anything unknown is treated as blog.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReport:
		return ModeReport
	case ModeSocial:
		return ModeSocial
	case ModeAudio:
		return ModeAudio
	default:
		return ModeBlog
	}
}
