package clipserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errNoPrefs = errors.New("preferences store is not configured")

func registerPreferences(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_preferences",
		Description: "Return the saved defaults (language, persona, template, agency name, whether a logo is stored). generate_content applies them before its own arguments.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, PreferencesOutput, error) {
		if deps.Prefs == nil {
			return nil, PreferencesOutput{}, errNoPrefs
		}
		p, err := clips.LoadPreferences(ctx, deps.Prefs)
		if err != nil {
			return nil, PreferencesOutput{}, err
		}
		return nil, preferencesOutput(p), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_preferences",
		Description: "Save default language, persona, template, agency name and logo for later generations. Omitted fields are cleared.",
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PreferencesInput) (*mcp.CallToolResult, PreferencesOutput, error) {
		if deps.Prefs == nil {
			return nil, PreferencesOutput{}, errNoPrefs
		}
		logo, err := decodeLogo(input.AgencyLogo)
		if err != nil {
			return nil, PreferencesOutput{}, err
		}
		p := clips.Preferences{
			Language:   clips.Language(input.Language),
			Persona:    clips.Persona(input.Persona),
			Template:   clips.Template(input.Template),
			AgencyName: input.AgencyName,
			AgencyLogo: logo,
		}
		// Store canonical casing.
		if v, err := clips.ParseLanguage(input.Language); err == nil {
			p.Language = v
		}
		if v, err := clips.ParsePersona(input.Persona); err == nil {
			p.Persona = v
		}
		if v, err := clips.ParseTemplate(input.Template); err == nil {
			p.Template = v
		}
		if err := clips.SavePreferences(ctx, deps.Prefs, p); err != nil {
			return nil, PreferencesOutput{}, err
		}
		return nil, preferencesOutput(p), nil
	})
}

func preferencesOutput(p clips.Preferences) PreferencesOutput {
	return PreferencesOutput{
		Language:   string(p.Language),
		Persona:    string(p.Persona),
		Template:   string(p.Template),
		AgencyName: p.AgencyName,
		HasLogo:    len(p.AgencyLogo) > 0,
	}
}
