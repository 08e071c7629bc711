package clips

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// PreferencesKey is the fixed storage key for the last-used settings.
const PreferencesKey = "clipverb_config"

// PreferenceStore persists opaque blobs by key.
type PreferenceStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// Preferences are the settings remembered between requests.
type Preferences struct {
	Language   Language `json:"language,omitempty"`
	Persona    Persona  `json:"persona,omitempty"`
	Template   Template `json:"template,omitempty"`
	AgencyName string   `json:"agencyName,omitempty"`
	AgencyLogo []byte   `json:"agencyLogo,omitempty"`
}

// Validate checks enumerated fields that are set.
func (p Preferences) Validate() error {
	if p.Language != "" {
		if _, err := ParseLanguage(string(p.Language)); err != nil {
			return err
		}
	}
	if p.Persona != "" {
		if _, err := ParsePersona(string(p.Persona)); err != nil {
			return err
		}
	}
	if p.Template != "" {
		if _, err := ParseTemplate(string(p.Template)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo fills d from saved preferences. Unset or stale values leave the
// draft's defaults in place.
func (p Preferences) ApplyTo(d *Draft) {
	if v, err := ParseLanguage(string(p.Language)); err == nil {
		d.Language = v
	}
	if v, err := ParsePersona(string(p.Persona)); err == nil {
		d.Persona = v
	}
	if v, err := ParseTemplate(string(p.Template)); err == nil {
		d.Template = v
	}
	if name := strings.TrimSpace(p.AgencyName); name != "" {
		d.Branding.AgencyName = name
	}
	if len(p.AgencyLogo) > 0 {
		d.Branding.Logo = p.AgencyLogo
	}
}

// LoadPreferences reads the saved preferences. A missing entry yields
// zero Preferences and no error.
func LoadPreferences(ctx context.Context, store PreferenceStore) (Preferences, error) {
	var p Preferences
	blob, ok, err := store.Load(ctx, PreferencesKey)
	if err != nil {
		return p, fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return p, nil
	}
	if err := json.Unmarshal(blob, &p); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

// SavePreferences validates and writes p.
func SavePreferences(ctx context.Context, store PreferenceStore, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := store.Save(ctx, PreferencesKey, blob); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
