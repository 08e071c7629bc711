package clips

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "nested", "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	p, err := LoadPreferences(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p, "missing entry is not an error")

	want := Preferences{
		Language:   LangKannada,
		Persona:    PersonaAcademic,
		Template:   TemplateCourse,
		AgencyName: "Acme Media",
		AgencyLogo: []byte{0x89, 'P', 'N', 'G'},
	}
	require.NoError(t, SavePreferences(ctx, store, want))

	got, err := LoadPreferences(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.Language = LangFrench
	require.NoError(t, SavePreferences(ctx, store, want))
	got, err = LoadPreferences(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, LangFrench, got.Language, "save overwrites")
}

func TestSavePreferencesValidates(t *testing.T) {
	store := &memStore{}
	err := SavePreferences(context.Background(), store, Preferences{Language: "Klingon"})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, ok, _ := store.Load(context.Background(), PreferencesKey)
	assert.False(t, ok)
}

func TestLoadPreferencesCorrupt(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), PreferencesKey, []byte("{oops")))
	_, err := LoadPreferences(context.Background(), store)
	assert.Error(t, err)
}

func TestPreferencesApplyTo(t *testing.T) {
	d := NewDraft(ModeReport)
	Preferences{
		Language:   LangGerman,
		Persona:    "founder",
		Template:   "Retired Template",
		AgencyName: "Acme",
		AgencyLogo: []byte{1},
	}.ApplyTo(d)

	assert.Equal(t, LangGerman, d.Language)
	assert.Equal(t, PersonaProfessional, d.Persona, "partial match is not a match")
	assert.Equal(t, TemplateStandard, d.Template, "unknown template keeps default")
	assert.Equal(t, "Acme", d.Branding.AgencyName)
	assert.Equal(t, []byte{1}, d.Branding.Logo)
	assert.Equal(t, ContentClientReport, d.ContentType)
}
