package experiment

import (
	"embed"
	"fmt"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"gopkg.in/ini.v1"
)

//go:embed copy/*.ini
var copyFiles embed.FS

// Microcopy resolves hesitation messages from the embedded per-locale tables.
type Microcopy struct {
	byLocale map[domain.Locale]*ini.File
}

// LoadMicrocopy parses the embedded copy tables once at startup.
func LoadMicrocopy() (*Microcopy, error) {
	m := &Microcopy{byLocale: make(map[domain.Locale]*ini.File)}
	for _, locale := range []domain.Locale{domain.LocaleID, domain.LocaleEN} {
		raw, err := copyFiles.ReadFile(fmt.Sprintf("copy/%s.ini", locale))
		if err != nil {
			return nil, fmt.Errorf("missing copy table for locale %s: %w", locale, err)
		}
		f, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, raw)
		if err != nil {
			return nil, fmt.Errorf("bad copy table for locale %s: %w", locale, err)
		}
		m.byLocale[locale] = f
	}
	return m, nil
}

// Messages returns the ordered candidate microcopy for a trigger kind,
// archetype-specific lines first, then the trigger's default lines. The
// caller picks by index; an unknown kind yields an empty list.
func (m *Microcopy) Messages(kind domain.TriggerKind, profile domain.UserPsychProfile, locale domain.Locale) []string {
	f, ok := m.byLocale[locale]
	if !ok {
		f = m.byLocale[domain.LocaleID]
	}

	section, err := f.GetSection(string(kind))
	if err != nil {
		return nil
	}

	var out []string
	if section.HasKey(string(profile.PrimaryColor)) {
		out = append(out, section.Key(string(profile.PrimaryColor)).ValueWithShadows()...)
	}
	if section.HasKey("default") {
		out = append(out, section.Key("default").ValueWithShadows()...)
	}
	return out
}
