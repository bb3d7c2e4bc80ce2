package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// ProductPrefix is the first segment of every generated filename.
const ProductPrefix = "Relasi4"

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatDate renders the generation date in the report locale.
func formatDate(t time.Time, locale domain.Locale) string {
	if locale == domain.LocaleID {
		return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
	}
	return t.Format("2 January 2006")
}

// artifactName builds "{ProductPrefix}-{DiscriminatorOrArchetype}-{timestamp}.pdf".
func artifactName(discriminator string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s.pdf", ProductPrefix, discriminator, t.Format("20060102-150405"))
}

// sanitizeName strips filename-hostile characters from user-supplied names.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "Report"
	}
	return b.String()
}
