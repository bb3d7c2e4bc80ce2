package experiment

import "github.com/relasi-app/relasi-core/pkg/models/domain"

// Fixed color-to-psychology fallbacks, used only when upstream data does not
// carry explicit need/style fields. Deterministic, never random.

var needByColor = map[domain.ColorCode]domain.NeedTag{
	domain.ColorRed:    domain.NeedAchievement,
	domain.ColorYellow: domain.NeedRecognition,
	domain.ColorGreen:  domain.NeedHarmony,
	domain.ColorBlue:   domain.NeedCertainty,
}

var conflictByColor = map[domain.ColorCode]domain.ConflictTag{
	domain.ColorRed:    domain.ConflictConfrontive,
	domain.ColorYellow: domain.ConflictExpressive,
	domain.ColorGreen:  domain.ConflictAccommodating,
	domain.ColorBlue:   domain.ConflictAnalytical,
}

// DeriveNeed maps a color code to its default psychological need. Total:
// unknown codes get the achievement default.
func DeriveNeed(code domain.ColorCode) domain.NeedTag {
	if n, ok := needByColor[code]; ok {
		return n
	}
	return domain.NeedAchievement
}

// DeriveConflictStyle maps a color code to its default conflict style.
func DeriveConflictStyle(code domain.ColorCode) domain.ConflictTag {
	if c, ok := conflictByColor[code]; ok {
		return c
	}
	return domain.ConflictConfrontive
}
