package domain

// NeedTag is the primary psychological need driving purchase copy.
type NeedTag string

const (
	NeedAchievement NeedTag = "achievement"
	NeedRecognition NeedTag = "recognition"
	NeedHarmony     NeedTag = "harmony"
	NeedCertainty   NeedTag = "certainty"
)

// ConflictTag is the dominant conflict-handling style.
type ConflictTag string

const (
	ConflictConfrontive   ConflictTag = "confrontive"
	ConflictExpressive    ConflictTag = "expressive"
	ConflictAccommodating ConflictTag = "accommodating"
	ConflictAnalytical    ConflictTag = "analytical"
)

// UserPsychProfile is the read-only view the experiment engine works from.
// PrimaryNeed and ConflictStyle may be empty; each is derived from
// PrimaryColor independently when absent.
type UserPsychProfile struct {
	PrimaryColor  ColorCode
	PrimaryNeed   NeedTag
	ConflictStyle ConflictTag
}
