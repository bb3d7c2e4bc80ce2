package adapters

import (
	"testing"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapProfileParams(t *testing.T) {
	tests := []struct {
		name  string
		color string
		need  string
		style string
		want  domain.UserPsychProfile
	}{
		{
			name:  "all explicit",
			color: "color_blue",
			need:  "harmony",
			style: "expressive",
			want: domain.UserPsychProfile{
				PrimaryColor:  domain.ColorBlue,
				PrimaryNeed:   domain.NeedHarmony,
				ConflictStyle: domain.ConflictExpressive,
			},
		},
		{
			name:  "derive both from color",
			color: "color_green",
			want: domain.UserPsychProfile{
				PrimaryColor:  domain.ColorGreen,
				PrimaryNeed:   domain.NeedHarmony,
				ConflictStyle: domain.ConflictAccommodating,
			},
		},
		{
			name:  "explicit need keeps derived style independent",
			color: "color_red",
			need:  "certainty",
			want: domain.UserPsychProfile{
				PrimaryColor:  domain.ColorRed,
				PrimaryNeed:   domain.NeedCertainty,
				ConflictStyle: domain.ConflictConfrontive,
			},
		},
		{
			name: "empty everything gets deterministic defaults",
			want: domain.UserPsychProfile{
				PrimaryColor:  "",
				PrimaryNeed:   domain.NeedAchievement,
				ConflictStyle: domain.ConflictConfrontive,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapProfileParams(tt.color, tt.need, tt.style))
		})
	}
}
