package experiment

import "github.com/relasi-app/relasi-core/pkg/models/domain"

// defaultCopyColor backs every table miss so ResolveContent stays total.
const defaultCopyColor = domain.ColorRed

// text is a bilingual copy cell.
type text struct {
	id string
	en string
}

func (t text) in(locale domain.Locale) string {
	if locale == domain.LocaleEN {
		return t.en
	}
	return t.id
}

var headlineByColor = map[domain.ColorCode]text{
	domain.ColorRed: {
		id: "Kamu tipe Driver. Pahami kekuatan penuhmu.",
		en: "You are a Driver. Unlock your full strength.",
	},
	domain.ColorYellow: {
		id: "Kamu tipe Spark. Lihat apa yang membuatmu bersinar.",
		en: "You are a Spark. See what makes you shine.",
	},
	domain.ColorGreen: {
		id: "Kamu tipe Anchor. Kenali ketenangan yang kamu bawa.",
		en: "You are an Anchor. Discover the calm you bring.",
	},
	domain.ColorBlue: {
		id: "Kamu tipe Analyst. Selami pola pikirmu lebih dalam.",
		en: "You are an Analyst. Dive deeper into how you think.",
	},
}

var subByColor = map[domain.ColorCode]text{
	domain.ColorRed: {
		id: "Laporan lengkap mengungkap cara kamu memimpin dalam hubungan.",
		en: "The full report reveals how you lead in relationships.",
	},
	domain.ColorYellow: {
		id: "Laporan lengkap menunjukkan bagaimana energimu memengaruhi orang terdekat.",
		en: "The full report shows how your energy affects the people closest to you.",
	},
	domain.ColorGreen: {
		id: "Laporan lengkap memetakan peranmu sebagai penyeimbang.",
		en: "The full report maps your role as the steady center.",
	},
	domain.ColorBlue: {
		id: "Laporan lengkap menjelaskan logika di balik caramu mencintai.",
		en: "The full report explains the logic behind how you love.",
	},
}

var headlineByNeed = map[domain.NeedTag]text{
	domain.NeedAchievement: {
		id: "Hubungan yang kuat juga sebuah pencapaian.",
		en: "A strong relationship is an achievement too.",
	},
	domain.NeedRecognition: {
		id: "Orang terdekatmu layak melihat versi terbaikmu.",
		en: "The people closest to you deserve your best self.",
	},
	domain.NeedHarmony: {
		id: "Kedamaian di rumah dimulai dari memahami diri.",
		en: "Peace at home starts with understanding yourself.",
	},
	domain.NeedCertainty: {
		id: "Berhenti menebak-nebak. Pahami polanya.",
		en: "Stop guessing. Understand the pattern.",
	},
}

var subByNeed = map[domain.NeedTag]text{
	domain.NeedAchievement: {
		id: "Dapatkan langkah konkret untuk hubungan yang lebih solid.",
		en: "Get concrete steps toward a more solid relationship.",
	},
	domain.NeedRecognition: {
		id: "Temukan cara agar usahamu benar-benar terlihat.",
		en: "Find out how to make your effort truly seen.",
	},
	domain.NeedHarmony: {
		id: "Pelajari cara meredakan gesekan sebelum membesar.",
		en: "Learn to defuse friction before it grows.",
	},
	domain.NeedCertainty: {
		id: "Dapatkan penjelasan berbasis data tentang dinamika kalian.",
		en: "Get a data-grounded read on your dynamics.",
	},
}

var modifierByConflict = map[domain.ConflictTag]text{
	domain.ConflictConfrontive: {
		id: "Termasuk panduan menyalurkan ketegasanmu tanpa melukai.",
		en: "Includes a guide to channeling your directness without hurting.",
	},
	domain.ConflictExpressive: {
		id: "Termasuk cara menyampaikan perasaan agar didengar.",
		en: "Includes ways to voice feelings so they land.",
	},
	domain.ConflictAccommodating: {
		id: "Termasuk latihan menyuarakan kebutuhanmu sendiri.",
		en: "Includes exercises for voicing your own needs.",
	},
	domain.ConflictAnalytical: {
		id: "Termasuk kerangka untuk membahas emosi secara terstruktur.",
		en: "Includes a framework for discussing emotions on your terms.",
	},
}

var ctaByVariant = map[domain.Variant]text{
	domain.VariantColor:         {id: "Buka Laporan Lengkap", en: "Unlock Full Report"},
	domain.VariantPsychological: {id: "Pahami Diriku Lebih Dalam", en: "Understand Myself Better"},
	domain.VariantHybrid:        {id: "Lihat Laporan Lengkapku", en: "See My Full Report"},
	domain.VariantSoft:          {id: "Pelajari Lebih Lanjut", en: "Learn More"},
	domain.VariantDirect:        {id: "Beli Laporan Sekarang", en: "Buy the Report Now"},
	domain.VariantUrgency:       {id: "Amankan Harga Hari Ini", en: "Lock In Today's Price"},
}

var urgencyModifier = text{
	id: "Harga peluncuran berakhir segera.",
	en: "Launch pricing ends soon.",
}

// ResolveContent maps (variant, profile, locale) to a complete copy bundle.
// Pure and total: every field is populated for every enumerated input, and
// unknown keys fall back to the default archetype's copy.
func ResolveContent(variant domain.Variant, profile domain.UserPsychProfile, locale domain.Locale) domain.ContentBundle {
	if locale != domain.LocaleEN {
		locale = domain.LocaleID
	}

	color := profile.PrimaryColor
	if _, ok := headlineByColor[color]; !ok {
		color = defaultCopyColor
	}

	need := profile.PrimaryNeed
	if _, ok := headlineByNeed[need]; !ok {
		need = DeriveNeed(color)
	}

	style := profile.ConflictStyle
	if _, ok := modifierByConflict[style]; !ok {
		style = DeriveConflictStyle(color)
	}

	arch, _ := domain.ArchetypeFor(color)

	bundle := domain.ContentBundle{AccentColor: arch.Hex}
	switch variant {
	case domain.VariantPsychological:
		bundle.Headline = headlineByNeed[need].in(locale)
		bundle.Subheadline = subByNeed[need].in(locale)
		bundle.ModifierText = modifierByConflict[style].in(locale)
	case domain.VariantHybrid:
		bundle.Headline = headlineByColor[color].in(locale)
		bundle.Subheadline = subByNeed[need].in(locale)
		bundle.ModifierText = modifierByConflict[style].in(locale)
	case domain.VariantSoft, domain.VariantDirect:
		bundle.Headline = headlineByNeed[need].in(locale)
		bundle.Subheadline = subByColor[color].in(locale)
		bundle.ModifierText = modifierByConflict[style].in(locale)
	case domain.VariantUrgency:
		bundle.Headline = headlineByNeed[need].in(locale)
		bundle.Subheadline = subByColor[color].in(locale)
		bundle.ModifierText = urgencyModifier.in(locale)
	default: // VariantColor and anything unrecognized
		bundle.Headline = headlineByColor[color].in(locale)
		bundle.Subheadline = subByColor[color].in(locale)
		bundle.ModifierText = modifierByConflict[style].in(locale)
	}

	cta, ok := ctaByVariant[variant]
	if !ok {
		cta = ctaByVariant[domain.VariantColor]
	}
	bundle.CTALabel = cta.in(locale)

	return bundle
}
