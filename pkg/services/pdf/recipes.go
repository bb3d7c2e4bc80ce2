package pdf

import (
	"fmt"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// Result is a finished artifact plus the metadata handlers and tests need.
type Result struct {
	PDF      []byte
	Pages    int
	Chapters []ChapterRef
	Filename string
}

// Generator assembles full report documents from the layout primitives.
type Generator struct {
	Locale domain.Locale
	Now    func() time.Time
}

func NewGenerator(locale domain.Locale) *Generator {
	if locale == "" {
		locale = domain.LocaleID
	}
	return &Generator{Locale: locale, Now: time.Now}
}

// Build dispatches on the report kind.
func (g *Generator) Build(doc *domain.ReportDocument) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("report document is nil")
	}
	switch doc.Kind {
	case domain.ReportSingle:
		return g.BuildSingle(doc.Single)
	case domain.ReportCouple:
		return g.BuildCouple(doc.Couple)
	case domain.ReportFamily:
		return g.BuildFamily(doc.Family)
	default:
		return nil, fmt.Errorf("unknown report kind %q", doc.Kind)
	}
}

// render runs the two-pass layout for documents carrying a contents page:
// pass one reserves a blank contents page and collects the chapter log, pass
// two replays the identical layout with the real table of contents. The
// contents page is exactly one page in both passes, so chapter page numbers
// agree. Documents without a contents page lay out in a single pass.
func (g *Generator) render(title string, cover CoverSpec, withContents bool, body func(*Document)) (*Result, error) {
	if !withContents {
		return g.layout(title, cover, nil, body)
	}

	probe := New(title)
	probe.CoverPage(cover)
	probe.TableOfContents(nil)
	body(probe)
	if _, err := probe.Finalize(); err != nil {
		return nil, err
	}

	refs := probe.Cursor().Chapters
	items := make([]TOCItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, TOCItem{Title: ref.Title, Page: ref.Page})
	}
	return g.layout(title, cover, items, body)
}

func (g *Generator) layout(title string, cover CoverSpec, toc []TOCItem, body func(*Document)) (*Result, error) {
	d := New(title)
	d.CoverPage(cover)
	if toc != nil {
		d.TableOfContents(toc)
	}
	body(d)

	cur := d.Cursor()
	out, err := d.Finalize()
	if err != nil {
		return nil, err
	}

	return &Result{PDF: out, Pages: cur.Page, Chapters: cur.Chapters}, nil
}

// BuildSingle renders the single-person report: cover, contents, profile,
// strengths & weaknesses, relationship dynamics, practical tips.
func (g *Generator) BuildSingle(r *domain.SingleReport) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("single report payload is nil")
	}

	primary, _ := domain.ArchetypeFor(r.Profile.PrimaryColor)
	accent := primary.Color
	now := g.Now()

	cover := CoverSpec{
		Kind:        domain.ReportSingle,
		Subject:     r.Profile.Name,
		Primary:     r.Profile.PrimaryColor,
		Secondary:   r.Profile.SecondaryColor,
		GeneratedAt: now,
		DateLabel:   formatDate(now, g.Locale),
	}

	res, err := g.render("Personality Report", cover, true, func(d *Document) {
		d.BeginChapter(1, "Profile", accent)
		d.Section("", r.Profile.Summary)
		for _, code := range domain.KnownColors() {
			d.ScoreBar(code, r.ColorScores[code], 100)
		}

		d.BeginChapter(2, "Strengths & Weaknesses", accent)
		d.Section("Strengths", "")
		d.BulletList(entryLines(r.Strengths), accent)
		d.Section("Weaknesses", "")
		d.BulletList(entryLines(r.Weaknesses), accent)

		d.BeginChapter(3, "Relationship Dynamics", accent)
		dynamics := r.Dynamics
		if len(dynamics) > 3 {
			dynamics = dynamics[:3]
		}
		for _, dyn := range dynamics {
			d.Section(dyn.Title, dyn.Description)
		}

		d.BeginChapter(4, "Practical Tips", accent)
		for i, tip := range r.Tips {
			d.Section(fmt.Sprintf("Tip %d", i+1), tip)
		}
	})
	if err != nil {
		return nil, err
	}

	res.Filename = artifactName(primary.Label, now)
	return res, nil
}

// BuildCouple renders the couple report with the dual-badge cover.
func (g *Generator) BuildCouple(r *domain.CoupleReport) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("couple report payload is nil")
	}

	archA, _ := domain.ArchetypeFor(r.PersonA.PrimaryColor)
	accent := archA.Color
	now := g.Now()

	subject := r.PersonA.Name
	if r.PersonA.Name != "" && r.PersonB.Name != "" {
		subject = r.PersonA.Name + " & " + r.PersonB.Name
	}

	cover := CoverSpec{
		Kind:        domain.ReportCouple,
		Subject:     subject,
		Primary:     r.PersonA.PrimaryColor,
		Secondary:   r.PersonB.PrimaryColor,
		Score:       r.Compatibility.Score,
		HasScore:    true,
		GeneratedAt: now,
		DateLabel:   formatDate(now, g.Locale),
	}

	res, err := g.render("Couple Compatibility Report", cover, false, func(d *Document) {
		d.BeginChapter(1, "Compatibility Summary", accent)
		d.CompatibilityMeter(r.Compatibility.Score)
		d.Section(r.Compatibility.Headline, r.Compatibility.Overview)

		d.BeginChapter(2, "Profile Comparison", accent)
		d.Section(personTitle(r.PersonA), r.PersonA.Summary)
		d.Section(personTitle(r.PersonB), r.PersonB.Summary)

		d.BeginChapter(3, "Shared Strengths", accent)
		d.BulletList(entryLines(r.SharedStrengths), accent)

		d.BeginChapter(4, "Friction Areas", accent)
		for _, f := range r.FrictionAreas {
			d.Section(f.Area, f.Why)
			d.Callout(f.ResolutionTip, accent)
		}

		d.BeginChapter(5, "Practical Tips", accent)
		for i, tip := range r.Tips {
			d.Section(fmt.Sprintf("Tip %d", i+1), tip)
		}
	})
	if err != nil {
		return nil, err
	}

	res.Filename = artifactName("Couple", now)
	return res, nil
}

// BuildFamily renders the family report. The friction and exercises chapters
// are omitted outright when their source lists are empty.
func (g *Generator) BuildFamily(r *domain.FamilyReport) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("family report payload is nil")
	}

	primaryColor := domain.ColorCode("")
	if len(r.Members) > 0 {
		primaryColor = r.Members[0].PrimaryColor
	}
	primary, _ := domain.ArchetypeFor(primaryColor)
	accent := primary.Color
	now := g.Now()

	members := make([]CoverMember, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, CoverMember{Name: m.Name, Color: m.PrimaryColor})
	}

	cover := CoverSpec{
		Kind:        domain.ReportFamily,
		Subject:     r.FamilyName,
		Primary:     primaryColor,
		Members:     members,
		Score:       r.Summary.HarmonyScore,
		HasScore:    true,
		GeneratedAt: now,
		DateLabel:   formatDate(now, g.Locale),
	}

	res, err := g.render("Family Harmony Report", cover, false, func(d *Document) {
		chapter := 1

		d.BeginChapter(chapter, "Family Overview", accent)
		d.Section(r.Summary.Headline, r.Summary.Overview)
		chapter++

		d.BeginChapter(chapter, "Role Analysis", accent)
		for _, role := range r.RoleAnalysis {
			d.Section(role.Title, role.Description)
		}
		chapter++

		d.BeginChapter(chapter, "Collective Strengths", accent)
		for _, s := range r.StrengthMatrix {
			d.Section(s.Title, s.Description)
		}
		chapter++

		if len(r.FrictionPoints) > 0 {
			d.BeginChapter(chapter, "Friction Points", accent)
			for _, f := range r.FrictionPoints {
				d.Section(joinMembers(f.BetweenMembers), f.Description)
				d.Callout(f.ResolutionTip, accent)
			}
			chapter++
		}

		if len(r.Exercises) > 0 {
			d.BeginChapter(chapter, "Family Exercises", accent)
			for _, e := range r.Exercises {
				d.Section(e.Title, e.Description)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	discriminator := "Family"
	if r.FamilyName != "" {
		discriminator = sanitizeName(r.FamilyName)
	}
	res.Filename = artifactName(discriminator, now)
	return res, nil
}

func personTitle(p domain.PersonProfile) string {
	arch, _ := domain.ArchetypeFor(p.PrimaryColor)
	if p.Name == "" {
		return arch.Label
	}
	return fmt.Sprintf("%s (%s)", p.Name, arch.Label)
}

func entryLines(entries []domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Description == "" {
			out = append(out, e.Title)
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", e.Title, e.Description))
	}
	return out
}
