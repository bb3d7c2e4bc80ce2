package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// Layout constants, in millimeters on an A4 page.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0

	lineHeight     = 5.5
	chapterReserve = 60.0 // min space left on a page to start a chapter
	chapterAdvance = 35.0 // vertical space consumed by a chapter header
	bottomGuard    = 20.0 // page break threshold above the bottom edge
	dotSpacing     = 3.0  // TOC leader dot pitch

	headerBandHeight = 8.0
	topContentY      = margin + headerBandHeight + 6.0

	trackWidth  = 100.0 // score bar track
	trackHeight = 6.0

	maxCoverMembers = 6
)

// ErrFinalized is returned when a Document handle is used after Finalize.
var ErrFinalized = fmt.Errorf("document already finalized")

// ChapterRef is one entry of the chapter log, collected while chapters are
// written and fed back into the table of contents.
type ChapterRef struct {
	Number int
	Title  string
	Page   int
}

// TOCItem is one rendered table-of-contents row.
type TOCItem struct {
	Title string
	Page  int
}

// Cursor tracks the write position of a document build. One cursor per
// document, owned exclusively by its Document, never shared.
type Cursor struct {
	Page         int // 1-based
	Y            float64
	ContentWidth float64
	Chapters     []ChapterRef
}

// Document is a single-use handle over one PDF build. All layout methods
// mutate the internal cursor; Finalize closes the handle for good.
type Document struct {
	pdf       *fpdf.Fpdf
	cur       Cursor
	title     string
	accent    domain.RGB
	chrome    bool // draw header band on new pages
	finalized bool
}

// New creates a fresh document handle with an empty cursor. No page is added
// until CoverPage or the first layout call.
func New(title string) *Document {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(false, 0)
	p.AliasNbPages("")

	d := &Document{
		pdf:    p,
		title:  title,
		accent: domain.FallbackArchetype.Color,
		cur:    Cursor{ContentWidth: pageWidth - 2*margin},
	}

	p.SetHeaderFunc(func() {
		if !d.chrome {
			return
		}
		p.SetFillColor(d.accent.R, d.accent.G, d.accent.B)
		p.Rect(0, 0, pageWidth, headerBandHeight, "F")
		p.SetFont("Helvetica", "I", 8)
		p.SetTextColor(255, 255, 255)
		p.Text(margin, headerBandHeight-2.5, d.title)
	})
	p.SetFooterFunc(func() {
		if p.PageNo() <= 1 {
			return
		}
		p.SetFont("Helvetica", "", 8)
		p.SetTextColor(130, 130, 130)
		p.SetXY(margin, pageHeight-12)
		p.CellFormat(d.cur.ContentWidth, 5,
			fmt.Sprintf("Page %d of {nb}", p.PageNo()), "", 0, "C", false, 0, "")
	})

	return d
}

// Cursor returns a copy of the current cursor state.
func (d *Document) Cursor() Cursor {
	c := d.cur
	c.Chapters = append([]ChapterRef(nil), d.cur.Chapters...)
	return c
}

func (d *Document) newPage() {
	d.pdf.AddPage()
	d.cur.Page++
	d.cur.Y = topContentY
}

// ensureSpace breaks the page when fewer than need millimeters remain above
// the bottom guard.
func (d *Document) ensureSpace(need float64) {
	if d.cur.Y+need > pageHeight-bottomGuard {
		d.newPage()
	}
}

func (d *Document) measure(s string) float64 {
	return d.pdf.GetStringWidth(s)
}

// CoverMember is one badge on a family cover.
type CoverMember struct {
	Name  string
	Color domain.ColorCode
}

// CoverSpec describes the cover page for any report kind. Optional fields may
// be zero; rendering falls back to neutral defaults instead of failing.
type CoverSpec struct {
	Kind        domain.ReportKind
	Subject     string // person name, couple names or family name
	Primary     domain.ColorCode
	Secondary   domain.ColorCode
	PartnerName string
	Members     []CoverMember
	Score       int // compatibility or harmony score
	HasScore    bool
	GeneratedAt time.Time
	DateLabel   string // pre-localized date string; falls back to ISO date
}

// CoverPage renders the full-bleed cover and fixes the document accent color
// from the primary archetype. Always the first page of the document.
func (d *Document) CoverPage(spec CoverSpec) {
	primary, _ := domain.ArchetypeFor(spec.Primary)
	d.accent = primary.Color

	d.chrome = false
	d.newPage()

	switch spec.Kind {
	case domain.ReportCouple:
		d.coverCouple(spec)
	case domain.ReportFamily:
		d.coverFamily(spec)
	default:
		d.coverSingle(spec)
	}

	// shared cover footer: title and generation date
	d.pdf.SetFont("Helvetica", "B", 22)
	d.pdf.SetTextColor(45, 55, 72)
	d.pdf.SetXY(margin, 150)
	d.pdf.CellFormat(d.cur.ContentWidth, 12, d.title, "", 1, "C", false, 0, "")

	if spec.Subject != "" {
		d.pdf.SetFont("Helvetica", "", 14)
		d.pdf.SetTextColor(74, 85, 104)
		d.pdf.SetXY(margin, 165)
		d.pdf.CellFormat(d.cur.ContentWidth, 8, spec.Subject, "", 1, "C", false, 0, "")
	}

	label := spec.DateLabel
	if label == "" {
		label = spec.GeneratedAt.Format("2006-01-02")
	}
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(130, 130, 130)
	d.pdf.SetXY(margin, pageHeight-30)
	d.pdf.CellFormat(d.cur.ContentWidth, 6, label, "", 0, "C", false, 0, "")

	d.chrome = true

	// body content never shares the cover page
	d.cur.Y = pageHeight
}

func (d *Document) coverSingle(spec CoverSpec) {
	primary, _ := domain.ArchetypeFor(spec.Primary)

	d.pdf.SetFillColor(primary.Color.R, primary.Color.G, primary.Color.B)
	d.pdf.Rect(0, 0, pageWidth, 95, "F")

	d.badge(pageWidth/2, 48, 22, primary)

	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(margin, 76)
	d.pdf.CellFormat(d.cur.ContentWidth, 8, primary.Label, "", 1, "C", false, 0, "")

	if spec.Secondary != "" {
		if secondary, ok := domain.ArchetypeFor(spec.Secondary); ok {
			d.pdf.SetFont("Helvetica", "", 11)
			d.pdf.SetTextColor(45, 55, 72)
			d.pdf.SetXY(margin, 100)
			d.pdf.CellFormat(d.cur.ContentWidth, 6,
				fmt.Sprintf("with a secondary %s side", secondary.Label), "", 1, "C", false, 0, "")
		}
	}
}

func (d *Document) coverCouple(spec CoverSpec) {
	left, _ := domain.ArchetypeFor(spec.Primary)
	right, _ := domain.ArchetypeFor(spec.Secondary)

	d.pdf.SetFillColor(left.Color.R, left.Color.G, left.Color.B)
	d.pdf.Rect(0, 0, pageWidth/2, 95, "F")
	d.pdf.SetFillColor(right.Color.R, right.Color.G, right.Color.B)
	d.pdf.Rect(pageWidth/2, 0, pageWidth/2, 95, "F")

	d.badge(pageWidth/2-45, 45, 18, left)
	d.badge(pageWidth/2+45, 45, 18, right)

	// connecting glyph between the two badges
	d.pdf.SetFont("Helvetica", "B", 26)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(pageWidth/2-10, 40)
	d.pdf.CellFormat(20, 12, "+", "", 0, "CM", false, 0, "")

	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.SetXY(0, 70)
	d.pdf.CellFormat(pageWidth/2, 7, left.Label, "", 0, "C", false, 0, "")
	d.pdf.SetXY(pageWidth/2, 70)
	d.pdf.CellFormat(pageWidth/2, 7, right.Label, "", 0, "C", false, 0, "")

	if spec.HasScore {
		d.scoreBadge(pageWidth/2, 95, spec.Score)
	}
}

func (d *Document) coverFamily(spec CoverSpec) {
	primary, _ := domain.ArchetypeFor(spec.Primary)

	d.pdf.SetFillColor(primary.Color.R, primary.Color.G, primary.Color.B)
	d.pdf.Rect(0, 0, pageWidth, 95, "F")

	members := coverMembers(spec.Members)
	if n := len(members); n > 0 {
		step := (pageWidth - 2*margin) / float64(n)
		for i, m := range members {
			arch, _ := domain.ArchetypeFor(m.Color)
			cx := margin + step*(float64(i)+0.5)
			d.memberBadge(cx, 42, 11, arch, m.Name)
		}
	}

	if spec.HasScore {
		d.scoreBadge(pageWidth/2, 95, spec.Score)
	}
}

// coverMembers caps the family badge row; members past maxCoverMembers are
// silently dropped.
func coverMembers(members []CoverMember) []CoverMember {
	if len(members) > maxCoverMembers {
		return members[:maxCoverMembers]
	}
	return members
}

// badge draws a white circle with the archetype's initial letter in its color.
func (d *Document) badge(cx, cy, r float64, arch domain.Archetype) {
	d.pdf.SetFillColor(255, 255, 255)
	d.pdf.Circle(cx, cy, r, "F")

	d.pdf.SetFont("Helvetica", "B", r*1.6)
	d.pdf.SetTextColor(arch.Color.R, arch.Color.G, arch.Color.B)
	d.pdf.SetXY(cx-r, cy-r/2)
	d.pdf.CellFormat(2*r, r, initialOf(arch.Label), "", 0, "CM", false, 0, "")
}

func (d *Document) memberBadge(cx, cy, r float64, arch domain.Archetype, name string) {
	d.badge(cx, cy, r, arch)
	d.pdf.SetFont("Helvetica", "", 8)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(cx-16, cy+r+2)
	d.pdf.CellFormat(32, 4, name, "", 0, "C", false, 0, "")
}

// scoreBadge draws the small percentage disc that overlaps the cover band.
func (d *Document) scoreBadge(cx, cy float64, score int) {
	c := meterColor(score)
	d.pdf.SetFillColor(c.R, c.G, c.B)
	d.pdf.Circle(cx, cy, 13, "F")
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(cx-13, cy-4)
	d.pdf.CellFormat(26, 8, fmt.Sprintf("%d%%", score), "", 0, "CM", false, 0, "")
}

// TableOfContents renders the contents page. A nil item list still reserves
// the page and heading, which keeps page numbering identical between layout
// passes.
func (d *Document) TableOfContents(items []TOCItem) {
	d.newPage()

	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(45, 55, 72)
	d.pdf.SetXY(margin, d.cur.Y)
	d.pdf.CellFormat(d.cur.ContentWidth, 10, "Contents", "", 1, "L", false, 0, "")
	d.cur.Y += 16

	d.pdf.SetFont("Helvetica", "", 11)
	for i, item := range items {
		label := fmt.Sprintf("%d. %s", i+1, item.Title)
		pageNum := fmt.Sprintf("%d", item.Page)

		d.pdf.SetTextColor(45, 55, 72)
		d.pdf.Text(margin, d.cur.Y, label)
		d.pdf.Text(pageWidth-margin-d.measure(pageNum), d.cur.Y, pageNum)

		// dotted leader from the end of the label to the page-number column
		start := margin + d.measure(label) + 2
		end := pageWidth - margin - d.measure(pageNum) - 2
		d.pdf.SetTextColor(160, 160, 160)
		for x := start; x < end; x += dotSpacing {
			d.pdf.Text(x, d.cur.Y, ".")
		}

		d.cur.Y += 8
	}

	// chapters never share the contents page
	d.cur.Y = pageHeight
}

// BeginChapter draws the chapter header block and logs the chapter for the
// table of contents. Starts a new page when the current one is nearly full.
func (d *Document) BeginChapter(number int, title string, accent domain.RGB) {
	if d.cur.Page == 0 || d.cur.Y+chapterReserve > pageHeight-bottomGuard {
		d.newPage()
	}

	d.cur.Chapters = append(d.cur.Chapters, ChapterRef{Number: number, Title: title, Page: d.cur.Page})

	y := d.cur.Y
	badgeText := fmt.Sprintf("Chapter %d", number)
	badgeWidth := d.measure(badgeText) + 14

	d.pdf.SetFillColor(accent.R, accent.G, accent.B)
	d.pdf.RoundedRect(margin, y, badgeWidth, 9, 3, "1234", "F")
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(margin, y)
	d.pdf.CellFormat(badgeWidth, 9, badgeText, "", 0, "CM", false, 0, "")

	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(45, 55, 72)
	d.pdf.SetXY(margin, y+13)
	d.pdf.CellFormat(d.cur.ContentWidth, 9, title, "", 1, "L", false, 0, "")

	d.pdf.SetDrawColor(accent.R, accent.G, accent.B)
	d.pdf.SetLineWidth(0.8)
	d.pdf.Line(margin, y+25, margin+50, y+25)

	d.cur.Y = y + chapterAdvance
}

// Section draws a subtitle and word-wrapped body text, breaking pages
// mid-paragraph without dropping or repeating words.
func (d *Document) Section(title, body string) {
	if title != "" {
		d.ensureSpace(12)
		d.pdf.SetFont("Helvetica", "B", 12)
		d.pdf.SetTextColor(45, 55, 72)
		d.pdf.SetXY(margin, d.cur.Y)
		d.pdf.CellFormat(d.cur.ContentWidth, 7, title, "", 1, "L", false, 0, "")
		d.cur.Y += 9
	}

	d.pdf.SetFont("Helvetica", "", 10.5)
	d.pdf.SetTextColor(74, 85, 104)
	for _, line := range wrapText(d.measure, body, d.cur.ContentWidth) {
		d.ensureSpace(lineHeight)
		d.pdf.Text(margin, d.cur.Y+lineHeight-1.5, line)
		d.cur.Y += lineHeight
	}
	d.cur.Y += 4
}

// BulletList draws one bullet per item with hanging indentation. An item that
// would straddle the bottom guard moves wholesale to the next page; a bullet
// glyph is never orphaned. Items taller than a full page fall back to
// per-line breaking.
func (d *Document) BulletList(items []string, accent domain.RGB) {
	const indent = 7.0
	width := d.cur.ContentWidth - indent
	fullPage := pageHeight - bottomGuard - topContentY

	d.pdf.SetFont("Helvetica", "", 10.5)
	for _, item := range items {
		lines := wrapText(d.measure, item, width)
		if len(lines) == 0 {
			continue
		}
		height := float64(len(lines)) * lineHeight
		if height <= fullPage {
			d.ensureSpace(height)
		}

		d.pdf.SetFillColor(accent.R, accent.G, accent.B)
		d.pdf.Circle(margin+2, d.cur.Y+lineHeight/2, 1.1, "F")

		d.pdf.SetTextColor(74, 85, 104)
		for _, line := range lines {
			d.ensureSpace(lineHeight)
			d.pdf.Text(margin+indent, d.cur.Y+lineHeight-1.5, line)
			d.cur.Y += lineHeight
		}
		d.cur.Y += 2.5
	}
	d.cur.Y += 3
}

// ScoreBar draws a labeled horizontal bar filled proportionally to
// score/maxScore in the color's display hue. Unknown color codes are skipped.
func (d *Document) ScoreBar(code domain.ColorCode, score, maxScore int) {
	arch, ok := domain.ArchetypeFor(code)
	if !ok {
		return
	}

	d.ensureSpace(14)
	y := d.cur.Y

	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetTextColor(45, 55, 72)
	d.pdf.Text(margin, y+4, arch.Label)

	ratio := fillRatio(score, maxScore)

	trackX := margin + 35
	d.pdf.SetFillColor(237, 242, 247)
	d.pdf.RoundedRect(trackX, y, trackWidth, trackHeight, 2, "1234", "F")
	if ratio > 0 {
		d.pdf.SetFillColor(arch.Color.R, arch.Color.G, arch.Color.B)
		d.pdf.RoundedRect(trackX, y, trackWidth*ratio, trackHeight, 2, "1234", "F")
	}

	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(74, 85, 104)
	n := fmt.Sprintf("%d", score)
	d.pdf.Text(pageWidth-margin-d.measure(n), y+4.5, n)

	d.cur.Y += trackHeight + 6
}

// fillRatio clamps score/maxScore into [0,1].
func fillRatio(score, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	ratio := float64(score) / float64(maxScore)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// meterColor buckets a 0-100 score into success/warning/danger hues.
func meterColor(score int) domain.RGB {
	switch {
	case score >= 70:
		return domain.RGB{R: 56, G: 161, B: 105} // success
	case score >= 40:
		return domain.RGB{R: 221, G: 160, B: 32} // warning
	default:
		return domain.RGB{R: 197, G: 48, B: 48} // danger
	}
}

// CompatibilityMeter draws the big percentage disc with a caption.
func (d *Document) CompatibilityMeter(score int) {
	const radius = 18.0
	d.ensureSpace(2*radius + 14)

	cx := pageWidth / 2
	cy := d.cur.Y + radius

	c := meterColor(score)
	d.pdf.SetFillColor(c.R, c.G, c.B)
	d.pdf.Circle(cx, cy, radius, "F")

	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetXY(cx-radius, cy-5)
	d.pdf.CellFormat(2*radius, 10, fmt.Sprintf("%d%%", score), "", 0, "CM", false, 0, "")

	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(130, 130, 130)
	d.pdf.SetXY(margin, cy+radius+3)
	d.pdf.CellFormat(d.cur.ContentWidth, 6, "Compatibility", "", 0, "C", false, 0, "")

	d.cur.Y = cy + radius + 12
}

// Callout draws an accent-barred tip box under a friction section.
func (d *Document) Callout(text string, accent domain.RGB) {
	if text == "" {
		return
	}
	lines := wrapText(d.measure, text, d.cur.ContentWidth-10)
	height := float64(len(lines))*lineHeight + 4
	d.ensureSpace(height)

	d.pdf.SetFillColor(accent.R, accent.G, accent.B)
	d.pdf.Rect(margin, d.cur.Y, 1.5, height, "F")

	d.pdf.SetFont("Helvetica", "I", 10)
	d.pdf.SetTextColor(74, 85, 104)
	y := d.cur.Y + 2
	for _, line := range lines {
		d.pdf.Text(margin+6, y+lineHeight-1.5, line)
		y += lineHeight
	}
	d.cur.Y += height + 4
}

// Finalize closes the document and returns the PDF bytes. The handle is
// single-use: any error discards the partial artifact and later calls fail
// with ErrFinalized.
func (d *Document) Finalize() ([]byte, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	d.finalized = true

	if d.pdf.Err() {
		return nil, fmt.Errorf("document composition failed: %w", d.pdf.Error())
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func initialOf(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// joinMembers renders "A & B" style member lists for friction points.
func joinMembers(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}
