package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mediascout/internal/config"
	"mediascout/internal/scan"
	"mediascout/internal/taxonomy"
	"mediascout/internal/textutil"
	"mediascout/internal/tmdb"
	"mediascout/internal/tracker"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const overviewWidth = 300

// Printer writes lookup output to a terminal or pipe.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer that colours output only when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: ShouldColorize(w)}
}

// NewWithColor returns a Printer with colour forced on or off.
func NewWithColor(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ansiReset
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) table(title string, headers []string, rows [][]string, aligns []columnAlignment) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, renderTable(title, headers, rows, aligns))
}

// Banner announces the tracker search for title.
func (p *Printer) Banner(title, query string) {
	msg := "Searching trackers for " + title
	if query != "" {
		msg += fmt.Sprintf(" with search query '%s'", query)
	}
	fmt.Fprintln(p.w)
	p.line("%s", p.paint(ansiYellow, "== "+msg+" =="))
}

// AutoSelected reports that the only search result was picked without a prompt.
func (p *Printer) AutoSelected(title string) {
	p.line("%s %s", p.paint(ansiYellow, "Automatically selected:"), title)
}

// Notice prints each line as a highlighted hint.
func (p *Printer) Notice(lines ...string) {
	fmt.Fprintln(p.w)
	for _, l := range lines {
		p.line("%s", p.paint(ansiYellow, l))
	}
}

// Error prints an operator-facing failure line.
func (p *Printer) Error(msg string) {
	p.line("%s %s", p.paint(ansiRed, "Error:"), msg)
}

// Alert prints msg highlighted as a problem without the Error prefix.
func (p *Printer) Alert(msg string) {
	p.line("%s", p.paint(ansiRed, msg))
}

// Details renders the resolved movie or series.
func (p *Printer) Details(d *tmdb.Details) {
	if d == nil {
		return
	}
	overview := strings.TrimSpace(d.Overview)
	if overview == "" {
		overview = "No overview available."
	}
	rows := [][]string{
		{"Title", orNA(d.DisplayTitle())},
		{"Release Year", orNA(d.Year())},
		{"Genres", orNA(strings.Join(d.GenreNames(), ", "))},
		{"Runtime", FormatRuntime(d.RuntimeMinutes())},
		{"TMDb ID", strconv.FormatInt(d.ID, 10)},
		{"Overview", textutil.Truncate(overview, overviewWidth)},
	}
	p.table(d.Kind.Label()+" Details", []string{"Field", "Details"}, rows, nil)
}

// SearchResults renders numbered TMDb candidates for selection.
func (p *Printer) SearchResults(results []tmdb.Result) {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, []string{strconv.Itoa(i + 1), orNA(r.DisplayTitle()), orNA(r.Year())})
	}
	p.table("Search Results", []string{"Index", "Title", "Release Year"}, rows,
		[]columnAlignment{alignCenter, alignLeft, alignCenter})
}

// TrackerResults renders the listings of one successful tracker.
func (p *Printer) TrackerResults(outcome tracker.Outcome) {
	rows := make([][]string, 0, len(outcome.Listings))
	for _, l := range outcome.Listings {
		rows = append(rows, []string{
			orNA(l.Name),
			FormatGiB(l.SizeBytes),
			strconv.FormatInt(l.Seeders, 10),
			strconv.FormatInt(l.Leechers, 10),
			orNA(string(l.Freeleech)),
		})
	}
	p.table(outcome.TrackerName+" Results",
		[]string{"Name", "Size", "Seeders", "Leechers", "Freeleech"}, rows,
		[]columnAlignment{alignLeft, alignCenter, alignCenter, alignCenter, alignCenter})
}

// Summary renders every successful tracker's listings followed by the
// failed sites and missing media types.
func (p *Printer) Summary(agg *scan.Aggregate) {
	if agg == nil {
		return
	}
	for _, outcome := range agg.Outcomes {
		if outcome.Succeeded() {
			p.TrackerResults(outcome)
		}
	}
	if failed := agg.FailedOutcomes(); len(failed) > 0 {
		rows := make([][]string, 0, len(failed))
		for _, o := range failed {
			rows = append(rows, []string{o.TrackerName, o.Reason})
		}
		p.table("Failed Sites", []string{"Tracker", "Reason"}, rows, nil)
	}
	if missing := agg.MissingOutcomes(); len(missing) > 0 {
		rows := make([][]string, 0, len(missing))
		for _, o := range missing {
			rows = append(rows, []string{o.TrackerName, joinCategories(o.Missing)})
		}
		p.table("Missing Media Types", []string{"Tracker", "Missing Types"}, rows, nil)
	}
	for _, path := range agg.Exported {
		p.line("Exported %s", path)
	}
	if agg.NoSuccess() {
		fmt.Fprintln(p.w)
		p.line("%s", p.paint(ansiRed, "No successful queries."))
	}
}

// Trackers renders the tracker catalog with each entry's readiness.
func (p *Printer) Trackers(enabled, disabled []config.Tracker) {
	rows := make([][]string, 0, len(enabled)+len(disabled))
	for _, t := range enabled {
		rows = append(rows, []string{t.Code, t.Name, orNA(t.URL), p.trackerState(t)})
	}
	for _, t := range disabled {
		rows = append(rows, []string{t.Code, t.Name, orNA(t.URL), "disabled (no API key)"})
	}
	p.table("Trackers", []string{"Code", "Name", "URL", "Status"}, rows, nil)
}

func (p *Printer) trackerState(t config.Tracker) string {
	switch {
	case t.Configured():
		return p.paint(ansiGreen, "ready")
	case strings.TrimSpace(t.APIKey) == "":
		return "missing API key"
	default:
		return "missing URL"
	}
}

func joinCategories(categories []taxonomy.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
