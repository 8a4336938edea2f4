package salesman

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// GenerationReport describes one generation. The engine fills in the pool
// figures; the search loop adds round bookkeeping.
type GenerationReport struct {
	Round          int
	PoolSize       int
	Attempts       int
	Converged      bool
	DegradedPairs  uint
	BestLength     float64
	TopHalfAverage float64
	// Diversity is the edit distance between the two best roads.
	Diversity int
	Top       []*Road

	HighScore float64
	Improved  bool
	Winner    *Road

	Duration time.Duration
	Elapsed  time.Duration
}

func (gr *GenerationReport) fillFromPool(pool Pool) {
	gr.PoolSize = len(pool)
	gr.TopHalfAverage = TopHalfAverage(pool)
	if best := Best(pool); best != nil {
		gr.BestLength = best.Length()
	}
	if len(pool) > 1 {
		gr.Diversity = PathEditDistance(pool[0], pool[1])
	}
	gr.Top = Truncate(pool, 3)
}

// Reporter receives a report after every round. Reporting errors are
// logged by the search loop and never stop it.
type Reporter interface {
	ReportRound(report *GenerationReport) error
}

// ConsoleReporter prints the round summary the command line tools show.
type ConsoleReporter struct {
	Out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{Out: out}
}

func (cr *ConsoleReporter) ReportRound(report *GenerationReport) error {
	var sb strings.Builder
	sb.WriteString(Line())
	fmt.Fprintf(&sb, "round %d\n", report.Round)
	fmt.Fprintf(&sb, "best of pool of %d:\n", report.PoolSize)
	for _, r := range report.Top {
		fmt.Fprintf(&sb, "     %s\n", r.ShortRepr())
	}
	fmt.Fprintf(&sb, "average value top half: %s\n", humanize.Commaf(report.TopHalfAverage))
	if !report.Converged {
		fmt.Fprintf(&sb, "pool did not fill after %d attempts\n", report.Attempts)
	}
	if report.Winner != nil {
		tag := "top:"
		if report.Improved {
			tag = "TOP:"
		}
		fmt.Fprintf(&sb, "%s %s\n", tag, report.Winner.ShortRepr())
	}
	average := time.Duration(0)
	if report.Round > 0 {
		average = report.Elapsed / time.Duration(report.Round)
	}
	fmt.Fprintf(&sb, "%s cumul: %s av: %s\n", Spent(report.Duration), Spent(report.Elapsed), Spent(average))
	_, err := io.WriteString(cr.Out, sb.String())
	return err
}

func Line() string {
	return strings.Repeat("-", 80) + "\n"
}

// Spent formats a duration as seconds, with a minute prefix once past one
// minute: "4.250s", "2m3.500s".
func Spent(d time.Duration) string {
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	if minutes == 0 {
		return fmt.Sprintf("%.3fs", seconds)
	}
	return fmt.Sprintf("%dm%.3fs", minutes, seconds)
}
