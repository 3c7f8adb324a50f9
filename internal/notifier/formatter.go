package notifier

import (
	"fmt"
	"strings"

	"oppwatch/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Formatter renders transition events into channel-agnostic subject/body
// text. Channels prepend their own framing but share the same content.
type Formatter struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{dmp: diffmatchpatch.New()}
}

// Subject produces the one-line notification title for an event.
func (f *Formatter) Subject(event models.TransitionEvent) string {
	switch event.Category {
	case models.CategoryFirstRun:
		return "Opportunity monitor: opportunities already listed"
	case models.CategoryNewAvailability:
		return "Opportunity alert: new opportunities available"
	case models.CategoryAvailabilityCleared:
		return "Opportunity monitor: listings cleared"
	case models.CategoryAvailabilityChanged:
		return "Opportunity alert: listings changed"
	case models.CategoryError:
		return "Opportunity monitor: check failed"
	default:
		return "Opportunity monitor"
	}
}

// Body produces the notification body. For content-level changes inside an
// already-available state it appends a line-level change summary so the
// reader sees what moved without opening the portal.
func (f *Formatter) Body(event models.TransitionEvent) string {
	var b strings.Builder
	b.WriteString(event.Message)

	if event.Category == models.CategoryAvailabilityChanged && event.Previous != nil && event.Current != nil {
		summary := f.changeSummary(event.Previous.SerializedItems, event.Current.SerializedItems)
		if summary != "" {
			b.WriteString("\n\nChanges:\n")
			b.WriteString(summary)
		}
	}

	if event.Current != nil && event.Current.Kind == models.KindAvailable && event.Current.SerializedItems != "" {
		b.WriteString("\n\nCurrent listings:\n")
		for _, name := range strings.Split(event.Current.SerializedItems, ",") {
			fmt.Fprintf(&b, "  * %s\n", name)
		}
	}
	return b.String()
}

// changeSummary diffs the two canonical item serializations and renders
// inserted and deleted spans as +/- lines.
func (f *Formatter) changeSummary(previous, current string) string {
	diffs := f.dmp.DiffMain(previous, current, false)
	diffs = f.dmp.DiffCleanupSemantic(diffs)

	var lines []string
	for _, diff := range diffs {
		text := strings.Trim(diff.Text, ", ")
		if text == "" {
			continue
		}
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			lines = append(lines, "  + "+text)
		case diffmatchpatch.DiffDelete:
			lines = append(lines, "  - "+text)
		}
	}
	return strings.Join(lines, "\n")
}
