package status

import (
	"fmt"

	"github.com/walteh/fontsync/pkg/font"
)

const (
	EmojiProgress = "⏳"
	EmojiComplete = "✅"

	// MsgProgress takes the emoji, current, total and percentage
	MsgProgress = "%s Progress: %d/%d (%.0f%%)"
)

// Formatter defines how per-font outcomes and progress are worded
type Formatter interface {
	// FormatOutcome formats what happened to a font
	FormatOutcome(name string, steps font.Steps, failed bool) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutcome formats a font outcome with emojis
func (f *DefaultFormatter) FormatOutcome(name string, steps font.Steps, failed bool) string {
	switch {
	case failed:
		return fmt.Sprintf("❌ Failed %s", name)
	case steps.Has(font.NeedsDownload):
		return fmt.Sprintf("✨ Installed %s", name)
	case steps.Has(font.NeedsExtract):
		return fmt.Sprintf("📦 Extracted %s", name)
	case steps.Has(font.NeedsRelink):
		return fmt.Sprintf("🔗 Relinked %s", name)
	default:
		return fmt.Sprintf("👍 Unchanged %s", name)
	}
}

// FormatProgress formats a progress message with percentage.
// Negative values count as zero and a run with nothing to do is complete.
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		total = 0
	}

	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	if current < total {
		return fmt.Sprintf(MsgProgress, EmojiProgress, current, total, percentage)
	}
	return fmt.Sprintf(MsgProgress, EmojiComplete, current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
