// package formatter provides functions to export reports to various formats
// (Markdown, plain text, JSON) and to prepare text payloads for display
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
)

// SharedVoice rewrites a second-person summary into third person for shared
// presentation. The scoring service writes summaries addressed to the owner;
// a viewer opening someone else's result should not be addressed as "you".
func SharedVoice(summary string) string {
	replacements := []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`\bYou're\b`), "This person is"},
		{regexp.MustCompile(`\byou're\b`), "this person is"},
		{regexp.MustCompile(`\bYou are\b`), "This person is"},
		{regexp.MustCompile(`\byou are\b`), "this person is"},
		{regexp.MustCompile(`\bYour\b`), "Their"},
		{regexp.MustCompile(`\byour\b`), "their"},
	}

	for _, r := range replacements {
		summary = r.pattern.ReplaceAllString(summary, r.replacement)
	}
	return summary
}

var contributorLine = regexp.MustCompile(`^\d*\s*Contributors?\b|^Translations?\b`)

// CleanLyrics normalizes a raw lyrics payload for terminal display: provider
// contributor and translation headers are dropped, section markers like
// [Chorus] keep their own line, and runs of blank lines collapse to one.
func CleanLyrics(raw string) []string {
	var cleaned []string
	blank := true

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if contributorLine.MatchString(line) {
			continue
		}
		if line == "" {
			if !blank {
				cleaned = append(cleaned, "")
				blank = true
			}
			continue
		}

		// Providers occasionally glue a section marker onto the previous
		// line; split it back out.
		if idx := strings.Index(line, "["); idx > 0 {
			head := strings.TrimSpace(line[:idx])
			if head != "" {
				cleaned = append(cleaned, head)
			}
			line = line[idx:]
		}

		cleaned = append(cleaned, line)
		blank = false
	}

	// Trailing blank from a collapse pass.
	if n := len(cleaned); n > 0 && cleaned[n-1] == "" {
		cleaned = cleaned[:n-1]
	}
	return cleaned
}

// sortedTraits returns the breakdown logic keys in stable order.
func sortedTraits(logic map[string]models.TraitScore) []string {
	traits := make([]string, 0, len(logic))
	for trait := range logic {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}

// ExportToMarkdown converts a report to Markdown format
func ExportToMarkdown(report *models.Report, sharedView bool) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	title := report.MBTI
	if report.User != "" {
		title = fmt.Sprintf("%s - %s", report.User, report.MBTI)
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	summary := report.Summary
	if sharedView {
		summary = SharedVoice(summary)
	}
	buf.WriteString(summary + "\n\n")

	buf.WriteString("## Breakdown\n\n")
	buf.WriteString(fmt.Sprintf("**Avg track popularity**: %.1f\n", report.Breakdown.AvgTrackPopularity))
	buf.WriteString(fmt.Sprintf("**Avg track length**: %s\n", shared.FormatDuration(int(report.Breakdown.AvgDurationMS))))
	buf.WriteString(fmt.Sprintf("**Avg artist popularity**: %.1f\n", report.Breakdown.AvgArtistPopularity))
	if len(report.Breakdown.TopGenres) > 0 {
		buf.WriteString(fmt.Sprintf("**Top genres**: %s\n", strings.Join(report.Breakdown.TopGenres, ", ")))
	}
	buf.WriteString("\n")

	if len(report.Breakdown.Logic) > 0 {
		buf.WriteString("## Trait logic\n\n")
		for _, trait := range sortedTraits(report.Breakdown.Logic) {
			score := report.Breakdown.Logic[trait]
			buf.WriteString(fmt.Sprintf("- **%s**: %s (%.1f)", trait, score.Direction, score.Value))
			if score.Reason != "" {
				buf.WriteString(fmt.Sprintf(" - %s", score.Reason))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	if len(report.Tracks) > 0 {
		buf.WriteString("## Tracks\n\n")
		for i, track := range report.Tracks {
			artists := strings.Join(track.ArtistNames, ", ")
			albumPart := ""
			if track.Album != "" {
				albumPart = fmt.Sprintf(" (%s)", track.Album)
			}
			buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, artists, track.TrackName, albumPart, track.DurationFormatted))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a report to plain text format
func ExportToText(report *models.Report, sharedView bool) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Type: %s\n", report.MBTI))
	if report.User != "" {
		buf.WriteString(fmt.Sprintf("User: %s\n", report.User))
	}

	summary := report.Summary
	if sharedView {
		summary = SharedVoice(summary)
	}
	buf.WriteString(fmt.Sprintf("Summary: %s\n\n", summary))

	for _, trait := range sortedTraits(report.Breakdown.Logic) {
		score := report.Breakdown.Logic[trait]
		buf.WriteString(fmt.Sprintf("%s: %s (%.1f)\n", trait, score.Direction, score.Value))
	}
	if len(report.Breakdown.Logic) > 0 {
		buf.WriteString("\n")
	}

	for i, track := range report.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, strings.Join(track.ArtistNames, ", "), track.TrackName))
	}

	return buf.Bytes(), nil
}

// ToReportJSON generates a pretty-printed JSON representation of a report
func ToReportJSON(report *models.Report) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return shared.MarshalJSON(report, true)
}

// WriteExport exports a report to the given format ("text", "markdown" or
// "json"), defaulting the filename to the result id when filepath is empty.
func WriteExport(report *models.Report, format, filepath string) (string, error) {
	base := report.ResultID
	if base == "" {
		base = "report"
	}

	var data []byte
	var err error
	switch format {
	case "markdown", "md":
		data, err = ExportToMarkdown(report, false)
		if filepath == "" {
			filepath = base + ".md"
		}
	case "json":
		data, err = ToReportJSON(report)
		if filepath == "" {
			filepath = base + ".json"
		}
	case "text", "txt", "":
		data, err = ExportToText(report, false)
		if filepath == "" {
			filepath = base + ".txt"
		}
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return filepath, nil
}

// ShareLink builds the public URL for a saved result.
func ShareLink(baseURL, resultID string) string {
	return strings.TrimRight(baseURL, "/") + "/result/" + resultID
}
