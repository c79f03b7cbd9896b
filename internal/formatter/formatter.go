// package formatter renders import results for the CLI and exports them to
// CSV, Markdown, and plain text.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/shared"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).MarginBottom(1)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
)

// ExportToCSV converts an ImportResult to CSV with columns: Status, Title, Artist, Album, Duration, Confidence, URL
func ExportToCSV(result *models.ImportResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Status", "Title", "Artist", "Album", "Duration", "Confidence", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, match := range result.Tracks {
		record := []string{string(match.Status), match.Ref.Title, match.Ref.Artist, "", "", "", ""}
		if match.Track != nil {
			record = []string{
				string(match.Status),
				match.Track.Title,
				match.Track.Artist,
				match.Track.Album,
				strconv.Itoa(match.Track.Duration),
				fmt.Sprintf("%.2f", match.Confidence),
				match.Track.URL,
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an ImportResult to Markdown.
func ExportToMarkdown(result *models.ImportResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", headline(result)))
	buf.WriteString(fmt.Sprintf("**Source**: %s\n", result.Platform))

	if result.Summary != nil {
		buf.WriteString(fmt.Sprintf("**Matched**: %d of %d\n", result.Summary.Found, result.Summary.Total))
	}
	buf.WriteString("\n## Tracks\n\n")

	for i, match := range result.Tracks {
		if match.Track == nil {
			buf.WriteString(fmt.Sprintf("%d. ~~%s~~ (not found)\n", i+1, match.Ref.Query()))
			continue
		}

		duration := ""
		if match.Track.Duration > 0 {
			duration = fmt.Sprintf(" [%s]", shared.FormatDuration(match.Track.Duration))
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, match.Track.Artist, match.Track.Title, duration))
	}

	if len(result.Suggestions) > 0 {
		buf.WriteString("\n## Try instead\n\n")
		for _, s := range result.Suggestions {
			buf.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts an ImportResult to plain text.
func ExportToText(result *models.ImportResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Import: %s\n", headline(result)))
	if result.Summary != nil {
		buf.WriteString(fmt.Sprintf("Matched: %d of %d\n", result.Summary.Found, result.Summary.Total))
	}
	buf.WriteString("\n")

	for i, match := range result.Tracks {
		if match.Track == nil {
			buf.WriteString(fmt.Sprintf("%d. %s (not found)\n", i+1, match.Ref.Query()))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, match.Track.Artist, match.Track.Title))
	}

	return buf.Bytes(), nil
}

// RenderSummary renders a styled terminal summary of an import.
func RenderSummary(result *models.ImportResult) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(headline(result)))
	sb.WriteString("\n")

	for _, match := range result.Tracks {
		if match.Track == nil {
			sb.WriteString(fmt.Sprintf("  %s %s\n", missStyle.Render("✗"), match.Ref.Query()))
			continue
		}

		liked := ""
		if match.Track.Liked {
			liked = " " + dimStyle.Render("(liked)")
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s%s\n", okStyle.Render("✓"), match.Track.Artist, match.Track.Title, liked))
	}

	if result.Summary != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s found, %s missing of %d\n",
			okStyle.Render(strconv.Itoa(result.Summary.Found)),
			missStyle.Render(strconv.Itoa(result.Summary.NotFound)),
			result.Summary.Total,
		))
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString(dimStyle.Render("try: " + strings.Join(result.Suggestions, ", ")))
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteExport writes an ImportResult to a file in the given format
// ("csv", "markdown", or "text"). An empty path derives one from the
// platform tag.
func WriteExport(result *models.ImportResult, format, path string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(result)
		ext = "csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(result)
		ext = "md"
	case "text", "txt", "":
		data, err = ExportToText(result)
		ext = "txt"
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidInput, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("%s_import.%s", result.Platform, ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	return path, nil
}

func headline(result *models.ImportResult) string {
	switch {
	case result.PlaylistName != "":
		return result.PlaylistName
	case result.Query != "":
		return result.Query
	default:
		return result.Platform + " import"
	}
}
