package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
)

// Prompter implements the interactive review of category suggestions.
type Prompter struct {
	writer io.Writer
	reader *bufio.Reader
}

// NewPrompter creates a prompter with the given reader and writer,
// defaulting to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ReviewSuggestions shows the proposed category changes and asks the
// user to accept or reject them as a set. Returns true to accept.
func (p *Prompter) ReviewSuggestions(ctx context.Context, suggestions []model.Suggestion) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	var content strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("%s: %s → %s",
			s.ItemName,
			SubtleStyle.Render(s.From),
			SectionStyle(s.To).Render(s.To)))
	}

	title := fmt.Sprintf("Suggested changes (%d)", len(suggestions))
	if _, err := fmt.Fprintln(p.writer, RenderBox(title, content.String())); err != nil {
		return false, fmt.Errorf("failed to write suggestions: %w", err)
	}

	for {
		if _, err := fmt.Fprint(p.writer, PromptStyle.Render("[A]ccept all / [R]eject: ")); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "accept":
			return true, nil
		case "r", "reject":
			return false, nil
		default:
			if _, err := fmt.Fprintln(p.writer, WarningStyle.Render("Please enter A or R")); err != nil {
				return false, fmt.Errorf("failed to write retry message: %w", err)
			}
		}
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if _, err := fmt.Fprint(p.writer, PromptStyle.Render(question+" [y/N]: ")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ConfirmRetry asks whether to retry after a failed verification cycle.
func (p *Prompter) ConfirmRetry(ctx context.Context, reason string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if _, err := fmt.Fprintln(p.writer, FormatError(reason)); err != nil {
		return false, fmt.Errorf("failed to write failure message: %w", err)
	}
	if _, err := fmt.Fprint(p.writer, PromptStyle.Render("Retry? [y/N]: ")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
