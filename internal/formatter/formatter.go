// package formatter renders sync plans for confirmation and export (plain
// table, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"cardsync/internal/plan"
	"cardsync/internal/ui"
)

// Summary returns the one-line keep/add/remove tally for a plan.
func Summary(p plan.Plan) string {
	return fmt.Sprintf("%d keep, %d add, %d remove", p.KeepCount, p.AddCount, p.RemoveCount)
}

// RenderTable renders the plan as an aligned text table with a colored
// action column, suitable for the confirmation prompt.
func RenderTable(p plan.Plan) string {
	var buf bytes.Buffer

	titleWidth := len("Title")
	for _, item := range p.Items {
		if len(item.Title) > titleWidth {
			titleWidth = len(item.Title)
		}
	}

	buf.WriteString(fmt.Sprintf("%-4s  %-8s  %-*s  %s\n", "Pos", "Action", titleWidth, "Title", "Ref"))

	for _, item := range p.Items {
		pos := "-"
		if item.Position > 0 {
			pos = strconv.Itoa(item.Position)
		}

		action := item.Action.String()
		switch item.Action {
		case plan.Keep:
			action = ui.OKStyle().Render(action)
		case plan.Add:
			action = ui.WarnStyle().Render(action)
		case plan.Remove:
			action = ui.ErrStyle().Render(action)
		}

		ref := ""
		switch {
		case item.Target != nil:
			ref = item.Target.Key
		case item.Source != nil:
			ref = item.Source.ID
		}

		// Styled action strings carry escape codes, so pad the raw word.
		pad := 8 - len(item.Action.String())
		buf.WriteString(fmt.Sprintf("%-4s  %s%*s  %-*s  %s\n", pos, action, pad, "", titleWidth, item.Title, ref))
	}

	buf.WriteString("\n" + Summary(p) + "\n")
	return buf.String()
}

// ToCSV converts a plan to CSV with columns: Position, Action, Title, SourceID, TargetKey
func ToCSV(p plan.Plan) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Action", "Title", "SourceID", "TargetKey"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range p.Items {
		pos := ""
		if item.Position > 0 {
			pos = strconv.Itoa(item.Position)
		}
		sourceID := ""
		if item.Source != nil {
			sourceID = item.Source.ID
		}
		targetKey := ""
		if item.Target != nil {
			targetKey = item.Target.Key
		}

		if err := writer.Write([]string{pos, item.Action.String(), item.Title, sourceID, targetKey}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts a plan to a Markdown document.
func ToMarkdown(p plan.Plan, sourceName, targetName string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Sync plan: %s → %s\n\n", sourceName, targetName))
	buf.WriteString(fmt.Sprintf("**Changes**: %s\n\n", Summary(p)))

	buf.WriteString("| Pos | Action | Title |\n")
	buf.WriteString("| --- | ------ | ----- |\n")
	for _, item := range p.Items {
		pos := "-"
		if item.Position > 0 {
			pos = strconv.Itoa(item.Position)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", pos, item.Action, item.Title))
	}

	return buf.Bytes()
}
