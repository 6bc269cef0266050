package inline

import (
	"fmt"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/api"
	"github.com/flanksource/clicky/api/icons"
)

func (r SyncResult) Pretty() api.Text {
	created, updated := "Created", "Updated"
	if r.DryRun {
		created, updated = "Missing", "Out of date"
	}

	text := clicky.Text(fmt.Sprintf("Inline %s tests", r.Outcome), "font-bold").
		Append(" "+r.Dir, "text-muted")

	if len(r.Created) > 0 {
		text = text.NewLine().Append(fmt.Sprintf("  %s (%d)", created, len(r.Created)), "text-green-600")
		for _, f := range r.Created {
			text = text.NewLine().Append("    ", "").Add(icons.Check.WithStyle("text-green-600")).Append(" "+f.Path, "")
		}
	}
	if len(r.Updated) > 0 {
		text = text.NewLine().Append(fmt.Sprintf("  %s (%d)", updated, len(r.Updated)), "text-yellow-600")
		for _, u := range r.Updated {
			text = text.NewLine().Append("    ", "").Add(icons.Edit).Append(" "+u.Path, "").NewLine()
			text = text.Add(lineDiff(u.Previous, u.Text))
		}
	}
	if !r.Changed() {
		text = text.Append(fmt.Sprintf(" (%d up to date)", len(r.Unchanged)), "text-gray-500")
	}
	return text
}

func (r GenerateReport) Pretty() api.Text {
	text := clicky.Text("")
	for i, result := range r.Results {
		if i > 0 {
			text = text.NewLine()
		}
		text = text.Add(result.Pretty())
	}
	return text
}
