package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/classify"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/store"
)

const timeLayout = "2006-01-02 15:04"

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render: encoding json: %w", err)
	}
	return nil
}

// Check writes one check as a short block.
func Check(w io.Writer, chk checker.Check) error {
	var b strings.Builder

	title := chk.Title()
	if chk.Product != nil && chk.Product.Barcode != "" && title != chk.Product.Barcode {
		title += " (" + chk.Product.Barcode + ")"
	}
	fmt.Fprintf(&b, "%s %s\n", Badge(chk.Result.Status), TitleStyle.Render(title))
	fmt.Fprintf(&b, "  %s\n", chk.Result.Message)

	style := StatusStyle(chk.Result.Status)
	if len(chk.Result.MatchedPhrases) > 0 {
		fmt.Fprintf(&b, "  Gluten:    %s\n", style.Render(strings.Join(chk.Result.MatchedPhrases, ", ")))
	}
	if len(chk.Result.AmbiguousPhrases) > 0 {
		fmt.Fprintf(&b, "  Ambiguous: %s\n", StatusStyle(classify.StatusCaution).Render(strings.Join(chk.Result.AmbiguousPhrases, ", ")))
	}
	if d := chk.Dish; d != nil {
		line := "  Usually:   " + string(d.Risk)
		if d.Notes != "" {
			line += " (" + d.Notes + ")"
		}
		b.WriteString(line + "\n")
	}
	if chk.Source != checker.SourceText {
		if ing := chk.Ingredients(); ing != "" {
			fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render("Ingredients: "+ing))
		}
	}

	meta := []string{string(chk.Source), "lists " + chk.PhrasesVersion}
	if chk.Cached {
		meta = append(meta, "cached")
	}
	fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(strings.Join(meta, " · ")))

	_, err := io.WriteString(w, b.String())
	return err
}

// Checks writes each check separated by a blank line.
func Checks(w io.Writer, checks []checker.Check) error {
	if len(checks) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No matches."))
		return err
	}
	for i, chk := range checks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Check(w, chk); err != nil {
			return err
		}
	}
	return nil
}

// Favorites writes saved favorites as a table.
func Favorites(w io.Writer, recs []store.Record) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No favorites yet. Add one with 'glutenguard favorites add <barcode>'."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("STATUS"), HeaderStyle.Render("BARCODE"),
		HeaderStyle.Render("NAME"), HeaderStyle.Render("SAVED"))
	for _, r := range recs {
		name := r.Name
		if r.Brand != "" {
			name += " · " + r.Brand
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			StatusStyle(r.Result.Status).Render(string(r.Result.Status)),
			r.Barcode, name, r.SavedAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

// History writes past checks as a table, newest first.
func History(w io.Writer, entries []store.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No checks recorded."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("WHEN"), HeaderStyle.Render("STATUS"),
		HeaderStyle.Render("SOURCE"), HeaderStyle.Render("QUERY"))
	for _, e := range entries {
		q := truncate(e.Query, 48)
		if e.Name != "" {
			q = e.Name + " (" + truncate(e.Query, 32) + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.CheckedAt.Local().Format(timeLayout),
			StatusStyle(e.Status).Render(string(e.Status)),
			e.Source, q)
	}
	return tw.Flush()
}

// Phrases writes a summary of the active reference lists.
func Phrases(w io.Writer, s *phrases.Set, verbose bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", TitleStyle.Render("Reference lists"), SubtleStyle.Render("version "+s.Version))
	fmt.Fprintf(&b, "  gluten:    %d phrases\n", len(s.Gluten))
	fmt.Fprintf(&b, "  ambiguous: %d phrases\n", len(s.Ambiguous))
	if verbose {
		b.WriteString("\n" + HeaderStyle.Render("Gluten") + "\n")
		for _, p := range s.Gluten {
			b.WriteString("  " + p + "\n")
		}
		b.WriteString("\n" + HeaderStyle.Render("Ambiguous") + "\n")
		for _, p := range s.Ambiguous {
			b.WriteString("  " + p + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func truncate(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
