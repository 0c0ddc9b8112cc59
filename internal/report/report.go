// Package report renders query results as markdown for humans and agents.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mvp-joe/pmdo-query/internal/classdoc"
	"github.com/mvp-joe/pmdo-query/internal/query"
	"github.com/mvp-joe/pmdo-query/internal/scaffold"
)

const (
	searchDescWidth  = 40
	listDescWidth    = 50
	maxListedMethods = 5

	noDescription = "(no description)"
	ellipsis      = "..."
)

// Search renders ranked matches as a table.
func Search(q string, matches []query.ScoredMatch) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No entries found matching '%s'. Try a different search term or use pmdo_list_data to browse by category.", q)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results: %q\n\n", q)
	fmt.Fprintf(&b, "Found %d matching entries:\n\n", len(matches))
	b.WriteString("| Name | ID | Index | Category | Description |\n")
	b.WriteString("|------|-----|-------|----------|-------------|\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s%s | %s | %d | %s | %s |\n",
			cell(m.DisplayName), wip(m.IsUnreleased), cell(m.ID), m.SequenceIndex, m.Category,
			cell(truncate(m.Description, searchDescWidth)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Page renders one page of a category listing.
func Page(p *query.Page) string {
	if len(p.Entries) == 0 {
		return fmt.Sprintf("No entries found in category '%s'.", p.Category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Data\n\n", p.Category)
	fmt.Fprintf(&b, "**Description:** %s\n", p.Description)
	fmt.Fprintf(&b, "**Total:** %d entries (showing %d)\n\n", p.Total, len(p.Entries))
	b.WriteString("| Index | ID | Name | Description |\n")
	b.WriteString("|-------|-----|------|-------------|\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "| %d | %s | %s%s | %s |\n",
			e.SequenceIndex, cell(e.ID), cell(e.DisplayName), wip(e.IsUnreleased),
			cell(truncate(e.Description, listDescWidth)))
	}
	if p.HasMore {
		fmt.Fprintf(&b, "\n*More results available. Use offset=%d to see next page.*\n", p.Offset+p.Limit)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Lookup renders a found entry, or the not-found message with suggestions.
func Lookup(res *query.LookupResult) string {
	var b strings.Builder

	if !res.Found {
		fmt.Fprintf(&b, "Entry '%s' not found in %s.\n", res.Query, res.Category)
		if len(res.Suggestions) > 0 {
			b.WriteString("\n**Did you mean one of these?**\n\n")
			for _, s := range res.Suggestions {
				fmt.Fprintf(&b, "- `%s` (%s, index %d)\n", s.Name, s.ID, s.Index)
			}
		}
		return strings.TrimSuffix(b.String(), "\n")
	}

	e := res.Entry
	status := "Released"
	if e.IsUnreleased {
		status = "Unreleased/WIP"
	}
	fmt.Fprintf(&b, "# %s\n\n", e.DisplayName)
	fmt.Fprintf(&b, "**Category:** %s\n", res.Category)
	fmt.Fprintf(&b, "**ID:** %s\n", e.ID)
	fmt.Fprintf(&b, "**Index:** %d\n", e.SequenceIndex)
	fmt.Fprintf(&b, "**Status:** %s\n", status)
	if e.RawName != "" && e.RawName != e.DisplayName {
		fmt.Fprintf(&b, "**Raw name:** `%s`\n", e.RawName)
	}
	b.WriteString("\n")

	if e.Description != "" {
		fmt.Fprintf(&b, "## Description\n\n%s\n\n", e.Description)
	}
	if e.SpriteRef != "" {
		fmt.Fprintf(&b, "**Sprite:** %s\n", e.SpriteRef)
	}
	if e.Price != nil {
		fmt.Fprintf(&b, "**Price:** %d\n", *e.Price)
	}
	if e.SourceLocation != nil {
		fmt.Fprintf(&b, "\n**Source:** %s:%d\n", e.SourceLocation.File, e.SourceLocation.Line)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ClassList renders the types of one category with their top methods.
func ClassList(list *query.ClassList) string {
	if len(list.Classes) == 0 {
		return fmt.Sprintf("No classes found in category '%s'.", list.Category)
	}

	files := make([]string, len(list.Files))
	for i, f := range list.Files {
		files[i] = "`" + f + "`"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Classes\n\n", list.Category)
	fmt.Fprintf(&b, "**Description:** %s\n", list.Description)
	fmt.Fprintf(&b, "**Files:** %s\n", strings.Join(files, ", "))
	if len(list.KeyTypes) > 0 {
		fmt.Fprintf(&b, "**Key types:** %s\n", strings.Join(list.KeyTypes, ", "))
	}
	fmt.Fprintf(&b, "**Count:** %d\n\n", len(list.Classes))

	for _, c := range list.Classes {
		fmt.Fprintf(&b, "## %s%s\n", c.Name, partial(c.IsPartial, " (partial)"))
		if c.Summary != "" {
			b.WriteString(c.Summary + "\n")
		}
		if c.BaseType != "" {
			fmt.Fprintf(&b, "- **Base:** `%s`\n", c.BaseType)
		}
		if n := len(c.Methods); n > 0 {
			shown := c.Methods[:min(n, maxListedMethods)]
			methodNames := make([]string, len(shown))
			for i, m := range shown {
				methodNames[i] = m.Name
			}
			more := ""
			if n > maxListedMethods {
				more = fmt.Sprintf(", ... (+%d more)", n-maxListedMethods)
			}
			fmt.Fprintf(&b, "- **Methods:** %s%s\n", strings.Join(methodNames, ", "), more)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ClassDoc renders full documentation for one type.
func ClassDoc(c *classdoc.ClassDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s%s\n\n", c.Name, partial(c.IsPartial, " (partial "+c.Kind+")"))
	fmt.Fprintf(&b, "**Namespace:** `%s`\n", c.Namespace)
	if c.BaseType != "" {
		fmt.Fprintf(&b, "**Base Class:** `%s`\n", c.BaseType)
	}
	fmt.Fprintf(&b, "**File:** `%s:%d`\n\n", c.FilePath, c.Line)

	if c.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", c.Summary)
	} else if c.InheritsDoc {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", classdoc.InheritedDocumentation)
	}
	if c.Remarks != "" {
		fmt.Fprintf(&b, "## Remarks\n\n%s\n\n", c.Remarks)
	}

	if len(c.Fields) > 0 {
		b.WriteString("## Fields/Properties\n\n")
		for _, f := range c.Fields {
			fmt.Fprintf(&b, "### `%s` : `%s`\n", f.Name, f.Type)
			if f.Summary != "" {
				b.WriteString(f.Summary + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(c.Methods) > 0 {
		b.WriteString("## Methods\n\n")
		for _, m := range c.Methods {
			fmt.Fprintf(&b, "### `%s`\n", m.Signature)
			if m.Summary != "" {
				b.WriteString(m.Summary + "\n")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ClassNotFound is the message for an unknown type name.
func ClassNotFound(name string) string {
	return fmt.Sprintf("Class '%s' not found. Use pmdo_list_classes to see available classes.", name)
}

// Stats renders per-category counts.
func Stats(stats []query.CategoryStats) string {
	var b strings.Builder
	b.WriteString("# PMDO Data Statistics\n\n")
	b.WriteString("| Category | Released | Unreleased | Total |\n")
	b.WriteString("|----------|----------|------------|-------|\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", s.Category, s.Released, s.Unreleased, s.Total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Scaffold renders a generated snippet with its placement hint and warnings.
func Scaffold(title string, res *scaffold.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated %s:\n\n```csharp\n%s\n```\n\n%s", title, res.Code, res.Hint)
	if len(res.Warnings) > 0 {
		b.WriteString("\n\n" + strings.Join(res.Warnings, "\n"))
	}
	return b.String()
}

// truncate shortens s to width display cells, ending in "...".
func truncate(s string, width int) string {
	if s == "" {
		return noDescription
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// cell keeps free text from breaking a table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func wip(unreleased bool) string {
	if unreleased {
		return " (WIP)"
	}
	return ""
}

func partial(isPartial bool, label string) string {
	if isPartial {
		return label
	}
	return ""
}
