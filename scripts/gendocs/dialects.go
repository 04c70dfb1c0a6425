package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// generateDialectDocs writes dialects.md, one table row per registered
// dialect plus its reserved words.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects leapquery renders for")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("Select a dialect with " + InlineCode("--dialect") + " or the " + InlineCode("dialect") +
		" config key. Without one, the target's type decides, then " + InlineCode(dialect.Default().Name) + ".")

	names := dialect.List()
	var rows [][]string
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		cfg := d.Config()
		rows = append(rows, []string{
			InlineCode(cfg.Name),
			InlineCode(cfg.Identifiers.Quote + "name" + cfg.Identifiers.QuoteEnd),
			cfg.Placeholder.String(),
			cfg.Pagination.Style.String(),
			cfg.DefaultSchema,
			strconv.Itoa(len(cfg.ReservedWords)),
		})
	}
	w.Table([]string{"Name", "Quoting", "Placeholders", "Pagination", "Default schema", "Reserved words"}, rows)

	w.Paragraph("With " + InlineCode("options.wrap_reserved_words") + " and " +
		InlineCode("options.wrap_identifiers: false") + ", only identifiers in the dialect's reserved-word list are quoted.")

	log.Printf("  Generated dialects.md")
	return os.WriteFile(filepath.Join(outDir, "dialects.md"), w.Bytes(), 0600)
}
