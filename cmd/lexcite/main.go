package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/clean"
	"github.com/coolbeans/lexcite/pkg/extract"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
	"github.com/coolbeans/lexcite/pkg/resolve"
	"github.com/coolbeans/lexcite/pkg/tokenize"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lexcite",
		Short: "Legal citation extraction and resolution",
		Long: `Lexcite finds legal citations in text or HTML and groups them by the
authority they cite.

It recognizes full case, statute, regulation, journal, and agency
opinion citations plus their short forms (id., supra, "531 U.S. at
103"), recovers case names and parentheticals around each match, and
resolves back-references to the authority they point at.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(extractorsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract citations from a document",
		Long: `Extract citations from a text or HTML document.

Reads from --source, or from stdin when --source is "-" or omitted.

Example:
  lexcite extract --source brief.txt
  lexcite extract --source opinion.html --markup
  cat brief.txt | lexcite extract --format table
  lexcite extract --source brief.txt --overlap parent-only --remove-ambiguous`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			formatStr, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			text, opts, err := extractionInputs(cmd, source)
			if err != nil {
				return err
			}

			cites, err := extract.Citations(text, opts)
			if err != nil {
				return err
			}

			switch formatStr {
			case "json":
				return writeJSON(cites, output)
			case "table":
				printCitationTable(cites)
				return nil
			default:
				return fmt.Errorf("unknown format: %s (use table or json)", formatStr)
			}
		},
	}

	addExtractionFlags(cmd)
	return cmd
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Extract citations and group them by authority",
		Long: `Extract citations from a document and resolve short forms (id.,
supra, short cases, bare case-name mentions) back to the authority
they cite.

Example:
  lexcite resolve --source brief.txt
  lexcite resolve --source opinion.html --markup --format table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			formatStr, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			text, opts, err := extractionInputs(cmd, source)
			if err != nil {
				return err
			}

			cites, err := extract.Citations(text, opts)
			if err != nil {
				return err
			}
			res := resolve.Resolve(cites)

			groups := make([]resolvedGroup, 0, res.Len())
			for _, r := range res.Resources() {
				auth, _ := res.Authority(r)
				groups = append(groups, resolvedGroup{
					Resource:  r.ID(),
					Authority: auth,
					Citations: res.Citations(r),
				})
			}

			switch formatStr {
			case "json":
				return writeJSON(groups, output)
			case "table":
				printResolutionTable(groups, len(cites))
				return nil
			default:
				return fmt.Errorf("unknown format: %s (use table or json)", formatStr)
			}
		},
	}

	addExtractionFlags(cmd)
	return cmd
}

func extractorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extractors",
		Short: "List the registered citation extractors",
		Long: `List the extractors the tokenizer runs, in priority order.

With --packs, custom YAML extractor packs are loaded into the registry
first, so the listing shows exactly what an extraction run with the
same flag would use.

Example:
  lexcite extractors
  lexcite extractors --packs ./packs --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			packs, _ := cmd.Flags().GetString("packs")
			formatStr, _ := cmd.Flags().GetString("format")

			registry := tokenize.Default()
			if packs != "" {
				loaded, err := registryWithPacks(packs)
				if err != nil {
					return err
				}
				registry = loaded
			}

			switch formatStr {
			case "json":
				return writeJSON(registry.List(), "")
			case "table":
				printExtractorTable(registry.List())
				return nil
			default:
				return fmt.Errorf("unknown format: %s (use table or json)", formatStr)
			}
		},
	}

	cmd.Flags().String("packs", "", "YAML extractor pack file or directory")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

// addExtractionFlags attaches the flags extract and resolve share.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "", `Source document path ("-" or empty for stdin)`)
	cmd.Flags().Bool("markup", false, "Treat the source as HTML markup")
	cmd.Flags().StringSlice("clean", nil, "Cleaning steps to apply (html, xml, inline-whitespace, all-whitespace, underscores)")
	cmd.Flags().String("overlap", "all", "Overlap policy (all, parent-only, children-only)")
	cmd.Flags().Bool("remove-ambiguous", false, "Drop case citations whose reporter edition is ambiguous")
	cmd.Flags().String("packs", "", "YAML extractor pack file or directory")
	cmd.Flags().StringP("format", "f", "json", "Output format (table, json)")
	cmd.Flags().StringP("output", "o", "", "Output file path (JSON only, default stdout)")
}

// extractionInputs reads the source document and assembles extraction
// options from the shared flags.
func extractionInputs(cmd *cobra.Command, source string) (string, extract.Options, error) {
	data, err := readSource(source)
	if err != nil {
		return "", extract.Options{}, err
	}

	markup, _ := cmd.Flags().GetBool("markup")
	cleanNames, _ := cmd.Flags().GetStringSlice("clean")
	overlap, _ := cmd.Flags().GetString("overlap")
	removeAmbiguous, _ := cmd.Flags().GetBool("remove-ambiguous")
	packs, _ := cmd.Flags().GetString("packs")

	steps, err := clean.Steps(cleanNames...)
	if err != nil {
		return "", extract.Options{}, err
	}

	opts := extract.Options{
		RemoveAmbiguous: removeAmbiguous,
		OverlapHandling: extract.OverlapPolicy(overlap),
		CleanSteps:      steps,
	}
	if packs != "" {
		registry, err := registryWithPacks(packs)
		if err != nil {
			return "", extract.Options{}, err
		}
		opts.Tokenizer = registry
	}

	text := string(data)
	if markup {
		opts.MarkupText = text
		text = ""
	}
	return text, opts, nil
}

// readSource reads the document from a file, or from stdin when the
// path is empty or "-".
func readSource(source string) ([]byte, error) {
	if source == "" || source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source file not found: %s", source)
		}
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return data, nil
}

// registryWithPacks builds a fresh registry and loads a pack file or
// directory into it, leaving the shared default registry untouched.
func registryWithPacks(path string) (*tokenize.Registry, error) {
	registry, err := tokenize.NewRegistry(reporterdb.Default())
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("packs path not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat packs path: %w", err)
	}
	if info.IsDir() {
		err = registry.LoadDirectory(path)
	} else {
		err = registry.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// resolvedGroup is the JSON shape of one resolved authority.
type resolvedGroup struct {
	Resource  int                 `json:"resource"`
	Authority citation.Citation   `json:"authority"`
	Citations []citation.Citation `json:"citations"`
}

// writeJSON writes v as indented JSON to the output file, or stdout.
func writeJSON(v interface{}, output string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize JSON: %w", err)
	}
	if output != "" {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("Written to: %s\n", output)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func printCitationTable(cites []citation.Citation) {
	if len(cites) == 0 {
		fmt.Println("No citations found.")
		return
	}

	fmt.Printf("%-4s %-12s %-12s %s\n", "#", "KIND", "SPAN", "CITATION")
	for i, c := range cites {
		span := fmt.Sprintf("%d-%d", c.Span.Start, c.Span.End)
		fmt.Printf("%-4d %-12s %-12s %s\n", i+1, c.Kind, span, describeCitation(c))
	}
	fmt.Printf("\n%d citations\n", len(cites))
}

func printResolutionTable(groups []resolvedGroup, total int) {
	if len(groups) == 0 {
		fmt.Println("No resolved citations.")
		return
	}

	grouped := 0
	for _, g := range groups {
		fmt.Printf("Resource #%d: %s\n", g.Resource, describeCitation(g.Authority))
		for _, c := range g.Citations {
			fmt.Printf("  %-12s %d-%d  %s\n", c.Kind, c.Span.Start, c.Span.End, describeCitation(c))
		}
		grouped += len(g.Citations)
		fmt.Println()
	}
	fmt.Printf("%d of %d citations resolved across %d authorities\n",
		grouped, total, len(groups))
}

func printExtractorTable(extractors []*tokenize.Extractor) {
	fmt.Printf("%-24s %-12s %-6s %s\n", "NAME", "KIND", "ORDER", "ANCHORS")
	for _, e := range extractors {
		fmt.Printf("%-24s %-12s %-6d %s\n", e.Name, e.Kind, e.Order, strings.Join(e.Anchors, ", "))
	}
	fmt.Printf("\n%d extractors\n", len(extractors))
}

// describeCitation renders the one-line human form of a citation from
// its recovered metadata.
func describeCitation(c citation.Citation) string {
	m := c.Metadata

	name := m.CaseName
	switch {
	case name != "":
	case m.Plaintiff != "" && m.Defendant != "":
		name = m.Plaintiff + " v. " + m.Defendant
	case m.Plaintiff != "":
		name = m.Plaintiff
	case m.Defendant != "":
		name = m.Defendant
	case m.Antecedent != "":
		name = m.Antecedent
	}

	var parts []string
	switch {
	case m.Journal != "":
		parts = append(parts, m.Volume, m.Journal, m.Page)
	case m.Section != "":
		source := m.Reporter
		if m.Title != "" {
			source = m.Title + " " + source
		}
		parts = append(parts, source, "§ "+m.Section)
	case m.Reporter != "":
		parts = append(parts, m.Volume, m.Reporter, m.Page)
	case m.OpinionFamily != "":
		parts = append(parts, m.OpinionFamily, "Op. Letter", m.OpinionNumber)
	case c.Kind == citation.KindID:
		parts = append(parts, "id.")
	case c.Kind == citation.KindSupra:
		parts = append(parts, "supra")
	}

	if m.PinCite != "" {
		parts = append(parts, "at "+m.PinCite)
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+")")
	}

	rest := strings.Join(compactStrings(parts), " ")
	switch {
	case name != "" && rest != "":
		return name + ", " + rest
	case name != "":
		return name
	case rest != "":
		return rest
	default:
		return c.RawText
	}
}

// compactStrings drops empty entries.
func compactStrings(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
