package main

import (
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// cliPackage holds the command tests, which are grouped per command.
const cliPackage = "cmd/wt"

// commandPrefixes maps test name prefixes in the CLI package to commands.
var commandPrefixes = map[string]string{
	"Root":                  "wt",
	"Switch":                "wt switch",
	"Create":                "wt create",
	"List":                  "wt list",
	"Delete":                "wt delete",
	"Sync":                  "wt sync",
	"Status":                "wt status",
	"Run":                   "wt run",
	"SplitRunArgs":          "wt run",
	"Clean":                 "wt clean",
	"Config":                "wt config",
	"Diff":                  "wt diff",
	"Doctor":                "wt doctor",
	"Init":                  "wt init",
	"ShellInit":             "wt shell-init",
	"Version":               "wt version",
	"Completion":            "wt completion",
	"CompleteWorktreeNames": "wt completion",
}

// Section is one heading of the rendered document.
type Section struct {
	Title string
	Tests []TestFunc
}

// RenderMarkdown writes the test documentation as markdown. The output only
// depends on the tests, so it can be diffed in CI.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	sections := groupSections(packages)

	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Area | Tests |\n")
	fmt.Fprintf(w, "|------|-------|\n")

	total := 0
	for _, s := range sections {
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", s.Title, toAnchor(s.Title), len(s.Tests))
		total += len(s.Tests)
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	for _, s := range sections {
		renderSection(w, s)
	}
	return nil
}

// groupSections puts CLI tests under their command and every other test
// under its package. Commands come first, then packages, each sorted.
func groupSections(packages []TestPackage) []Section {
	commands := make(map[string][]TestFunc)
	var pkgSections []Section

	for _, pkg := range packages {
		var tests []TestFunc
		for _, file := range pkg.Files {
			tests = append(tests, file.Tests...)
		}
		if pkg.Name != cliPackage {
			pkgSections = append(pkgSections, Section{Title: pkg.Name, Tests: tests})
			continue
		}
		for _, test := range tests {
			cmd := extractCommand(test.Name)
			commands[cmd] = append(commands[cmd], test)
		}
	}

	sections := make([]Section, 0, len(commands)+len(pkgSections))
	for _, cmd := range slices.Sorted(maps.Keys(commands)) {
		sections = append(sections, Section{Title: cmd, Tests: commands[cmd]})
	}
	return append(sections, pkgSections...)
}

func renderSection(w io.Writer, s Section) {
	fmt.Fprintf(w, "## %s\n\n", s.Title)
	fmt.Fprintf(w, "| Test | Description | Scenario | Expected |\n")
	fmt.Fprintf(w, "|------|-------------|----------|----------|\n")

	for _, test := range s.Tests {
		d := parseDoc(test.Doc, test.Name)
		name := test.Name
		if test.IsTable {
			name += " (table)"
		}
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n", name, cell(d.Description), cell(d.Scenario), cell(d.Expected))
	}
	fmt.Fprintf(w, "\n")
}

// extractCommand maps a CLI test name to the command it exercises.
// Examples:
//   - TestSync_LockHeld -> wt sync
//   - TestShellInit -> wt shell-init
//   - TestHelper_Unknown -> helper
func extractCommand(testName string) string {
	name := strings.TrimPrefix(testName, "Test")
	prefix, _, _ := strings.Cut(name, "_")
	if cmd, ok := commandPrefixes[prefix]; ok {
		return cmd
	}
	return strings.ToLower(prefix)
}

// testDoc is a doc comment split into its parts. Test comments follow the
// layout:
//
//	TestX tests <description>.
//
//	Scenario: <setup>
//	Expected: <outcome>
type testDoc struct {
	Description string
	Scenario    string
	Expected    string
}

// parseDoc splits a doc comment. Continuation lines are joined to the part
// they continue.
func parseDoc(doc, testName string) testDoc {
	var d testDoc
	var current *string

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			current = nil
		case strings.HasPrefix(line, "Scenario:"):
			d.Scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
			current = &d.Scenario
		case strings.HasPrefix(line, "Expected:"):
			d.Expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
			current = &d.Expected
		case current != nil:
			*current += " " + line
		case d.Description == "":
			line = strings.TrimPrefix(line, testName+" ")
			d.Description = strings.ToUpper(line[:1]) + line[1:]
			current = &d.Description
		}
	}
	return d
}

// cell escapes a table cell and marks empty ones.
func cell(s string) string {
	if s == "" {
		return "_No documentation_"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

var anchorRegex = regexp.MustCompile(`[^a-z0-9-]`)

// toAnchor converts a heading to a markdown anchor.
func toAnchor(title string) string {
	anchor := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return anchorRegex.ReplaceAllString(anchor, "")
}
