package rewriter

import (
	"fmt"
	"regexp"

	"github.com/tristendillon/importfix/core/classification"
)

const (
	currentDirPrefix = "./"
	parentDirPrefix  = "../"
)

var quoteStyles = []string{"'", `"`}

// rule rewrites one component's import clause in one quote style. The closing
// quote and semicolon are part of the pattern, so a name never matches inside
// a longer one.
type rule struct {
	name        classification.ComponentName
	folder      classification.CategoryFolder
	pattern     *regexp.Regexp
	replacement string
}

func compileRules(table *classification.Table) ([]rule, error) {
	entries := table.Entries()
	rules := make([]rule, 0, len(entries)*len(quoteStyles))

	for _, e := range entries {
		for _, q := range quoteStyles {
			expr := "from " + q + regexp.QuoteMeta(currentDirPrefix+string(e.Name)) + q + ";"
			pattern, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("failed to compile import pattern for %s: %w", e.Name, err)
			}
			rules = append(rules, rule{
				name:        e.Name,
				folder:      e.Folder,
				pattern:     pattern,
				replacement: "from " + q + parentDirPrefix + string(e.Folder) + "/" + string(e.Name) + q + ";",
			})
		}
	}

	return rules, nil
}

// Replacement counts the import clauses rewritten for one component.
type Replacement struct {
	Component classification.ComponentName
	Folder    classification.CategoryFolder
	Count     int
}

func applyRules(rules []rule, content string) (string, []Replacement) {
	var replacements []Replacement

	for _, r := range rules {
		n := len(r.pattern.FindAllStringIndex(content, -1))
		if n == 0 {
			continue
		}
		content = r.pattern.ReplaceAllLiteralString(content, r.replacement)

		if last := len(replacements) - 1; last >= 0 && replacements[last].Component == r.name {
			replacements[last].Count += n
			continue
		}
		replacements = append(replacements, Replacement{Component: r.name, Folder: r.folder, Count: n})
	}

	return content, replacements
}
