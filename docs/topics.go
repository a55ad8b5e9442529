// Package docs holds the btcf documentation topics.
//
// Topics are markdown files indexed by readme.md, one "* name: summary"
// line per topic. Their "bash setup", "bash run", "bash check" and
// "console check" code blocks are executed by the package tests against the
// btcf binary.
package docs

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var files embed.FS

// Readme is the name of the index topic.
const Readme = "readme"

// Topic is an entry of the readme.md index.
type Topic struct {
	Name    string
	Summary string
}

var indexLine = regexp.MustCompile(`^\*\s+([a-z0-9-]+):\s*(.+)$`)

// Index returns the topics listed in readme.md, in their listed order.
func Index() ([]Topic, error) {
	b, err := files.ReadFile(Readme + ".md")
	if err != nil {
		return nil, err
	}
	var res []Topic
	for line := range strings.Lines(string(b)) {
		if m := indexLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			res = append(res, Topic{Name: m[1], Summary: m[2]})
		}
	}
	return res, nil
}

// Names returns the indexed topic names, in index order.
func Names() []string {
	index, _ := Index()
	names := make([]string, len(index))
	for i, t := range index {
		names[i] = t.Name
	}
	return names
}

// Read returns the markdown of one topic.
func Read(name string) (string, error) {
	b, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, see 'btcf topic' for the list", name)
	}
	return string(b), nil
}

// Join concatenates topics. "*" stands for every indexed topic.
func Join(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = Names()
		}
		for _, n := range expanded {
			content, err := Read(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
