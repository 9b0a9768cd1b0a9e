package project

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNoRoutesBlock is returned when config/routes.rb has no draw block to register a resource in.
var ErrNoRoutesBlock = errors.New("config/routes.rb has no routes draw block")

var (
	drawBlockRe = regexp.MustCompile(`\.draw\s+do\b`)
	// blockOpenRe matches lines that open a block closed by a later "end".
	blockOpenRe  = regexp.MustCompile(`(\bdo\s*(\|[^|]*\|)?\s*$)|(^(if|unless|while|until|case|def|class|module|begin)\b)`)
	blockCloseRe = regexp.MustCompile(`^end\b`)
)

// insertRoute adds line right before the end of the routes draw block.
// It reports false when the resource is already registered in the block.
func insertRoute(content, line string) (string, bool, error) {
	lines := strings.Split(content, "\n")

	drawIndex := -1
	for i, l := range lines {
		if drawBlockRe.MatchString(l) {
			drawIndex = i
			break
		}
	}
	if drawIndex == -1 {
		return "", false, ErrNoRoutesBlock
	}

	endIndex := closingEnd(lines, drawIndex)
	if endIndex == -1 {
		return "", false, ErrNoRoutesBlock
	}

	key := strings.TrimSpace(line)
	for _, l := range lines[drawIndex+1 : endIndex] {
		l = strings.TrimSpace(l)
		if l == key || strings.HasPrefix(l, key+",") || strings.HasPrefix(l, key+" ") {
			return content, false, nil
		}
	}

	newLines := append(lines[:endIndex:endIndex], append([]string{line}, lines[endIndex:]...)...)
	return strings.Join(newLines, "\n"), true, nil
}

// closingEnd returns the index of the "end" matching the block opened on
// lines[open], or -1 when the block is never closed.
func closingEnd(lines []string, open int) int {
	depth := 1
	for i := open + 1; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		if c := strings.Index(l, " #"); c >= 0 {
			l = strings.TrimSpace(l[:c])
		}

		switch {
		case blockCloseRe.MatchString(l):
			depth--
			if depth == 0 {
				return i
			}
		case blockOpenRe.MatchString(l):
			depth++
		}
	}
	return -1
}

// routesUpdate is a pending change to config/routes.rb.
type routesUpdate struct {
	path    string
	content string
	changed bool
}

// prepareRoute reads config/routes.rb and works out the registration of
// line without writing anything.
func (p *Project) prepareRoute(line string) (routesUpdate, error) {
	path := p.routesFile()

	content, err := os.ReadFile(path)
	if err != nil {
		return routesUpdate{}, fmt.Errorf("error reading routes: %w", err)
	}

	updated, changed, err := insertRoute(string(content), line)
	if err != nil {
		return routesUpdate{}, err
	}
	return routesUpdate{path: path, content: updated, changed: changed}, nil
}

// registerRoute writes a prepared routes change.
func (p *Project) registerRoute(u routesUpdate, pretend bool) error {
	if !u.changed || pretend {
		return nil
	}

	if err := os.WriteFile(u.path, []byte(u.content), 0644); err != nil {
		return fmt.Errorf("error writing routes: %w", err)
	}
	return nil
}
