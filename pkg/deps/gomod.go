package deps

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// modulePath reads the module declaration from root/go.mod.
// Returns "" if the file is missing or carries no module line.
func modulePath(root string) string {
	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if after, ok := strings.CutPrefix(line, "module "); ok {
			return strings.Trim(strings.TrimSpace(after), `"`)
		}
	}
	return ""
}
