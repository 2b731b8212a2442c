package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed pool.txt index.html
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// PoolList returns the embedded seed pool of sequence identifiers.
func PoolList() ([]string, error) {
	return readLines("pool.txt")
}

// IndexHTML returns the embedded game page.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
