package internal

import (
	"fmt"
	"os"
	"path"
	"strings"
)

func isExecutable(info os.FileInfo) bool {
	return !info.IsDir() && info.Mode().Perm()&0o111 != 0
}

// Which resolves an executable to an absolute path by probing PATH components,
// requiring the execute bit to be set.
func Which(exec string) (string, error) {
	if strings.HasPrefix(exec, "/") {
		info, err := os.Stat(exec)
		if err != nil {
			return "", err
		}
		if !isExecutable(info) {
			return "", fmt.Errorf("%s exists but is not executable", exec)
		}
		return exec, nil
	}

	paths := os.Getenv("PATH")
	for _, pathComp := range strings.Split(paths, ":") {
		candidate := path.Join(pathComp, exec)
		info, err := os.Stat(candidate)
		if err == nil && isExecutable(info) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to find absolute path for %s", exec)
}
