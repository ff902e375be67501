package cli

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/mitchellh/go-homedir"
)

// expandPath resolves a leading ~ in path. Blank paths stay blank.
func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid path: " + trimmed).
			WithCause(err)
	}
	return expanded, nil
}

func expandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		expanded, err := expandPath(path)
		if err != nil {
			return nil, err
		}
		if expanded != "" {
			out = append(out, expanded)
		}
	}
	return out, nil
}
