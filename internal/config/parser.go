package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseReferenceFile reads and validates a reference document from disk.
func ParseReferenceFile(path string) (tokens.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tokens.Reference{}, apperrors.NewParseError(path, 0, err)
	}
	return ParseReference(path, data)
}

// ParseDefinitionsFile reads and validates a definitions document from disk.
func ParseDefinitionsFile(path string) (tokens.Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return ParseDefinitions(path, data)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
