package formatters

import (
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const isortFormatterNameConstant = "isort"

var (
	isortDefaultExecutableTokens = []string{"isort"}
	isortCheckArguments          = []string{"--check-only"}
)

// IsortFormatter wraps the isort import sorter for Python sources.
type IsortFormatter struct {
	toolFormatter
}

// NewIsortFormatter constructs the isort formatter around the provided executor.
func NewIsortFormatter(executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (*IsortFormatter, error) {
	baseFormatter, constructionError := newToolFormatter(isortFormatterNameConstant, isortDefaultExecutableTokens, isortCheckArguments, pythonSupportedExtensions, executor, override, timeout)
	if constructionError != nil {
		return nil, constructionError
	}
	return &IsortFormatter{toolFormatter: baseFormatter}, nil
}
