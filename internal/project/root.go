// Package project locates the root directory of the project being checked.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	gitDirectoryNameConstant        = ".git"
	rootResolveFailureTemplateConst = "failed to resolve project root from %s: %w"
)

// markerFileNames are checked in order after the git directory walk fails.
var markerFileNames = []string{"pyproject.toml", "go.mod"}

// ErrRootNotFound reports that no enclosing project root could be located.
var ErrRootNotFound = errors.New("no project root found: expected an enclosing git repository or a directory containing a project marker file")

// FindRoot walks upward from the starting directory looking for an enclosing
// git repository, then repeats the walk looking for a known project marker
// file. The git repository wins when both exist at different depths.
func FindRoot(startDirectory string) (string, error) {
	absoluteStart, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(rootResolveFailureTemplateConst, startDirectory, absoluteError)
	}

	if gitRoot, found := walkUpFor(absoluteStart, func(candidateDirectory string) bool {
		return pathExists(filepath.Join(candidateDirectory, gitDirectoryNameConstant))
	}); found {
		return gitRoot, nil
	}

	if markerRoot, found := walkUpFor(absoluteStart, func(candidateDirectory string) bool {
		for _, markerFileName := range markerFileNames {
			if pathExists(filepath.Join(candidateDirectory, markerFileName)) {
				return true
			}
		}
		return false
	}); found {
		return markerRoot, nil
	}

	return "", ErrRootNotFound
}

func walkUpFor(startDirectory string, matches func(candidateDirectory string) bool) (string, bool) {
	currentDirectory := startDirectory
	for {
		if matches(currentDirectory) {
			return currentDirectory, true
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", false
		}
		currentDirectory = parentDirectory
	}
}

func pathExists(candidatePath string) bool {
	_, statError := os.Stat(candidatePath)
	return statError == nil
}
