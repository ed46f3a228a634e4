package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/project"
)

func createDirectory(testInstance *testing.T, pathSegments ...string) string {
	testInstance.Helper()
	createdPath := filepath.Join(pathSegments...)
	require.NoError(testInstance, os.MkdirAll(createdPath, 0o755))
	return createdPath
}

func createFile(testInstance *testing.T, filePath string) {
	testInstance.Helper()
	require.NoError(testInstance, os.WriteFile(filePath, []byte{}, 0o644))
}

func TestFindRootPrefersEnclosingGitRepository(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	createDirectory(testInstance, repositoryRoot, ".git")
	nestedDirectory := createDirectory(testInstance, repositoryRoot, "pkg", "nested")
	createFile(testInstance, filepath.Join(nestedDirectory, "pyproject.toml"))

	resolvedRoot, resolveError := project.FindRoot(nestedDirectory)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, repositoryRoot, resolvedRoot)
}

func TestFindRootFallsBackToMarkerFiles(testInstance *testing.T) {
	testCases := []struct {
		name           string
		markerFileName string
	}{
		{name: "pyproject_marker", markerFileName: "pyproject.toml"},
		{name: "gomod_marker", markerFileName: "go.mod"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectRoot := testInstance.TempDir()
			createFile(testInstance, filepath.Join(projectRoot, testCase.markerFileName))
			nestedDirectory := createDirectory(testInstance, projectRoot, "src", "inner")

			resolvedRoot, resolveError := project.FindRoot(nestedDirectory)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, projectRoot, resolvedRoot)
		})
	}
}

func TestFindRootReportsMissingRoot(testInstance *testing.T) {
	isolatedDirectory := testInstance.TempDir()

	_, resolveError := project.FindRoot(isolatedDirectory)
	require.ErrorIs(testInstance, resolveError, project.ErrRootNotFound)
}
