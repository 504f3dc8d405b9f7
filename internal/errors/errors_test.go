package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"tests failed", TestsFailed(3, 10), ExitTestsFailed},
		{"config", Config("bad plan"), ExitConfigError},
		{"launch failure", SubjectLaunchFailure("/nope", os.ErrNotExist), ExitLaunchFailure},
		{"wrapped launch failure", fmt.Errorf("run suite: %w", SubjectLaunchFailure("/nope", os.ErrNotExist)), ExitLaunchFailure},
		{"plain error", stderrors.New("boom"), ExitTestsFailed},
		{"interrupted", fmt.Errorf("run suite: %w", context.Canceled), ExitInterrupted},
		{"interrupted before launch", SubjectLaunchFailure("/bin/leoml", context.Canceled), ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestLaunchFailureIsDistinctFromTestsFailed(t *testing.T) {
	assert.NotEqual(t, GetExitCode(TestsFailed(1, 1)), GetExitCode(SubjectLaunchFailure("x", nil)))
	assert.NotEqual(t, ExitSuccess, GetExitCode(TestsFailed(1, 1)))
}

func TestHarnessError_Error(t *testing.T) {
	err := ArtifactNotFound(11, "ast/11.ast.txt")
	assert.Equal(t, "case 11: missing artifact: ast/11.ast.txt", err.Error())

	timeout := SubjectTimeout(3, 2*time.Second)
	assert.Equal(t, "case 03: subject timed out after 2s", timeout.Error())

	launch := SubjectLaunchFailure("/bin/none", os.ErrNotExist)
	assert.Contains(t, launch.Error(), "cannot launch subject /bin/none")
	assert.ErrorIs(t, launch, os.ErrNotExist)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("resolve: %w", ArtifactNotFound(1, "ml/01.ml.txt"))
	require.True(t, Is(err, KindArtifactNotFound))
	assert.False(t, Is(err, KindSubjectTimeout))
	assert.False(t, Is(stderrors.New("plain"), KindArtifactNotFound))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, "artifact-not-found", kind.String())
}
