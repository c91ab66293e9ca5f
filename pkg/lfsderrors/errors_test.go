package lfsderrors_test

import (
	"errors"
	"testing"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndError(t *testing.T) {
	err := lfsderrors.New(lfsderrors.ErrIntegrityMismatch, "digest mismatch")
	assert.Equal(t, "[INTEGRITY_MISMATCH] digest mismatch", err.Error())
	assert.Equal(t, lfsderrors.ErrIntegrityMismatch, lfsderrors.Code(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, lfsderrors.Wrap(nil, lfsderrors.ErrBuildMake, "should be nil"))
}

func TestWrapUnwrap(t *testing.T) {
	base := errors.New("exit status 2")
	wrapped := lfsderrors.Wrapf(base, lfsderrors.ErrBuildMake, "make failed for %s", "hello")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "make failed for hello")
}

func TestIsMatchesByCode(t *testing.T) {
	a := lfsderrors.New(lfsderrors.ErrRemoveReverseDep, "b depends on a")
	var target error = lfsderrors.New(lfsderrors.ErrRemoveReverseDep, "")
	assert.True(t, errors.Is(a, target))
	assert.True(t, lfsderrors.Is(a, lfsderrors.ErrRemoveReverseDep))
	assert.False(t, lfsderrors.Is(a, lfsderrors.ErrApply))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"invalid input", lfsderrors.New(lfsderrors.ErrInvalidInput, "x"), 1},
		{"reverse dep", lfsderrors.New(lfsderrors.ErrRemoveReverseDep, "x"), 2},
		{"integrity", lfsderrors.New(lfsderrors.ErrIntegrityMismatch, "x"), 3},
		{"fetch patch", lfsderrors.New(lfsderrors.ErrFetchPatch, "x"), 4},
		{"configure", lfsderrors.New(lfsderrors.ErrBuildConfigure, "x"), 10},
		{"make", lfsderrors.New(lfsderrors.ErrBuildMake, "x"), 11},
		{"tests", lfsderrors.New(lfsderrors.ErrBuildTests, "x"), 12},
		{"install", lfsderrors.New(lfsderrors.ErrBuildInstall, "x"), 13},
		{"generic", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lfsderrors.ExitCode(tt.err))
		})
	}
}
