package reciperepo_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/reciperepo"
	"github.com/stretchr/testify/assert"
)

func TestSyncWithoutCheckoutOrRemoteErrors(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{RecipesDir: filepath.Join(root, "recipes")}

	err := reciperepo.Sync(context.Background(), cfg)
	assert.Error(t, err)
	assert.True(t, lfsderrors.Is(err, lfsderrors.ErrConfig))
}
