package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFields(t *testing.T, lines ...string) {
	t.Helper()
	orig := getFields
	getFields = func(*bufio.Reader, string, io.Writer) ([]string, error) { return lines, nil }
	t.Cleanup(func() { getFields = orig })
}

func TestUpdate_AppliesPatch(t *testing.T) {
	out := captureOutput(t)
	f := &fakeSession{current: &models.Account{ID: "1", Profile: models.Profile{Email: "asha@x.com", Name: "Asha"}}}
	a := newTestApp(f, &fakeRecommender{})

	stubFields(t, "location=Punjab", "cropTypes=rice, maize")
	require.NoError(t, a.Update(context.Background()))

	assert.Equal(t, "Punjab", f.current.Location)
	assert.Equal(t, []string{"rice", "maize"}, f.current.CropTypes)
	assert.Equal(t, "Asha", f.current.Name)
	assert.Contains(t, *out, "Profile updated.")
}

func TestUpdate_RejectsIdentityFields(t *testing.T) {
	f := &fakeSession{current: &models.Account{ID: "1", Profile: models.Profile{Email: "asha@x.com"}}}
	a := newTestApp(f, &fakeRecommender{})

	stubFields(t, "email=new@x.com")
	require.ErrorIs(t, a.Update(context.Background()), common.ErrImmutableField)
	assert.Equal(t, "asha@x.com", f.current.Email)
	assert.True(t, f.lastPatch.IsEmpty())
}

func TestUpdate_EmptyInput(t *testing.T) {
	out := captureOutput(t)
	f := &fakeSession{current: &models.Account{ID: "1"}}
	a := newTestApp(f, &fakeRecommender{})

	stubFields(t)
	require.NoError(t, a.Update(context.Background()))
	assert.Contains(t, *out, "Nothing to update.")
}

func TestUpdate_RequiresLogin(t *testing.T) {
	a := newTestApp(&fakeSession{}, &fakeRecommender{})

	require.ErrorIs(t, a.Update(context.Background()), common.ErrNoActiveSession)
}
