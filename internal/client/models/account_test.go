package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/cryptox"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Profile
		wantErr bool
	}{
		{name: "ok", p: Profile{Email: "asha@x.com", Name: "Asha"}},
		{name: "no email", p: Profile{Name: "Asha"}, wantErr: true},
		{name: "bad email", p: Profile{Email: "asha", Name: "Asha"}, wantErr: true},
		{name: "no name", p: Profile{Email: "asha@x.com", Name: "  "}, wantErr: true},
		{name: "email with spaces", p: Profile{Email: " asha@x.com ", Name: "Asha"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProfilePatch_Apply_ShallowMerge(t *testing.T) {
	a := &Account{ID: "1", Profile: Profile{Email: "asha@x.com", Name: "Asha", Phone: "123", CropTypes: []string{"rice"}}}

	ProfilePatch{Location: ptr("Punjab")}.Apply(a)

	assert.Equal(t, "Punjab", a.Location)
	assert.Equal(t, "Asha", a.Name)
	assert.Equal(t, "123", a.Phone)
	assert.Equal(t, []string{"rice"}, a.CropTypes)
	assert.Equal(t, "asha@x.com", a.Email)
}

func TestProfilePatch_Apply_CropTypesCopied(t *testing.T) {
	crops := []string{"wheat", "maize"}
	a := &Account{}
	ProfilePatch{CropTypes: &crops}.Apply(a)

	crops[0] = "changed"
	assert.Equal(t, []string{"wheat", "maize"}, a.CropTypes)
}

func TestProfilePatch_IsEmpty(t *testing.T) {
	assert.True(t, ProfilePatch{}.IsEmpty())
	assert.False(t, ProfilePatch{Phone: ptr("")}.IsEmpty())
}

func TestPatchFromStrings(t *testing.T) {
	p, err := PatchFromStrings([]string{"name = Ravi", "location=Punjab", "cropTypes=rice, wheat,,"})
	require.NoError(t, err)

	want := ProfilePatch{Name: ptr("Ravi"), Location: ptr("Punjab"), CropTypes: ptr([]string{"rice", "wheat"})}
	assert.Empty(t, cmp.Diff(want, p))
}

func TestPatchFromStrings_Errors(t *testing.T) {
	_, err := PatchFromStrings([]string{"email=new@x.com"})
	require.ErrorIs(t, err, common.ErrImmutableField)

	_, err = PatchFromStrings([]string{"id=2"})
	require.ErrorIs(t, err, common.ErrImmutableField)

	_, err = PatchFromStrings([]string{"createdAt=2020-01-01"})
	require.ErrorIs(t, err, common.ErrImmutableField)

	_, err = PatchFromStrings([]string{"favouriteColour=green"})
	require.ErrorIs(t, err, common.ErrUnknownField)

	_, err = PatchFromStrings([]string{"novalue"})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = PatchFromStrings([]string{"name= "})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestProfilePatch_Validate(t *testing.T) {
	require.NoError(t, ProfilePatch{}.Validate())
	require.NoError(t, ProfilePatch{Name: ptr("Ravi"), Phone: ptr("")}.Validate())
	require.ErrorIs(t, ProfilePatch{Name: ptr("")}.Validate(), common.ErrValidation)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"rice", "wheat"}, SplitList(" rice, ,wheat,"))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestAccountRecord_JSONLayout(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := AccountRecord{
		Account: Account{
			ID:        "abc",
			Profile:   Profile{Email: "asha@x.com", Name: "Asha", FarmSize: "5 acres", CropTypes: []string{"rice"}},
			CreatedAt: created,
		},
		Credential: cryptox.Credential{Salt: []byte{1}, Verifier: []byte{2}},
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "abc", m["id"])
	assert.Equal(t, "asha@x.com", m["email"])
	assert.Equal(t, "5 acres", m["farmSize"])
	assert.Equal(t, "2024-05-01T10:00:00Z", m["createdAt"])
	assert.Contains(t, m, "credential")
	assert.NotContains(t, m, "phone")

	view, err := json.Marshal(rec.View())
	require.NoError(t, err)
	assert.NotContains(t, string(view), "credential")
}

func TestAccount_CloneIsDeep(t *testing.T) {
	a := &Account{ID: "1", Profile: Profile{CropTypes: []string{"rice"}}}
	c := a.Clone()
	c.CropTypes[0] = "wheat"
	assert.Equal(t, "rice", a.CropTypes[0])

	var nilAcc *Account
	assert.Nil(t, nilAcc.Clone())
}
