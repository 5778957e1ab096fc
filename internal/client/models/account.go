// Package models defines client-side data models used by the CropCare client.
package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/cryptox"
)

// Profile holds the attributes a user supplies at registration.
type Profile struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone,omitempty"`
	Location  string   `json:"location,omitempty"`
	FarmSize  string   `json:"farmSize,omitempty"`
	CropTypes []string `json:"cropTypes,omitempty"`
}

// Validate checks the fields registration cannot do without.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if strings.TrimSpace(p.Email) != p.Email {
		return fmt.Errorf("%w: email %q has surrounding spaces", common.ErrValidation, p.Email)
	}
	if !strings.Contains(p.Email, "@") {
		return fmt.Errorf("%w: email %q is malformed", common.ErrValidation, p.Email)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	return nil
}

// Account is the session-visible view of an account. It never carries
// credential material.
type Account struct {
	ID string `json:"id"`
	Profile
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy, so callers cannot mutate store state through
// the CropTypes slice.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.CropTypes = slices.Clone(a.CropTypes)
	return &c
}

// AccountRecord is the persisted form of an account.
type AccountRecord struct {
	Account
	Credential cryptox.Credential `json:"credential"`
}

// View strips the credential.
func (r *AccountRecord) View() *Account {
	return r.Account.Clone()
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
// Identity fields (id, email, createdAt) have no counterpart here, so they
// cannot be changed through a patch.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	Location  *string
	FarmSize  *string
	CropTypes *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Location == nil && p.FarmSize == nil && p.CropTypes == nil
}

// Validate rejects values registration would not accept either.
func (p ProfilePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	return nil
}

// Apply merges the patch into a (shallow merge; CropTypes is replaced as a whole).
func (p ProfilePatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.FarmSize != nil {
		a.FarmSize = *p.FarmSize
	}
	if p.CropTypes != nil {
		a.CropTypes = slices.Clone(*p.CropTypes)
	}
}

// Fields accepted by PatchFromStrings, keyed by their persisted names.
const (
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldLocation  = "location"
	FieldFarmSize  = "farmSize"
	FieldCropTypes = "cropTypes"
)

var immutableFields = map[string]struct{}{"id": {}, "email": {}, "createdAt": {}}

// PatchFromStrings builds a patch from "name=value" items. cropTypes takes a
// comma separated list. Identity fields yield common.ErrImmutableField and
// anything else unknown yields common.ErrUnknownField.
func PatchFromStrings(items []string) (ProfilePatch, error) {
	var p ProfilePatch
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			return ProfilePatch{}, fmt.Errorf("%w: %q must be name=value", common.ErrValidation, item)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if _, immutable := immutableFields[name]; immutable {
			return ProfilePatch{}, fmt.Errorf("%w: %s", common.ErrImmutableField, name)
		}

		switch name {
		case FieldName:
			p.Name = &value
		case FieldPhone:
			p.Phone = &value
		case FieldLocation:
			p.Location = &value
		case FieldFarmSize:
			p.FarmSize = &value
		case FieldCropTypes:
			crops := SplitList(value)
			p.CropTypes = &crops
		default:
			return ProfilePatch{}, fmt.Errorf("%w: %s", common.ErrUnknownField, name)
		}
	}
	return p, p.Validate()
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
