package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
)

// getFields is a test seam for GetFields.
var getFields = GetFields

var updatableFields = []string{
	models.FieldName, models.FieldPhone, models.FieldLocation, models.FieldFarmSize, models.FieldCropTypes,
}

// Update reads name=value lines and applies them to the current profile.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNoActiveSession
	}

	prompt := fmt.Sprintf("Enter changes as name=value (fields: %s)", strings.Join(updatableFields, ", "))
	lines, err := getFields(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	patch, err := models.PatchFromStrings(lines)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		printlnFn("Nothing to update.")
		return nil
	}

	acc, err := a.session.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}

	printlnFn("Profile updated.")
	printlnFn(formatAccount(acc))
	return nil
}
