package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cropcare/internal/client/client"
	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
)

// describeError turns a command error into a message for the user.
func describeError(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrNoActiveSession):
		return "Please log in first."
	case errors.Is(err, common.ErrSessionActive):
		return "You are already logged in. Log out first."
	case errors.Is(err, common.ErrStorageFailure):
		return "Local storage error: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "Recommendation service is unavailable, try again later."
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return "Recommendation failed: " + apiErr.Message
		}
		return fmt.Sprintf("Recommendation failed (status %d).", apiErr.Status)
	case errors.Is(err, common.ErrImmutableField),
		errors.Is(err, common.ErrUnknownField),
		errors.Is(err, common.ErrValidation):
		return "Invalid input: " + err.Error()
	}
	return "Error: " + err.Error()
}

func formatAccount(a *models.Account) string {
	var b strings.Builder
	row := func(k, v string) {
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "%-12s %s\n", k+":", v)
	}

	row("Name", a.Name)
	row("Email", a.Email)
	row("Phone", a.Phone)
	row("Location", a.Location)
	row("Farm size", a.FarmSize)
	row("Crops", strings.Join(a.CropTypes, ", "))
	row("Member since", a.CreatedAt.Local().Format("2006-01-02"))
	return strings.TrimRight(b.String(), "\n")
}

func formatRecommendation(r *models.Recommendation) string {
	var b strings.Builder

	p := r.Primary
	fmt.Fprintf(&b, "Recommended crop: %s (%.0f%% confidence)\n", p.Crop, p.Confidence*100)
	for _, kv := range [][2]string{
		{"Season", p.Details.Season},
		{"Duration", p.Details.Duration},
		{"Water", p.Details.WaterRequirement},
		{"Fertilizers", p.Details.Fertilizers},
		{"Market value", p.Details.MarketValue},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "  %-13s %s\n", kv[0]+":", kv[1])
		}
	}

	if len(r.Others) > 0 {
		b.WriteString("Alternatives:\n")
		for _, o := range r.Others {
			fmt.Fprintf(&b, "  - %s (%.0f%%)\n", o.Crop, o.Confidence*100)
		}
	}
	if r.Soil.Description != "" {
		fmt.Fprintf(&b, "Soil: %s\n", r.Soil.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
