package models

import (
	"fmt"
	"math"
	"slices"

	"github.com/dmitrijs2005/cropcare/internal/common"
)

// SoilTypes lists the soil classes the recommendation model was trained on.
var SoilTypes = []string{
	"Sandy", "Loam", "Black", "Clay", "Red", "Silt", "Chalky", "Peaty",
	"Gravel", "Laterite", "Alluvial", "Coastal",
}

// SoilSample is the input of a crop recommendation.
type SoilSample struct {
	Nitrogen    float64 `json:"N"`
	Phosphorus  float64 `json:"P"`
	Potassium   float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	SoilType    string  `json:"soil_type"`
}

// Validate rejects samples the backend would refuse or that are physically
// meaningless.
func (s SoilSample) Validate() error {
	if !slices.Contains(SoilTypes, s.SoilType) {
		return fmt.Errorf("%w: unknown soil type %q", common.ErrValidation, s.SoilType)
	}
	for name, v := range s.numbers() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", common.ErrValidation, name)
		}
	}
	if s.PH < 0 || s.PH > 14 {
		return fmt.Errorf("%w: ph %.2f outside [0,14]", common.ErrValidation, s.PH)
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("%w: humidity %.2f outside [0,100]", common.ErrValidation, s.Humidity)
	}
	for name, v := range map[string]float64{"N": s.Nitrogen, "P": s.Phosphorus, "K": s.Potassium, "rainfall": s.Rainfall} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", common.ErrValidation, name)
		}
	}
	return nil
}

func (s SoilSample) numbers() map[string]float64 {
	return map[string]float64{
		"N": s.Nitrogen, "P": s.Phosphorus, "K": s.Potassium, "temperature": s.Temperature,
		"humidity": s.Humidity, "ph": s.PH, "rainfall": s.Rainfall,
	}
}

// CropDetails describes how a crop is grown.
type CropDetails struct {
	Season           string `json:"season"`
	Duration         string `json:"duration"`
	WaterRequirement string `json:"water_requirement"`
	SoilPreference   string `json:"soil_preference"`
	NutrientReq      string `json:"nutrient_req"`
	MarketValue      string `json:"market_value"`
	YieldPotential   string `json:"yield_potential"`
	Fertilizers      string `json:"fertilizers"`
	PestsDiseases    string `json:"pests_diseases"`
}

// CropRecommendation is one ranked crop.
type CropRecommendation struct {
	Crop       string      `json:"crop"`
	Confidence float64     `json:"confidence"`
	Details    CropDetails `json:"details"`
}

// SoilInfo describes the sampled soil type.
type SoilInfo struct {
	Description     string `json:"description"`
	Characteristics string `json:"characteristics"`
	SuitableCrops   string `json:"suitable_crops"`
}

// Recommendation is the backend answer for a SoilSample.
type Recommendation struct {
	Success bool                 `json:"success"`
	Primary CropRecommendation   `json:"primary_recommendation"`
	Others  []CropRecommendation `json:"other_recommendations"`
	Soil    SoilInfo             `json:"soil_info"`
}

// Normalize clamps every confidence into [0,1].
func (r *Recommendation) Normalize() {
	r.Primary.Confidence = clamp01(r.Primary.Confidence)
	for i := range r.Others {
		r.Others[i].Confidence = clamp01(r.Others[i].Confidence)
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
