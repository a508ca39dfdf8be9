package server

import (
	calculationdomain "github.com/carbonconstruct/ledger/internal/calculation/domain"
	"github.com/gin-gonic/gin"
)

type fuelCalculationRequest struct {
	ProjectID    string  `json:"project_id"`
	FuelType     string  `json:"fuel_type"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	State        string  `json:"state"`
	IsStationary *bool   `json:"is_stationary"`
	Year         int     `json:"year"`
}

func (s *Server) CalculateFuel(c *gin.Context) {
	var req fuelCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	result, err := s.calculationSvc.CalculateFuel(c.Request.Context(), calculationdomain.FuelRequest{
		ProjectID:    req.ProjectID,
		FuelType:     req.FuelType,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		State:        req.State,
		IsStationary: req.IsStationary,
		Year:         req.Year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, result)
}

type materialCalculationRequest struct {
	ProjectID    string  `json:"project_id"`
	MaterialType string  `json:"material_type"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	DataQuality  string  `json:"data_quality"`
}

func (s *Server) CalculateMaterial(c *gin.Context) {
	var req materialCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	result, err := s.calculationSvc.CalculateMaterial(c.Request.Context(), calculationdomain.MaterialRequest{
		ProjectID:    req.ProjectID,
		MaterialType: req.MaterialType,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		DataQuality:  req.DataQuality,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, result)
}

type wasteCalculationRequest struct {
	ProjectID string  `json:"project_id"`
	WasteType string  `json:"waste_type"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

func (s *Server) CalculateWaste(c *gin.Context) {
	var req wasteCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	result, err := s.calculationSvc.CalculateWaste(c.Request.Context(), calculationdomain.WasteRequest{
		ProjectID: req.ProjectID,
		WasteType: req.WasteType,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, result)
}
