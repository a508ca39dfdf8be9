package server

import (
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	"github.com/gin-gonic/gin"
)

type materialInfo struct {
	MaterialType         string  `json:"material_type"`
	MaterialCategory     string  `json:"material_category"`
	Unit                 string  `json:"unit"`
	A1A3DefaultPerUnit   float64 `json:"a1a3_default_per_unit"`
	DataQuality          string  `json:"data_quality"`
	CarbonStoragePerUnit float64 `json:"carbon_storage_per_unit"`
}

func (s *Server) ListMaterials(c *gin.Context) {
	materials, err := s.factorSvc.ListMaterials(c.Request.Context(), factordomain.ListMaterialsRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	infos := make([]materialInfo, 0, len(materials))
	for _, m := range materials {
		infos = append(infos, materialInfo{
			MaterialType:         m.MaterialType,
			MaterialCategory:     m.MaterialCategory,
			Unit:                 m.Unit,
			A1A3DefaultPerUnit:   m.A1A3DefaultPerUnit,
			DataQuality:          m.DataQuality,
			CarbonStoragePerUnit: m.CarbonStoragePerUnit,
		})
	}

	respondSuccess(c, infos)
}

type fuelInfo struct {
	FuelType   string  `json:"fuel_type"`
	Category   string  `json:"category"`
	Region     string  `json:"region"`
	Unit       string  `json:"unit"`
	TotalCO2e  float64 `json:"total_co2e"`
	NGERMethod string  `json:"nger_method"`
}

func (s *Server) ListFuels(c *gin.Context) {
	fuels, err := s.factorSvc.ListFuels(c.Request.Context(), factordomain.ListFuelsRequest{
		Category: c.Query("category"),
		Region:   c.Query("state"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	infos := make([]fuelInfo, 0, len(fuels))
	for _, f := range fuels {
		infos = append(infos, fuelInfo{
			FuelType:   f.FuelType,
			Category:   f.Category,
			Region:     f.Region,
			Unit:       f.Unit,
			TotalCO2e:  f.TotalCO2e,
			NGERMethod: f.NGERMethod,
		})
	}

	respondSuccess(c, infos)
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.factorSvc.ListMaterialCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, categories)
}
