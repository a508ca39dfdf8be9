package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ExportNGER(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	report, err := s.reportSvc.NGERExport(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccessMessage(c, report, "NGER-compliant report generated")
}

func (s *Server) ExportNCC(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	report, err := s.reportSvc.NCCExport(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccessMessage(c, report, "NCC WoL summary generated")
}

func (s *Server) GetMethodology(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	statement, err := s.reportSvc.Methodology(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccessMessage(c, statement, "Methodology statement generated")
}

func (s *Server) GetMethodologyPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	doc, err := s.reportSvc.MethodologyPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-methodology.pdf", id))
	c.Data(http.StatusOK, "application/pdf", doc)
}
