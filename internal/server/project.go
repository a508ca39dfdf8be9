package server

import (
	"fmt"
	"strings"

	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	projectdomain "github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Postcode    *string `json:"postcode"`
	State       *string `json:"state"`
	ClimateZone *string `json:"climate_zone"`
	NCCVolume   *string `json:"ncc_volume"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
		Postcode:    req.Postcode,
		State:       req.State,
		ClimateZone: req.ClimateZone,
		NCCVolume:   req.NCCVolume,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccessMessage(c, gin.H{
		"project_id":   resp.ProjectID,
		"project_name": resp.ProjectName,
	}, "Project created successfully")
}

func (s *Server) GetProject(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.projectSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, resp)
}

func (s *Server) ListProjects(c *gin.Context) {
	resp, err := s.projectSvc.List(c.Request.Context(), projectdomain.ListProjectRequest{
		State:     c.Query("state"),
		NCCVolume: c.Query("ncc_volume"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, resp)
}

func (s *Server) GetProjectSummary(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	summary, err := s.reportSvc.ProjectSummary(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccess(c, summary)
}

func (s *Server) GetAuditLog(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	records, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListRecordsRequest{
		ProjectID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondSuccessMessage(c, records, fmt.Sprintf("Retrieved %d calculation records", len(records)))
}
