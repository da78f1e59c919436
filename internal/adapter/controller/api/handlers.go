package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// MaxImportBytes caps the size of an uploaded backup
const MaxImportBytes = 8 << 20

// HealthResponse is the body of /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Trials  int    `json:"trials"`
}

// CatalogResponse describes the domain with display colours
type CatalogResponse struct {
	Metals []string                     `json:"metals"`
	Organs []string                     `json:"organs"`
	Herbs  []catalog.Herb               `json:"herbs"`
	Colors map[string]map[string]string `json:"colors"`
}

// ImportResponse reports how many trials a backup carried
type ImportResponse struct {
	Imported int `json:"imported"`
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.uc.Stats()
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
		Trials:  st.Successes + st.Hints + st.Failures + st.Pending,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.uc.Stats())
}

func (s *Server) handleCatalog(c *gin.Context) {
	colors := make(map[string]map[string]string, len(combo.Dimensions))
	for _, d := range combo.Dimensions {
		colors[d.String()] = s.palette.Map(d)
	}
	c.JSON(http.StatusOK, CatalogResponse{
		Metals: s.catalog.Metals,
		Organs: s.catalog.Organs,
		Herbs:  s.catalog.Herbs,
		Colors: colors,
	})
}

func (s *Server) handleListTrials(c *gin.Context) {
	trials, err := s.uc.Trials(c.Query("kind"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trials)
}

func (s *Server) handleCommit(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	view, err := s.uc.Commit(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.mutated("commit", s.uc.Stats().Candidates)
	c.JSON(http.StatusCreated, view)
}

func (s *Server) handleResolve(c *gin.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	view, err := s.uc.Resolve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.mutated("resolve", s.uc.Stats().Candidates)
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleRemove(c *gin.Context) {
	view, err := s.uc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.mutated("remove", s.uc.Stats().Candidates)
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleCandidates(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, s.uc.Candidates(limit))
}

func (s *Server) handleRecommend(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := s.uc.Recommend(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleOptions(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := s.uc.Options(req, c.Param("dimension"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleMatrix(c *gin.Context) {
	m, err := s.uc.Matrix(c.Param("organ"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleUntested(c *gin.Context) {
	report, err := s.uc.Untested(c.Query("organ"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleSeasons(c *gin.Context) {
	groups, err := s.uc.Seasons(c.Query("herb"), c.Query("season"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (s *Server) handleExport(c *gin.Context) {
	data, err := s.uc.Export()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="potionlab-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleImport(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportBytes))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:     err.Error(),
			Code:      "too_large",
			RequestID: c.GetString("request_id"),
		})
		return
	}
	n, err := s.uc.Import(c.Request.Context(), data)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.mutated("import", s.uc.Stats().Candidates)
	c.JSON(http.StatusOK, ImportResponse{Imported: n})
}
