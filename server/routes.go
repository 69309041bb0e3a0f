package server

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/planner"
	"github.com/kbukum/depbatch/project"
	"github.com/kbukum/depbatch/render"
	"github.com/kbukum/depbatch/server/endpoint"
	"github.com/kbukum/depbatch/server/middleware"
	"github.com/kbukum/depbatch/version"
)

// RegisterRoutes registers the operational endpoints and the plan API:
//
//	GET  /health
//	GET  /version
//	POST /v1/plan   ?project=a&project=b&output=json|yaml|mrconfig&exclude_roots=true
//	POST /v1/check  ?project=a
//
// Plan and check requests carry a project document in the body. The decoder
// is picked by ?format=yaml|hcl or the Content-Type header, YAML by default.
func (s *Server) RegisterRoutes(p *planner.Planner, checkers ...observability.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(version.Program, version.GetShortVersion(), checkers...))
	s.engine.GET("/version", endpoint.Version())

	h := &planHandler{planner: p}
	v1 := s.engine.Group("/v1", middleware.RateLimit(s.config.RateLimit))
	v1.POST("/plan", h.plan)
	v1.POST("/check", h.check)
}

type planHandler struct {
	planner *planner.Planner
}

// CheckResponse is the body of a /v1/check answer.
type CheckResponse struct {
	Ready    bool             `json:"ready"`
	Projects []planner.Status `json:"projects"`
}

func (h *planHandler) plan(c *gin.Context) {
	output, err := render.ParseFormat(c.DefaultQuery("output", string(render.FormatJSON)))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	var opts planner.Options
	if raw := c.Query("exclude_roots"); raw != "" {
		opts.ExcludeRoots, err = strconv.ParseBool(raw)
		if err != nil {
			RespondWithError(c, errors.InvalidInput("exclude_roots", "must be a boolean"))
			return
		}
	}

	catalog, err := catalogFromRequest(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), catalog, c.QueryArray("project"), opts)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, plan, output); err != nil {
		RespondWithError(c, err)
		return
	}
	c.Header("X-Plan-Id", plan.ID.String())
	c.Data(http.StatusOK, render.ContentType(output), buf.Bytes())
}

func (h *planHandler) check(c *gin.Context) {
	catalog, err := catalogFromRequest(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	statuses, err := h.planner.Check(c.Request.Context(), catalog, c.QueryArray("project"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	resp := CheckResponse{Ready: true, Projects: statuses}
	for _, s := range statuses {
		if !s.Ready() {
			resp.Ready = false
		}
	}
	RespondOK(c, resp)
}

// catalogFromRequest decodes and resolves the project document in the body.
// Uploaded documents cannot include other files.
func catalogFromRequest(c *gin.Context) (*project.Catalog, error) {
	format, err := requestFormat(c)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.MissingField("body")
	}

	doc, err := project.Parse(data, format, "request")
	if err != nil {
		return nil, err
	}
	if len(doc.Includes) > 0 {
		return nil, errors.InvalidInput("includes", "includes are not supported in uploaded documents")
	}
	return project.Resolve(doc)
}

func requestFormat(c *gin.Context) (project.Format, error) {
	if f := c.Query("format"); f != "" {
		return project.ParseFormat(f)
	}
	ct := c.GetHeader("Content-Type")
	if ct == "" {
		return project.FormatYAML, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.InvalidInput("Content-Type", err.Error())
	}
	switch {
	case strings.Contains(mediaType, "hcl"):
		return project.FormatHCL, nil
	case strings.Contains(mediaType, "yaml"), strings.Contains(mediaType, "yml"),
		mediaType == "text/plain", mediaType == "application/octet-stream":
		return project.FormatYAML, nil
	default:
		return "", errors.InvalidInput("Content-Type", "unsupported content type "+mediaType)
	}
}
