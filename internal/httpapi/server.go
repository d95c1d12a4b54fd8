package httpapi

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsie/internal/ai"
	"newsie/internal/imaging"
	"newsie/internal/model"
	"newsie/internal/session"
)

//go:embed web/index.html
var indexHTML []byte

// generateTimeout bounds one web-triggered generation round trip, including
// the optional search calls.
const generateTimeout = 150 * time.Second

// Server exposes the newsletter flow over HTTP.
type Server struct {
	ctrl *session.Controller
}

func New(ctrl *session.Controller) *Server {
	return &Server{ctrl: ctrl}
}

// Routes builds the gin engine with all handlers registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/sessions", s.handleCreate)
	api.GET("/sessions/:id", s.handleGet)
	api.POST("/sessions/:id/generate", s.handleGenerate)
	api.PATCH("/sessions/:id/fields", s.handleEditFields)
	api.PATCH("/sessions/:id/brand", s.handleEditBrand)
	api.POST("/sessions/:id/images/:section", s.handleImage)
	api.GET("/sessions/:id/preview", s.handlePreview)
	api.GET("/sessions/:id/download/html", s.handleDownloadHTML)
	api.GET("/sessions/:id/download/text", s.handleDownloadText)
	api.POST("/sessions/:id/reset", s.handleReset)
	api.DELETE("/sessions/:id", s.handleDelete)

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreate(c *gin.Context) {
	sess, err := s.ctrl.Create(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleGet(c *gin.Context) {
	sess, err := s.ctrl.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type generateReq struct {
	APIKey string            `json:"api_key"`
	Input  model.FormInput   `json:"input"`
	Brand  model.BrandConfig `json:"brand"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()
	sess, err := s.ctrl.Generate(ctx, c.Param("id"), req.APIKey, req.Input, req.Brand)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type editFieldsReq struct {
	Fields map[string]string `json:"fields"`
}

func (s *Server) handleEditFields(c *gin.Context) {
	var req editFieldsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to edit"})
		return
	}
	var sess *session.Session
	for name, value := range req.Fields {
		label, ok := model.ParseLabel(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field: " + name})
			return
		}
		var err error
		sess, err = s.ctrl.EditField(c.Request.Context(), c.Param("id"), label, value)
		if err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleEditBrand(c *gin.Context) {
	var brand model.BrandConfig
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, err := s.ctrl.EditBrand(c.Request.Context(), c.Param("id"), brand)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// handleImage accepts either a multipart upload ("image") or a form/query
// "url" value for one section's image slot. Uploads become data URIs.
func (s *Server) handleImage(c *gin.Context) {
	section, err := strconv.Atoi(c.Param("section"))
	if err != nil || section < 0 || section >= model.NumSections {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section index"})
		return
	}
	var img model.ImageSource
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return
		}
		uri, err := imaging.DataURI(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		img = model.ImageSource{URI: uri, Alt: c.PostForm("alt")}
	} else if u := imaging.URLOrEmpty(c.PostForm("url")); u != "" {
		img = model.ImageSource{URI: u, Alt: c.PostForm("alt")}
	}
	// an empty img clears the slot back to the placeholder
	sess, err := s.ctrl.SetImage(c.Request.Context(), c.Param("id"), section, img)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handlePreview(c *gin.Context) {
	html, _, err := s.ctrl.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleDownloadHTML(c *gin.Context) {
	html, _, err := s.ctrl.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	name := "newsletter_" + time.Now().UTC().Format("20060102") + ".html"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleDownloadText(c *gin.Context) {
	_, text, err := s.ctrl.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	name := "newsletter_" + time.Now().UTC().Format("20060102") + ".txt"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (s *Server) handleReset(c *gin.Context) {
	sess, err := s.ctrl.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// writeError maps flow errors onto HTTP statuses. Auth failures get a
// distinct message so the operator knows to fix the credential rather than
// retry.
func writeError(c *gin.Context, err error) {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, ai.ErrAuthFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "the generation service rejected your API key; check the credential and try again"})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, session.ErrWrongPhase):
		c.JSON(http.StatusConflict, gin.H{"error": "generate a draft before editing"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
