// Package api exposes compilation, conversion and templates over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/engine"
	"github.com/ivlev/beat2scene/internal/templates"
	"github.com/ivlev/beat2scene/internal/wire"
)

type Server struct {
	Project *engine.Project
	IDs     templates.IDSource
	Log     *logrus.Entry
}

func NewServer(p *engine.Project, ids templates.IDSource) *Server {
	return &Server{Project: p, IDs: ids, Log: p.Log}
}

// Router wires the handlers onto a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.Log))

	v1 := router.Group("/v1")
	v1.POST("/compile", s.handleCompile)
	v1.POST("/layered/classic", s.handleLayeredToClassic)
	v1.POST("/classic/layered", s.handleClassicToLayered)
	v1.GET("/templates", s.handleTemplateNames)
	v1.POST("/templates/:name", s.handleTemplate)
	v1.GET("/schema", s.handleSchema)

	return router
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Info("request")
	}
}

// decodeBody reads a wire document, YAML when the content type says so.
func decodeBody(c *gin.Context) (wire.Collection, error) {
	data, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	format := wire.FormatJSON
	if strings.Contains(c.ContentType(), "yaml") {
		format = wire.FormatYAML
	}
	return wire.Decode(data, format)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeCollection responds with c as a JSON wire document.
func writeCollection(c *gin.Context, collection wire.Collection) {
	data, err := wire.Encode(collection, wire.FormatJSON)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleCompile(c *gin.Context) {
	collection, err := decodeBody(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	script, err := s.Project.Compile(collection)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, script)
}

func (s *Server) handleLayeredToClassic(c *gin.Context) {
	collection, err := decodeBody(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	if collection.Kind() != wire.KindLayered {
		badRequest(c, fmt.Errorf("expected a %s document, got %s", wire.KindLayered, collection.Kind()))
		return
	}

	beats, err := s.Project.Classic(collection)
	if err != nil {
		badRequest(c, err)
		return
	}

	writeCollection(c, &wire.BeatCollection{Beats: beats})
}

func (s *Server) handleClassicToLayered(c *gin.Context) {
	collection, err := decodeBody(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	classic, ok := collection.(*wire.BeatCollection)
	if !ok {
		badRequest(c, fmt.Errorf("expected a %s document, got %s", wire.KindBeat, collection.Kind()))
		return
	}

	out := &wire.LayeredCollection{Beats: make([]beat.LayeredBeat, 0, len(classic.Beats))}
	for i := range classic.Beats {
		b := &classic.Beats[i]
		if err := b.Validate(); err != nil {
			badRequest(c, err)
			return
		}
		out.Beats = append(out.Beats, beat.FromClassic(b))
	}

	writeCollection(c, out)
}

func (s *Server) handleTemplateNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": templates.Names()})
}

func (s *Server) handleTemplate(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(templates.Names(), name) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown template %q", name)})
		return
	}

	var params templates.Params
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, errors.New("invalid template parameters"))
		return
	}
	if params.ID == "" && s.IDs != nil {
		params.ID = s.IDs.NewID()
	}

	b, err := templates.Build(name, params)
	if err != nil {
		badRequest(c, err)
		return
	}

	writeCollection(c, &wire.BeatCollection{Beats: []beat.Beat{b}})
}

func (s *Server) handleSchema(c *gin.Context) {
	data, err := wire.Schema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/schema+json", data)
}
