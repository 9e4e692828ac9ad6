// Package server 上传表单、结果页与图库：引擎外层的薄 HTTP 壳
package server

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chaos-io/bgremover/segment"
	"github.com/chaos-io/bgremover/store"
	"github.com/chaos-io/bgremover/util"
	nhttp "github.com/chaos-io/bgremover/util/http"
)

const (
	originalsDir = "originals"
	processedDir = "processed"

	defaultMethod = "smart"
	recentLimit   = 6
)

type Config struct {
	MediaDir      string
	MaxUploadEdge int // 上传图最长边超过该值先缩放再分割
}

type Server struct {
	cfg    Config
	store  *store.Store
	engine *segment.Engine
	log    zerolog.Logger
	router *gin.Engine
	cli    nhttp.IClient
}

func New(cfg Config, st *store.Store, engine *segment.Engine, log zerolog.Logger) (*Server, error) {
	for _, dir := range []string{originalsDir, processedDir} {
		if err := os.MkdirAll(filepath.Join(cfg.MediaDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir: %w", err)
		}
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		engine: engine,
		log:    log,
		cli:    nhttp.NewHTTPClient(),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())
	router.SetHTMLTemplate(pageTemplates())
	router.MaxMultipartMemory = 32 << 20

	router.GET("/", s.handleHome)
	router.POST("/", s.handleUpload)
	router.POST("/remote", s.handleRemote)
	router.GET("/result/:id", s.handleResult)
	router.GET("/gallery", s.handleGallery)
	router.Static("/media", cfg.MediaDir)

	s.router = router
	return s, nil
}

// Handler 供测试直接挂 httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("server listening")
	return s.router.Run(addr)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHome(c *gin.Context) {
	s.renderHome(c, http.StatusOK, "")
}

func (s *Server) renderHome(c *gin.Context, status int, errMsg string) {
	recent, err := s.store.Recent(recentLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("load recent records")
	}
	c.HTML(status, "home", gin.H{"Recent": recent, "Error": errMsg})
}

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		s.renderHome(c, http.StatusBadRequest, "please choose an image to upload")
		return
	}
	method := c.DefaultPostForm("method", defaultMethod)

	f, err := fileHeader.Open()
	if err != nil {
		s.renderHome(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		s.renderHome(c, http.StatusBadRequest, "failed to read upload")
		return
	}

	s.processSubmission(c, data, fileHeader.Filename, method)
}

// handleRemote 按 URL 抓取远端图片后走同一条处理链
func (s *Server) handleRemote(c *gin.Context) {
	url := c.PostForm("url")
	if url == "" {
		s.renderHome(c, http.StatusBadRequest, "please provide an image url")
		return
	}
	method := c.DefaultPostForm("method", defaultMethod)

	var data []byte
	err := s.cli.DoHTTPRequest(c.Request.Context(), &nhttp.RequestParam{
		Method:     http.MethodGet,
		RequestURI: url,
		Response:   &data,
		Timeout:    30 * time.Second,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("fetch remote image")
		s.renderHome(c, http.StatusBadGateway, "failed to fetch the remote image")
		return
	}

	s.processSubmission(c, data, path.Base(url), method)
}

// normalizeMethod 未识别的方法名统一落到 smart，方法名会进文件名，不能透传
func normalizeMethod(method string) string {
	switch method {
	case "white", "smart-v2", "edge", "color", "smart":
		return method
	}
	return defaultMethod
}

// processSubmission 解码、分割、落盘、入库，最后跳转结果页
func (s *Server) processSubmission(c *gin.Context, data []byte, filename, method string) {
	method = normalizeMethod(method)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// 不可解码是唯一直接回给用户的失败类别
		s.renderHome(c, http.StatusBadRequest, "uploaded file is not a readable image")
		return
	}
	img = util.ResizeWithinMax(img, s.cfg.MaxUploadEdge)

	id := store.NewID()

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	originalRel := path.Join(originalsDir, id+ext)
	if err := os.WriteFile(filepath.Join(s.cfg.MediaDir, originalRel), data, 0o644); err != nil {
		s.log.Error().Err(err).Msg("save original")
		s.renderHome(c, http.StatusInternalServerError, "failed to store upload")
		return
	}

	started := time.Now()
	result := s.engine.Process(img, method)

	processedRel := path.Join(processedDir, fmt.Sprintf("processed_%s_%s.png", id, method))
	if err := util.SavePNG(filepath.Join(s.cfg.MediaDir, processedRel), result); err != nil {
		s.log.Error().Err(err).Msg("save result")
		s.renderHome(c, http.StatusInternalServerError, "failed to store result")
		return
	}

	rec := &store.Image{
		ID:            id,
		OriginalPath:  originalRel,
		ProcessedPath: processedRel,
		Method:        method,
	}
	if err := s.store.Insert(rec); err != nil {
		s.log.Error().Err(err).Msg("insert record")
		s.renderHome(c, http.StatusInternalServerError, "failed to record result")
		return
	}

	s.log.Info().
		Str("id", id).
		Str("method", method).
		Dur("elapsed", time.Since(started)).
		Msg("image processed")

	c.Redirect(http.StatusFound, "/result/"+id)
}

func (s *Server) handleResult(c *gin.Context) {
	rec, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}
	c.HTML(http.StatusOK, "result", gin.H{"Image": rec})
}

func (s *Server) handleGallery(c *gin.Context) {
	images, err := s.store.All()
	if err != nil {
		s.log.Error().Err(err).Msg("load gallery")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "gallery", gin.H{"Images": images})
}

// CleanupOlderThan 删除超龄记录及其媒体文件，留给 cron 定期调用
func (s *Server) CleanupOlderThan(age time.Duration) error {
	records, err := s.store.DeleteOlderThan(time.Now().Add(-age))
	if err != nil {
		return err
	}
	for _, rec := range records {
		for _, rel := range []string{rec.OriginalPath, rec.ProcessedPath} {
			if rel == "" {
				continue
			}
			if err := os.Remove(filepath.Join(s.cfg.MediaDir, rel)); err != nil && !os.IsNotExist(err) {
				s.log.Warn().Err(err).Str("path", rel).Msg("remove media file")
			}
		}
	}
	if len(records) > 0 {
		s.log.Info().Int("count", len(records)).Msg("expired records cleaned")
	}
	return nil
}
