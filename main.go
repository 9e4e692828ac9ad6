package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/chaos-io/bgremover/segment"
	"github.com/chaos-io/bgremover/server"
	"github.com/chaos-io/bgremover/store"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	addr := envStr("LISTEN_ADDR", ":8080")
	mediaDir := envStr("MEDIA_DIR", "./media")
	dbPath := envStr("DB_PATH", "./bgremover.db")
	retentionDays := envInt("RETENTION_DAYS", 30)
	maxUploadEdge := envInt("MAX_UPLOAD_EDGE", 2048)

	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("create media dir")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer func() {
		_ = st.Close()
	}()

	engine := segment.New(segment.DefaultConfig())

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(server.Config{
		MediaDir:      mediaDir,
		MaxUploadEdge: maxUploadEdge,
	}, st, engine, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	// 每天清理超龄的上传与结果文件
	c := cron.New()
	retention := time.Duration(retentionDays) * 24 * time.Hour
	if _, err := c.AddFunc("@daily", func() {
		if err := srv.CleanupOlderThan(retention); err != nil {
			logger.Error().Err(err).Msg("cleanup failed")
		}
	}); err != nil {
		logger.Fatal().Err(err).Msg("schedule cleanup")
	}
	c.Start()
	defer c.Stop()

	if err := srv.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
