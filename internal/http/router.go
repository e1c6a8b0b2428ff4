package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/connectsphere/media-pipeline/internal/http/handler"
	"github.com/connectsphere/media-pipeline/internal/pipeline"
)

// NewRouter mounts one upload route per preset. The mount path doubles as the
// classifier's route context for context-sensitive roles.
func NewRouter(acceptor *pipeline.Acceptor, orchestrator *pipeline.Orchestrator, logger *slog.Logger) *gin.Engine {
	router := gin.Default()

	healthHandler := handler.NewHealthHandler()
	uploadHandler := handler.NewUploadHandler(acceptor, orchestrator, logger)

	router.GET("/healthz", healthHandler.Health)

	router.POST("/profile/picture", uploadHandler.Upload("profile"))
	router.POST("/profile/cover", uploadHandler.Upload("cover"))
	router.POST("/posts/media", uploadHandler.Upload("post"))
	router.POST("/stories/media", uploadHandler.Upload("story"))
	router.POST("/kyc/documents", uploadHandler.Upload("kyc"))
	router.POST("/payments/screenshot", uploadHandler.Upload("payment"))
	router.POST("/messages/attachment", uploadHandler.Upload("message"))

	return router
}
