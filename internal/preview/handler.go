package preview

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (srv *Server) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDocumentRoutes()
}

func (srv *Server) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.requestLogger())
}

func (srv *Server) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
}

func (srv *Server) registerDocumentRoutes() {
	srv.gin.SetHTMLTemplate(pageTemplate)

	srv.gin.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/docs")
	})
	srv.gin.GET("/docs", srv.listDocuments)
	srv.gin.GET("/view/*doc", srv.viewDocument)

	v1 := srv.gin.Group("/api")
	v1.GET("/render", srv.renderDocument)
	v1.POST("/toggle", srv.toggle)
}

func (srv *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		srv.l.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Handler returns the server's HTTP handler.
func (srv *Server) Handler() http.Handler {
	return srv.gin
}
