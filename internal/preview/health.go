package preview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/open-cli-collective/tablecheck/api"
)

func (srv *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status: "ok",
		Vault:  srv.vault,
	})
}
