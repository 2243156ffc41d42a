package preview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// toggle applies a checkbox change posted by a rendered page. Skipped
// results are reported with 200; the page keeps the state the user chose.
func (srv *Server) toggle(c *gin.Context) {
	var req api.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid toggle request: "+err.Error())
		return
	}
	if req.Line < 0 || req.Index < 0 {
		abort(c, http.StatusBadRequest, "invalid toggle request: line and index must not be negative")
		return
	}

	id, err := vault.CleanID(req.Document)
	if err != nil {
		srv.fail(c, err)
		return
	}
	target := req.Target()
	target.Document = id

	result, err := checkbox.ApplyToggle(c.Request.Context(), srv.store, target, req.Checked, checkbox.WithLogger(srv.l))
	if err != nil {
		srv.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ToggleResponse{Result: result, Checked: req.Checked})
}
