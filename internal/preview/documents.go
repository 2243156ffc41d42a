package preview

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
	"github.com/open-cli-collective/tablecheck/pkg/md"
)

func (srv *Server) listDocuments(c *gin.Context) {
	docs, err := srv.store.List(c.Request.Context())
	if err != nil {
		srv.fail(c, err)
		return
	}

	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) {
	case gin.MIMEHTML:
		c.HTML(http.StatusOK, "index", gin.H{"Documents": docs})
	default:
		c.JSON(http.StatusOK, api.DocumentList{Documents: docs})
	}
}

func (srv *Server) viewDocument(c *gin.Context) {
	id, err := vault.CleanID(strings.TrimPrefix(c.Param("doc"), "/"))
	if err != nil {
		srv.fail(c, err)
		return
	}

	doc, _, err := md.Load(c.Request.Context(), srv.store, id, checkbox.WithLogger(srv.l))
	if err != nil {
		srv.fail(c, err)
		return
	}
	body, err := doc.HTML()
	if err != nil {
		srv.fail(c, err)
		return
	}

	title := doc.Title
	if title == "" {
		title = id
	}
	c.HTML(http.StatusOK, "view", gin.H{
		"Title":    title,
		"Document": id,
		// Rendered by goldmark without the unsafe option, so raw HTML in the
		// source has already been dropped.
		"Body": template.HTML(body),
	})
}

func (srv *Server) renderDocument(c *gin.Context) {
	id, err := vault.CleanID(c.Query("doc"))
	if err != nil {
		srv.fail(c, err)
		return
	}

	doc, controls, err := md.Load(c.Request.Context(), srv.store, id, checkbox.WithLogger(srv.l))
	if err != nil {
		srv.fail(c, err)
		return
	}
	body, err := doc.HTML()
	if err != nil {
		srv.fail(c, err)
		return
	}
	preview, err := md.Preview(doc.Root)
	if err != nil {
		srv.fail(c, err)
		return
	}

	resp := api.RenderResponse{
		Document: id,
		Title:    doc.Title,
		HTML:     body,
		Preview:  preview,
		Controls: make([]api.Control, 0, len(controls)),
	}
	for _, ctl := range controls {
		resp.Controls = append(resp.Controls, api.Control{
			Line:    ctl.Target.Line,
			Index:   ctl.Target.Index,
			Checked: ctl.Checked,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// fail maps err to an HTTP status and writes an api.ErrorResponse.
func (srv *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, vault.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, vault.ErrOutsideVault):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		srv.l.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	abort(c, status, err.Error())
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{StatusCode: status, Message: msg})
}
