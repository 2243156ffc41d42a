// Package preview serves rendered vault documents over HTTP with
// interactive table checkboxes.
package preview

import (
	"context"
	"errors"
	"net"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// Store is the document store the server reads and toggles.
type Store interface {
	checkbox.Store
	List(ctx context.Context) ([]string, error)
}

// Server holds all dependencies for the preview server.
type Server struct {
	gin    *gin.Engine
	l      *zap.Logger
	listen string
	mode   string
	store  Store
	vault  string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger *zap.Logger
	Listen string
	Mode   string // gin mode; defaults to release
	Store  Store
	Vault  string // shown by the health endpoint
}

// New creates a new Server with all routes registered.
func New(cfg Config) (*Server, error) {
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	srv := &Server{
		gin:    gin.New(),
		l:      cfg.Logger,
		listen: cfg.Listen,
		mode:   cfg.Mode,
		store:  cfg.Store,
		vault:  cfg.Vault,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *Server) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.store == nil {
		return errors.New("store is required")
	}
	if srv.listen == "" {
		return errors.New("listen address is required")
	}
	if _, _, err := net.SplitHostPort(srv.listen); err != nil {
		return errors.New("invalid listen address: " + err.Error())
	}
	return nil
}

// Listen returns the address the server listens on.
func (srv *Server) Listen() string {
	return srv.listen
}

// Vault returns the vault path reported by the health endpoint.
func (srv *Server) Vault() string {
	return srv.vault
}
