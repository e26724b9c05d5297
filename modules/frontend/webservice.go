package frontend

import (
	"net"
	"net/http"
	"time"

	"github.com/chrisdfennell/ad-tools/modules/aclview"
	"github.com/chrisdfennell/ad-tools/modules/directory"
	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type WebService struct {
	engine *gin.Engine
	Router *gin.RouterGroup
	API    *gin.RouterGroup
	ACLs   *aclview.Service
	srv    http.Server
}

func NewWebservice(acls *aclview.Service) *WebService {
	gin.SetMode(gin.ReleaseMode) // Has to happen first
	ws := &WebService{
		engine: gin.New(),
		ACLs:   acls,
	}
	ws.engine.Use(func(c *gin.Context) {
		start := time.Now() // Start timer
		path := c.Request.URL.Path
		// Process request
		c.Next()

		logger := ui.Info()
		if c.Writer.Status() >= 500 {
			logger = ui.Error()
		} else if c.Writer.Status() >= 400 {
			logger = ui.Warn()
		}
		logger.Msgf("%s %s (%v) %v, %v bytes", c.Request.Method, path, c.Writer.Status(), time.Since(start), c.Writer.Size())
	})
	ws.engine.Use(gin.Recovery()) // adds the default recovery middleware

	ws.Router = ws.engine.Group("")
	ws.API = ws.Router.Group("/api")
	ws.API.Use(func(ctx *gin.Context) {
		ctx.Next()

		ctx.Header(`Cache-Control`, `no-cache, no-store, no-transform, must-revalidate, private, max-age=0`)
		ctx.Header(`Pragma`, `no-cache`)
	})

	pprof.Register(ws.engine)
	ws.addAPIEndpoints()
	return ws
}

func (ws *WebService) addAPIEndpoints() {
	ws.API.GET("/acl", func(ctx *gin.Context) {
		dn := ctx.Query("dn")
		if dn == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "missing dn parameter"})
			return
		}
		result, err := ws.ACLs.GetObjectACL(dn)
		if err != nil {
			ctx.JSON(statusFor(err), gin.H{"status": "error", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "acl": result})
	})

	ws.API.GET("/delegations", func(ctx *gin.Context) {
		delegations, err := ws.ACLs.OUDelegations()
		if err != nil {
			ctx.JSON(statusFor(err), gin.H{"status": "error", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "delegations": delegations})
	})

	ws.API.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// statusFor distinguishes "no such object" from "object unreadable" from
// "directory unreachable" so operators can tell them apart.
func statusFor(err error) int {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, directory.ErrNoDescriptor):
		return http.StatusForbidden
	}
	return http.StatusBadGateway
}

func (ws *WebService) Start(bind string) error {
	ws.srv = http.Server{
		Addr:    bind,
		Handler: ws.engine,
	}

	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return errors.Wrapf(err, "binding webservice to %v", bind)
	}

	go func() {
		if err := ws.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			ui.Error().Msgf("Webservice failed: %v", err)
		}
	}()
	ui.Info().Msgf("Listening on http://%v", bind)
	return nil
}
