// Package serve previews the generated site over HTTP, optionally
// rebuilding it whenever the catalog changes.
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/pipeline"
)

const shutdownTimeout = 5 * time.Second

// NewRouter serves the files under root. Directories resolve to their
// index.html. GET /healthz reports liveness; anything but GET and HEAD on
// a file path is rejected.
func NewRouter(root string, log *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "root": root})
	})

	files := http.FileServer(http.Dir(root))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}
		c.Header("Cache-Control", "no-store")
		files.ServeHTTP(c.Writer, c.Request)
	})
	return r
}

func requestLog(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(log.Verbose(), "%s %s %d (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

// Run builds the site into cfg.OutputDir and serves it on cfg.ServeAddr
// until ctx is done. With cfg.Watch the build is repeated after every
// catalog change while the server keeps running.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	build := *cfg
	build.DryRun = false

	if !build.Watch {
		if _, err := pipeline.Run(ctx, &build, log); err != nil {
			return err
		}
	}
	if !log.Verbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	ln, err := net.Listen("tcp", build.ServeAddr)
	if err != nil {
		return err
	}
	return serve(ctx, ln, &build, log)
}

// serve runs the HTTP server on ln, and the rebuild watcher when
// cfg.Watch is set, until ctx is done or either of them fails.
func serve(ctx context.Context, ln net.Listener, cfg *config.Config, log *logging.Logger) error {
	srv := &http.Server{
		Handler:           NewRouter(cfg.OutputDir, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if cfg.Watch {
		g.Go(func() error { return pipeline.Watch(gctx, cfg, log) })
	}

	log.Success("Preview at http://%s/ (Ctrl-C to stop)", ln.Addr())
	err := g.Wait()
	log.Info("Preview server stopped")
	return err
}
