package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/validate"
)

const (
	ApiPrefix   = "/api"
	SessionName = "vitrine_session"

	storeContextKey  = "catalog_store"
	configContextKey = "app_config"
)

type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	cfg  *config.AppConfig
}

// NewWebServer builds the echo instance with the shared middleware. store and
// cfg are exposed to handlers through GetStore and GetConfig.
func NewWebServer(cfg *config.AppConfig, store *catalog.Store) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	if cfg.System.Debug {
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	secret := cfg.Web.Secret
	if secret == "" {
		secret = random.String(48)
		zap.L().Warn("web.secret is empty, sessions will not survive a restart")
	}
	cookieStore := sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	e.Use(session.Middleware(cookieStore))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(storeContextKey, store)
			c.Set(configContextKey, cfg)
			return next(c)
		}
	})

	return &WebServer{root: e, api: e.Group(ApiPrefix), cfg: cfg}
}

// Echo exposes the underlying instance, mostly for tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.root.Shutdown(ctx)
}

func (s *WebServer) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *WebServer) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

func (s *WebServer) Static(prefix string, fsys http.FileSystem) {
	s.root.GET(prefix+"/*", echo.WrapHandler(http.StripPrefix(prefix, http.FileServer(fsys))))
}

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, m...)
}

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, m...)
}

func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.PUT(path, h, m...)
}

func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.DELETE(path, h, m...)
}

// GetStore returns the catalog injected by the server middleware.
func GetStore(c echo.Context) *catalog.Store {
	return c.Get(storeContextKey).(*catalog.Store)
}

// GetConfig returns the application config injected by the server middleware.
func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(configContextKey).(*config.AppConfig)
}
