package webserver

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/config"
)

// DBContextKey is the echo context key under which the request-scoped
// database handle is stored.
const DBContextKey = "gormdb"

var server *WebServer

// WebServer wraps the echo instance and the /api route group
type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	config *config.AppConfig
}

// jsonSerializer implements echo's JSONSerializer on top of json-iterator
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsoniter.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// Init builds the global web server instance and wires the database handle
// into every request context.
func Init(appConfig *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = appConfig.System.Debug
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBContextKey, db)
			return next(c)
		}
	})

	server = &WebServer{
		root:   e,
		api:    e.Group("/api"),
		config: appConfig,
	}
	return server
}

// ZapLogger logs each request through the global zap logger
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// Start runs the listener until the server is shut down
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Web.Host, s.config.Web.Port)
	zap.L().Info("starting web server", zap.String("listen", addr))
	return s.root.Start(addr)
}

// Echo exposes the underlying instance, used by handler tests
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
