package network

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baweed/shashki/game/obslog"
	"github.com/baweed/shashki/game/render"
)

type RouterOptions struct {
	// Templates is a glob for the page templates; skipped when nothing matches.
	Templates string
	StaticDir string
}

func NewRouter(hub *Hub, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	if opts.Templates != "" {
		if matches, _ := filepath.Glob(opts.Templates); len(matches) > 0 {
			r.LoadHTMLGlob(opts.Templates)
			r.GET("/", func(c *gin.Context) {
				c.HTML(http.StatusOK, "index.html", nil)
			})
		}
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/ws", func(c *gin.Context) { HandleWebSocket(c, hub) })

	api := r.Group("/api/games")
	api.POST("", func(c *gin.Context) {
		s, err := hub.Create()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, s.State())
	})

	game := api.Group("/:id")
	game.Use(loadSession(hub))
	game.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, session(c).State())
	})
	game.DELETE("", func(c *gin.Context) {
		if err := hub.Delete(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	for _, cmd := range []string{CmdSelect, CmdMove, CmdClick} {
		game.POST("/"+cmd, cellHandler(cmd))
	}
	game.POST("/reset", func(c *gin.Context) {
		st, _ := session(c).Apply(Command{Type: CmdReset})
		c.JSON(http.StatusOK, st)
	})
	game.GET("/board.svg", func(c *gin.Context) {
		st := session(c).State()
		c.Data(http.StatusOK, "image/svg+xml", render.SVG(st.Snapshot))
	})
	game.GET("/board.png", func(c *gin.Context) {
		size, err := strconv.Atoi(c.DefaultQuery("size", "512"))
		if err != nil || size < render.MinSize || size > render.MaxSize {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"type": "error", "message": "size must be an integer in [64,2048]"})
			return
		}
		st := session(c).State()
		img, err := render.PNG(c.Request.Context(), st.Snapshot, size)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
	})

	return r
}

const sessionKey = "session"

func loadSession(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := hub.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

func session(c *gin.Context) *GameSession {
	return c.MustGet(sessionKey).(*GameSession)
}

// cellHandler answers 200 with the current state whether or not the command
// was accepted; only a malformed body is an error.
func cellHandler(cmd string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"type": "error", "message": err.Error()})
			return
		}
		st, _ := session(c).Apply(Command{Type: cmd, Row: *req.Row, Col: *req.Col})
		c.JSON(http.StatusOK, st)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		obslog.L().Debug("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
