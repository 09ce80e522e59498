package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/pathfinder-rl/types"
)

const (
	maxEpisodesPerRequest = 100000
	maxRunsPerRequest     = 1000
)

// Server exposes a session over http
type Server struct {
	Addr string

	ctx     context.Context
	server  *http.Server
	engine  *gin.Engine
	session *Session
}

func NewServer(ctx context.Context, addr, mode string, session *Session) *Server {
	s := &Server{
		Addr:    addr,
		ctx:     ctx,
		session: session,
	}

	gin.SetMode(mode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/maze", s.handleMaze)
	r.POST("/train", s.handleTrain)
	r.GET("/solve", s.handleSolve)
	r.GET("/stats", s.handleStats)
	r.GET("/qtable", s.handleQTable)
	r.GET("/runs", s.handleRuns)
	r.POST("/reset", s.handleReset)
	s.engine = r
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background until the context is cancelled
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[APP] [ERROR] server stopped: %v", err)
		}
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
}

type mazeResponse struct {
	Height    int          `json:"height"`
	Width     int          `json:"width"`
	Start     types.Cell   `json:"start"`
	End       types.Cell   `json:"end"`
	Treasures []types.Cell `json:"treasures"`
	Hazards   []types.Cell `json:"hazards"`
	Render    string       `json:"render"`
}

func (s *Server) handleMaze(c *gin.Context) {
	env := s.session.Maze()
	c.JSON(http.StatusOK, mazeResponse{
		Height:    env.Height,
		Width:     env.Width,
		Start:     env.Start,
		End:       env.End,
		Treasures: env.Rewards(types.Treasure),
		Hazards:   env.Rewards(types.Hazard),
		Render:    s.session.Render(nil),
	})
}

func (s *Server) handleTrain(c *gin.Context) {
	episodes, err := strconv.Atoi(c.DefaultQuery("episodes", "1"))
	if err != nil || episodes <= 0 || episodes > maxEpisodesPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "episodes must be an integer between 1 and " + strconv.Itoa(maxEpisodesPerRequest)})
		return
	}
	summary, err := s.session.Train(c.Request.Context(), episodes)
	if err != nil {
		log.Printf("[APP] [ERROR] training failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type solveResponse struct {
	Path   *types.Path `json:"path"`
	Render string      `json:"render"`
}

func (s *Server) handleSolve(c *gin.Context) {
	path, err := s.session.Solve()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, solveResponse{
		Path:   path,
		Render: s.session.Render(path),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Stats())
}

func (s *Server) handleQTable(c *gin.Context) {
	c.String(http.StatusOK, s.session.Table())
}

func (s *Server) handleRuns(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n <= 0 || n > maxRunsPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be an integer between 1 and " + strconv.Itoa(maxRunsPerRequest)})
		return
	}
	runs, ok, err := s.session.Runs(c.Request.Context(), n)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run history is not configured"})
		return
	}
	if err != nil {
		log.Printf("[APP] [ERROR] reading run history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleReset(c *gin.Context) {
	s.session.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
