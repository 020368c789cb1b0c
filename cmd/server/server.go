package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
	"github.com/mrsobakin/battlesim/internal/sim"
)

const (
	ErrBadFormat        string = "bad_format"
	ErrBadConfiguration string = "bad_configuration"
	ErrBadLayout        string = "bad_layout"
	ErrPlacementFailed  string = "placement_failed"
	ErrTooManyTrials    string = "too_many_trials"
	ErrCancelled        string = "cancelled"
	ErrUnknown          string = "unknown"
)

// Largest board a request may ask for.
const MaxBoardArea = 1 << 20

type server struct {
	jobs      *semaphore.Weighted
	maxJobs   int64
	maxTrials int
	log       zerolog.Logger

	// Per worker fleet generation limit of a /simulate job.
	placementBudget time.Duration
}

func NewServer(jobs int64, maxTrials int, placementBudget time.Duration, log zerolog.Logger) *server {
	jobs = max(1, jobs)

	return &server{
		jobs:            semaphore.NewWeighted(jobs),
		maxJobs:         jobs,
		maxTrials:       maxTrials,
		log:             log,
		placementBudget: placementBudget,
	}
}

type boardParams struct {
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
	Counts []int  `json:"counts" binding:"required,len=4"`
	Seed   uint64 `json:"seed"`
}

func (p *boardParams) configuration() (field.Configuration, error) {
	conf := field.Configuration{W: p.Width, H: p.Height}
	copy(conf.Counts[:], p.Counts)

	if err := conf.IsValid(); err != nil {
		return conf, err
	}

	if conf.W > MaxBoardArea/conf.H {
		return conf, fmt.Errorf("board [%d %d] is larger than %d cells", conf.W, conf.H, MaxBoardArea)
	}

	return conf, nil
}

func (p *boardParams) rng(stream uint64) *rand.Rand {
	if p.Seed == 0 {
		p.Seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(p.Seed, stream))
}

func dumpShips(b *field.Board) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer can't fail.
	_ = field.DumpShips(&buf, b)
	return buf.String()
}

func (s *server) acquire(c *gin.Context, n int64) bool {
	if err := s.jobs.Acquire(c.Request.Context(), n); err != nil {
		replyError(c, 408, ErrCancelled, err)
		return false
	}
	return true
}

func (s *server) handleSimulate(c *gin.Context) {
	var params struct {
		boardParams
		Trials  int `json:"trials" binding:"required"`
		Workers int `json:"workers"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	conf, err := params.configuration()
	if err != nil {
		replyError(c, 400, ErrBadConfiguration, err)
		return
	}

	if params.Trials > s.maxTrials {
		c.JSON(400, map[string]any{
			"error":   ErrTooManyTrials,
			"details": fmt.Sprintf("at most %d trials per request", s.maxTrials),
		})
		return
	}

	workers := min(max(int64(params.Workers), 1), s.maxJobs)
	if !s.acquire(c, workers) {
		return
	}
	defer s.jobs.Release(workers)

	simulator := sim.Simulator{
		Conf:    conf,
		Trials:  params.Trials,
		Workers: int(workers),
		Seed:    params.Seed,
		Logger:  s.log,

		PlacementBudget: s.placementBudget,
	}

	report, err := simulator.Run(c.Request.Context())

	switch {
	case err == nil:
		c.JSON(200, report)
	case errors.Is(err, sim.ErrInvalidConfiguration):
		replyError(c, 400, ErrBadConfiguration, err)
	case errors.Is(err, sim.ErrNoCompletedTrials), errors.Is(err, sim.ErrPlacementBudget):
		replyError(c, 400, ErrPlacementFailed, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		replyError(c, 408, ErrCancelled, err)
	default:
		replyError(c, 500, ErrUnknown, err)
	}
}

func (s *server) handleLayout(c *gin.Context) {
	var params boardParams

	if !tryBindParams(c, &params) {
		return
	}

	conf, err := params.configuration()
	if err != nil {
		replyError(c, 400, ErrBadConfiguration, err)
		return
	}

	if !s.acquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	b := field.NewBoard(conf)
	layout := field.NewPlacementGrid(b)
	stats := game.NewRandomPlacer(params.rng(0)).Generate(layout)

	c.JSON(200, map[string]any{
		"seed":     params.Seed,
		"full":     layout.IsFull(),
		"attempts": stats.Attempts,
		"restarts": stats.Restarts,
		"ships":    dumpShips(b),
		"board":    b.String(),
	})
}

func (s *server) handlePlay(c *gin.Context) {
	var params struct {
		boardParams
		Layout string `json:"layout"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	conf, err := params.configuration()
	if err != nil {
		replyError(c, 400, ErrBadConfiguration, err)
		return
	}

	if !s.acquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	b := field.NewBoard(conf)
	layout := field.NewPlacementGrid(b)

	if params.Layout != "" {
		ships := field.ParseShips(strings.NewReader(params.Layout))
		if err := field.LoadShips(layout, ships); err != nil {
			replyError(c, 400, ErrBadLayout, err)
			return
		}
	} else {
		game.NewRandomPlacer(params.rng(0)).Generate(layout)
		if !layout.IsFull() {
			c.JSON(400, map[string]any{
				"error":   ErrPlacementFailed,
				"details": "could not place the fleet",
				"board":   b.String(),
			})
			return
		}
	}

	ships := dumpShips(b)

	target := field.NewShootingGrid(b)
	shots := game.NewHuntShooter(params.rng(1)).Shoot(target)

	c.JSON(200, map[string]any{
		"seed":   params.Seed,
		"shots":  shots,
		"layout": ships,
		"board":  b.String(),
	})
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/simulate", s.handleSimulate)
	e.POST("/layout", s.handleLayout)
	e.POST("/play", s.handlePlay)
}
