package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"dungeoncore/internal/app/bestiary"
	"dungeoncore/internal/app/catalogdata"
	"dungeoncore/internal/app/clock"
	"dungeoncore/internal/app/dungeonstatus"
	"dungeoncore/internal/app/experience"
	"dungeoncore/internal/app/gamestate"
	"dungeoncore/internal/app/planner"
	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/reset"
	"dungeoncore/internal/app/species"
	"dungeoncore/internal/logs"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"
)

type Handler struct {
	GameStateUC  gamestate.UseCase
	SpeciesUC    species.UseCase
	ExperienceUC experience.UseCase
	BestiaryUC   bestiary.UseCase
	StatusUC     dungeonstatus.UseCase
	ResetUC      reset.UseCase
	ClockUC      clock.UseCase
	PlannerUC    planner.UseCase
	CatalogUC    catalogdata.UseCase
	Auth         Authenticator
	KPI          kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(accessLogMiddleware(), corsMiddleware())

	game := s.Group("/api/game", h.Auth.middleware())
	game.GET("/initialize", h.initialize)
	game.GET("/state", h.state)
	game.POST("/unlock-species", h.unlockSpecies)
	game.POST("/gain-experience", h.gainExperience)
	game.GET("/available-monsters", h.availableMonsters)
	game.POST("/status", h.updateStatus)
	game.POST("/reset", h.reset)
	game.POST("/advance-time", h.advanceTime)
	game.POST("/quote-placement", h.quotePlacement)
	game.POST("/quote-room", h.quoteRoom)

	data := s.Group("/api/data")
	data.GET("/monster-types", h.monsterTypes)
	data.GET("/game-constants", h.gameConstants)
	data.GET("/monster-traits", h.monsterTraits)
	data.GET("/floor-scaling", h.floorScaling)

	s.GET("/ops/kpi", h.kpi)
}

type unlockSpeciesRequest struct {
	SpeciesName string `json:"speciesName"`
}

type gainExperienceRequest struct {
	MonsterName string `json:"monsterName"`
	Experience  int    `json:"experience"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type advanceTimeRequest struct {
	Hours int `json:"hours"`
}

type quotePlacementRequest struct {
	FloorNumber      int      `json:"floorNumber"`
	RoomPosition     int      `json:"roomPosition"`
	MonsterType      string   `json:"monsterType"`
	IsBossRoom       bool     `json:"isBossRoom"`
	ExistingMonsters []string `json:"existingMonsters"`
}

type quoteRoomRequest struct {
	TotalRooms int    `json:"totalRooms"`
	RoomType   string `json:"roomType"`
}

func (h Handler) initialize(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GameStateUC.Execute(c, gamestate.Request{SessionID: sessionID(ctx), CreateIfMissing: true})
	writeResult(ctx, resp, err)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GameStateUC.Execute(c, gamestate.Request{SessionID: sessionID(ctx)})
	writeResult(ctx, resp, err)
}

func (h Handler) unlockSpecies(c context.Context, ctx *app.RequestContext) {
	var body unlockSpeciesRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.SpeciesUC.Execute(c, species.Request{SessionID: sessionID(ctx), SpeciesName: body.SpeciesName})
	writeResult(ctx, resp, err)
}

func (h Handler) gainExperience(c context.Context, ctx *app.RequestContext) {
	var body gainExperienceRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.ExperienceUC.Execute(c, experience.Request{
		SessionID:   sessionID(ctx),
		MonsterName: body.MonsterName,
		Experience:  body.Experience,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) availableMonsters(c context.Context, ctx *app.RequestContext) {
	resp, err := h.BestiaryUC.Execute(c, bestiary.Request{SessionID: sessionID(ctx)})
	writeResult(ctx, resp, err)
}

func (h Handler) updateStatus(c context.Context, ctx *app.RequestContext) {
	var body updateStatusRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.StatusUC.Execute(c, dungeonstatus.Request{SessionID: sessionID(ctx), Status: body.Status})
	writeResult(ctx, resp, err)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ResetUC.Execute(c, reset.Request{SessionID: sessionID(ctx)})
	writeResult(ctx, resp, err)
}

func (h Handler) advanceTime(c context.Context, ctx *app.RequestContext) {
	var body advanceTimeRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.ClockUC.Execute(c, clock.Request{SessionID: sessionID(ctx), Hours: body.Hours})
	writeResult(ctx, resp, err)
}

func (h Handler) quotePlacement(c context.Context, ctx *app.RequestContext) {
	var body quotePlacementRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.PlannerUC.QuotePlacement(c, planner.PlacementRequest{
		SessionID:        sessionID(ctx),
		FloorNumber:      body.FloorNumber,
		RoomPosition:     body.RoomPosition,
		MonsterType:      body.MonsterType,
		IsBossRoom:       body.IsBossRoom,
		ExistingMonsters: body.ExistingMonsters,
	})
	writeResult(ctx, resp, err)
}

func (h Handler) quoteRoom(c context.Context, ctx *app.RequestContext) {
	var body quoteRoomRequest
	if !decodeBody(ctx, &body) {
		return
	}
	resp, err := h.PlannerUC.QuoteRoom(c, planner.RoomRequest{TotalRooms: body.TotalRooms, RoomType: body.RoomType})
	writeResult(ctx, resp, err)
}

func (h Handler) monsterTypes(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.MonsterTypes(c)
	writeResult(ctx, resp, err)
}

func (h Handler) gameConstants(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.GameConstants(c)
	writeResult(ctx, resp, err)
}

func (h Handler) monsterTraits(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.MonsterTraits(c)
	writeResult(ctx, resp, err)
}

const defaultScalingFloors = 10

func (h Handler) floorScaling(c context.Context, ctx *app.RequestContext) {
	floors := defaultScalingFloors
	if raw := ctx.Query("floors"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "floors must be an integer")
			return
		}
		floors = n
	}
	resp, err := h.CatalogUC.FloorScaling(c, floors)
	writeResult(ctx, resp, err)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func decodeBody(ctx *app.RequestContext, out any) bool {
	if err := decodeJSON(ctx, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	return true
}

// writeResult sends business rejections with 200, like successes; only
// infrastructure and request-shape errors change the status code.
func writeResult(ctx *app.RequestContext, resp any, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, gamestate.ErrInvalidRequest),
		errors.Is(err, species.ErrInvalidRequest),
		errors.Is(err, experience.ErrInvalidRequest),
		errors.Is(err, bestiary.ErrInvalidRequest),
		errors.Is(err, dungeonstatus.ErrInvalidRequest),
		errors.Is(err, reset.ErrInvalidRequest),
		errors.Is(err, clock.ErrInvalidRequest),
		errors.Is(err, planner.ErrInvalidRequest),
		errors.Is(err, catalogdata.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		logs.Warn("command conflict", zap.String("path", string(ctx.Path())), zap.Error(err))
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		logs.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
