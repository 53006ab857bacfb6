package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"npcmind/internal/app/auth"
	"npcmind/internal/app/detect"
	"npcmind/internal/app/fairness"
	"npcmind/internal/app/interaction"
	"npcmind/internal/app/ports"
	"npcmind/internal/app/report"
	"npcmind/internal/app/task"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerAddressHeader = "X-Player-Address"
const playerKeyHeader = "X-Player-Key"

type Handler struct {
	RegisterUC    auth.RegisterUseCase
	AuthUC        auth.VerifyUseCase
	InteractionUC interaction.UseCase
	TaskUC        task.UseCase
	ReportUC      report.UseCase
	Fairness      *fairness.Runner
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	player := s.Group("/api/player")
	player.POST("/register", h.register)
	player.GET("/reputation", h.reputation)

	npc := s.Group("/api/npc")
	npc.POST("/init", h.initNPC)
	npc.POST("/decay", h.decay)
	npc.GET("/:id/state", h.npcState)
	npc.GET("/:id/influence", h.npcInfluence)
	npc.GET("/:id/moods", h.npcMoods)

	s.POST("/api/task", h.task)
	s.GET("/api/report", h.report)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/fairness", h.fairness)
}

type initNPCRequest struct {
	NPCID     string   `json:"npc_id"`
	Archetype string   `json:"archetype"`
	Backstory string   `json:"backstory,omitempty"`
	Quirks    []string `json:"quirks,omitempty"`
}

type decayRequest struct {
	NPCID string  `json:"npc_id"`
	Hours float64 `json:"hours"`
}

type taskRequest struct {
	Type      string         `json:"type"`
	NPCID     string         `json:"npc_id"`
	SessionID string         `json:"session_id,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) initNPC(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}

	var body initNPCRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	rec, err := h.InteractionUC.InitializeNPC(c, interaction.InitRequest{
		NPCID:     body.NPCID,
		Archetype: body.Archetype,
		Backstory: body.Backstory,
		Quirks:    body.Quirks,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, rec)
}

func (h Handler) task(c context.Context, ctx *app.RequestContext) {
	playerAddress, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body taskRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.TaskUC.Execute(c, task.Request{
		Type:          body.Type,
		Params:        body.Params,
		NPCID:         body.NPCID,
		PlayerAddress: playerAddress,
		SessionID:     body.SessionID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) decay(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}

	var body decayRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	state, err := h.InteractionUC.ApplyDecay(c, body.NPCID, body.Hours)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"npc_id": body.NPCID, "state": state})
}

func (h Handler) npcState(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}
	rec, err := h.InteractionUC.GetState(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, rec)
}

func (h Handler) npcInfluence(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}
	infl, err := h.InteractionUC.Influence(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, infl)
}

func (h Handler) npcMoods(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	moods, err := h.InteractionUC.MoodHistory(c, string(ctx.Param("id")), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"transitions": moods})
}

func (h Handler) reputation(c context.Context, ctx *app.RequestContext) {
	playerAddress, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	rep, err := h.InteractionUC.GetReputation(c, playerAddress)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, rep)
}

func (h Handler) report(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPlayer(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var from, to time.Time
	if v, err := strconv.ParseInt(string(ctx.Query("from")), 10, 64); err == nil && v > 0 {
		from = time.Unix(v, 0).UTC()
	}
	if v, err := strconv.ParseInt(string(ctx.Query("to")), 10, 64); err == nil && v > 0 {
		to = time.Unix(v, 0).UTC()
	}

	out, err := h.ReportUC.Generate(c, report.Request{From: from, To: to})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, out)
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

func (h Handler) fairness(_ context.Context, ctx *app.RequestContext) {
	if h.Fairness == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "fairness monitor not configured")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"metrics": h.Fairness.Latest()})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingPlayerAddressHeader = errors.New("missing x-player-address header")
var ErrMissingPlayerKeyHeader = errors.New("missing x-player-key header")
var ErrMissingPlayerCredentials = errors.New("missing player credentials")

func (h Handler) requireAuthenticatedPlayer(c context.Context, ctx *app.RequestContext) (string, error) {
	playerAddress := strings.TrimSpace(string(ctx.GetHeader(playerAddressHeader)))
	playerKey := strings.TrimSpace(string(ctx.GetHeader(playerKeyHeader)))
	if playerAddress == "" && playerKey == "" {
		return "", ErrMissingPlayerCredentials
	}
	if playerAddress == "" {
		return "", ErrMissingPlayerAddressHeader
	}
	if playerKey == "" {
		return "", ErrMissingPlayerKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		PlayerAddress: playerAddress,
		PlayerKey:     playerKey,
	}); err != nil {
		return "", err
	}
	return playerAddress, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_credentials", err.Error())
	case errors.Is(err, ErrMissingPlayerAddressHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_address", err.Error())
	case errors.Is(err, ErrMissingPlayerKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_player_credentials", err.Error())
	case errors.Is(err, interaction.ErrInvalidRequest),
		errors.Is(err, task.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, detect.ErrInvalidAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrUnknownEntity):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_entity", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ports.ErrUpstreamFailure):
		writeErrorBody(ctx, consts.StatusBadGateway, "upstream_failure", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
