// Package httpapi is the HTTP boundary of the league service. It resolves
// the caller identity from the X-Account-Id header, dispatches to the
// manager, and maps engine errors to coded JSON responses with messages from
// the catalog.
package httpapi

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/league-keeper/internal/gametypes"
	"github.com/park285/league-keeper/internal/league"
	"github.com/park285/league-keeper/internal/leaguestore"
	"github.com/park285/league-keeper/internal/msgcat"
	"github.com/park285/league-keeper/internal/obslog"
	"github.com/park285/league-keeper/pkg/leaguedto"
)

const headerAccountID = "X-Account-Id"

type Server struct {
	mgr *leaguestore.Manager
	cat *msgcat.Catalog
	srv *fasthttp.Server
}

func New(mgr *leaguestore.Manager, cat *msgcat.Catalog) *Server {
	s := &Server{mgr: mgr, cat: cat}
	s.srv = &fasthttp.Server{
		Handler:            s.handle,
		Name:               "league-keeper",
		MaxRequestBodySize: 1 << 20,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error {
	return s.srv.ListenAndServe(addr)
}

func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

// Handler exposes the request handler for serving on custom listeners.
func (s *Server) Handler() fasthttp.RequestHandler { return s.handle }

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	reqID := uuid.NewString()
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/game-types" && method == fasthttp.MethodGet:
		s.writeJSON(ctx, fasthttp.StatusOK, leaguedto.GameTypesResponse{GameTypes: s.mgr.GameTypes()})
	case path == "/leagues" && method == fasthttp.MethodPost:
		s.handleCreate(ctx, reqID)
	case path == "/leagues/add-game" && method == fasthttp.MethodPost:
		s.handleAddGame(ctx, reqID)
	case path == "/leagues/delete" && method == fasthttp.MethodPost:
		s.handleDelete(ctx, reqID)
	case path == "/leagues/meta" && method == fasthttp.MethodGet:
		s.handleMeta(ctx)
	case path == "/leagues/finished" && method == fasthttp.MethodGet:
		s.handleFinished(ctx)
	case path == "/leagues/matches" && method == fasthttp.MethodGet:
		s.handleMatches(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

// caller returns the opaque identity of the requesting party, or "" when the
// header is absent.
func caller(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek(headerAccountID))
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx, reqID string) {
	id := caller(ctx)
	if id == "" {
		s.writeError(ctx, fasthttp.StatusUnauthorized, "identity_required")
		return
	}
	var req leaguedto.CreateLeagueRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "bad_request")
		return
	}
	err := s.mgr.CreateLeague(ctx, req.Name, req.Players, req.Accounts, req.BestOf, gametypes.GameType(req.GameType), id)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	obslog.L().Info("http_create_league", zap.String("req_id", reqID), zap.String("league", req.Name), zap.String("caller", id))
	s.writeJSON(ctx, fasthttp.StatusCreated, leaguedto.StatusResponse{OK: true})
}

func (s *Server) handleAddGame(ctx *fasthttp.RequestCtx, reqID string) {
	id := caller(ctx)
	if id == "" {
		s.writeError(ctx, fasthttp.StatusUnauthorized, "identity_required")
		return
	}
	var req leaguedto.AddGameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "bad_request")
		return
	}
	err := s.mgr.AddGame(ctx, req.League, req.Players, req.FirstInTupleWon, req.GameData, id)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	obslog.L().Info("http_add_game", zap.String("req_id", reqID), zap.String("league", req.League), zap.String("caller", id))
	s.writeJSON(ctx, fasthttp.StatusOK, leaguedto.StatusResponse{OK: true})
}

func (s *Server) handleDelete(ctx *fasthttp.RequestCtx, reqID string) {
	id := caller(ctx)
	if id == "" {
		s.writeError(ctx, fasthttp.StatusUnauthorized, "identity_required")
		return
	}
	var req leaguedto.DeleteLeagueRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "bad_request")
		return
	}
	err := s.mgr.DeleteLeague(ctx, req.League, req.Force, id)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	obslog.L().Info("http_delete_league", zap.String("req_id", reqID), zap.String("league", req.League), zap.String("caller", id), zap.Bool("force", req.Force))
	s.writeJSON(ctx, fasthttp.StatusOK, leaguedto.StatusResponse{OK: true})
}

func (s *Server) handleMeta(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	meta, err := s.mgr.Meta(ctx, name)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, meta)
}

func (s *Server) handleFinished(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	finished, err := s.mgr.IsFinished(ctx, name)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, leaguedto.FinishedResponse{League: name, Finished: finished})
}

func (s *Server) handleMatches(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	matches, err := s.mgr.Matches(ctx, name)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, leaguedto.MatchesResponse{League: name, Matches: matches})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(raw)
}

// writeDomainError maps an engine or store error to its HTTP status and
// catalog code.
func (s *Server) writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	status, code := classify(err)
	if status == fasthttp.StatusInternalServerError {
		obslog.L().Error("http_internal_error", zap.Error(err))
	}
	s.writeError(ctx, status, code)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, code string) {
	msg, err := s.cat.Render("errors."+code, nil)
	if err != nil {
		msg = code
	}
	s.writeJSON(ctx, status, leaguedto.DomainError{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, league.ErrEvenBestOf):
		return fasthttp.StatusBadRequest, "even_best_of"
	case errors.Is(err, league.ErrTooFewPlayers):
		return fasthttp.StatusBadRequest, "too_few_players"
	case errors.Is(err, league.ErrTooManyPlayers):
		return fasthttp.StatusBadRequest, "too_many_players"
	case errors.Is(err, league.ErrShortName):
		return fasthttp.StatusBadRequest, "short_name"
	case errors.Is(err, league.ErrUnknownGameType):
		return fasthttp.StatusBadRequest, "unknown_game_type"
	case errors.Is(err, league.ErrSamePlayer):
		return fasthttp.StatusBadRequest, "same_player"
	case errors.Is(err, league.ErrPlayerNotFound):
		return fasthttp.StatusNotFound, "player_not_found"
	case errors.Is(err, league.ErrMatchFinished):
		return fasthttp.StatusConflict, "match_finished"
	case errors.Is(err, league.ErrInvalidPayload):
		return fasthttp.StatusBadRequest, "invalid_payload"
	case errors.Is(err, league.ErrNotAllowed):
		return fasthttp.StatusForbidden, "not_allowed"
	case errors.Is(err, league.ErrNotOwner):
		return fasthttp.StatusForbidden, "not_owner"
	case errors.Is(err, league.ErrNotFinished):
		return fasthttp.StatusConflict, "not_finished"
	case errors.Is(err, leaguestore.ErrLeagueExists):
		return fasthttp.StatusConflict, "league_exists"
	case errors.Is(err, leaguestore.ErrLeagueNotFound):
		return fasthttp.StatusNotFound, "league_not_found"
	case errors.Is(err, leaguestore.ErrInvalidCaller):
		return fasthttp.StatusUnauthorized, "identity_required"
	}
	return fasthttp.StatusInternalServerError, "internal"
}
