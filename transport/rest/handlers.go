package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, playerMark string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
}

type moveEngine interface {
	Mark() string
	BestMove(cells []string, mark string) (int, error)
	Scores(cells []string, mark string) (map[int]int, error)
}

// BoardRequest - a bare board; null cells are empty.
type BoardRequest struct {
	Board []string `json:"board"`
	Mark  string   `json:"mark,omitempty"`
}

type EvaluateResponse struct {
	Winner  *string `json:"winner"`
	Outcome string  `json:"outcome"`
}

type MoveResponse struct {
	Cell  int    `json:"cell"`
	Error string `json:"error,omitempty"`
}

type AnalyzeResponse struct {
	Mark   string      `json:"mark"`
	Scores map[int]int `json:"scores"`
}

type CreateGameRequest struct {
	Mark string `json:"mark"`
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger *slog.Logger
	games  gameUseCase
	engine moveEngine
}

func NewHandlers(logger *slog.Logger, games gameUseCase, engine moveEngine) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		games:  games,
		engine: engine,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// Evaluate - reports the winner of a board, null while nobody has won.
func (that *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !that.decode(w, r, &req) {
		return
	}

	outcome := tictactoe.Evaluate(req.Board)

	resp := EvaluateResponse{Outcome: outcome.String()}
	if winner := outcome.Winner(); winner != entity.EmptyCell {
		resp.Winner = &winner
	}

	that.writeJSON(w, http.StatusOK, resp)
}

// Move - returns the best cell for the requested side, -1 with a reason when there is none.
func (that *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !that.decode(w, r, &req) {
		return
	}

	cell, err := that.engine.BestMove(req.Board, that.markOrDefault(req.Mark))
	if err != nil {
		that.logger.Warn("no move found", "method", "Move", "error", err)
		that.writeJSON(w, http.StatusOK, MoveResponse{Cell: tictactoe.NoMove, Error: err.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, MoveResponse{Cell: cell})
}

// Analyze - returns the minimax score of every free cell.
func (that *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !that.decode(w, r, &req) {
		return
	}

	mark := that.markOrDefault(req.Mark)

	scores, err := that.engine.Scores(req.Board, mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, AnalyzeResponse{Mark: mark, Scores: scores})
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength != 0 && !that.decode(w, r, &req) {
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "cell is required"})
		return
	}

	game, err := that.games.MakeTurn(r.Context(), r.PathValue("id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) markOrDefault(mark string) string {
	if mark == "" {
		return that.engine.Mark()
	}
	return mark
}

func (that *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
