package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/render"
)

type gameSession interface {
	State() *entity.GameState
	NewGame(ctx context.Context) *entity.GameState
	MakeMove(ctx context.Context, column int) (connectfour.MoveResult, *entity.GameState, error)
	Undo(ctx context.Context) (*entity.GameState, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (*entity.GameState, error)
	DeleteSaved(ctx context.Context) error
}

// gameView is the full authoritative state sent after every operation.
type gameView struct {
	Board         entity.Board            `json:"board"`
	CurrentPlayer entity.Cell             `json:"currentPlayer"`
	GameOver      bool                    `json:"gameOver"`
	Winner        *entity.Cell            `json:"winner"`
	Status        entity.Status           `json:"status"`
	CanUndo       bool                    `json:"canUndo"`
	Text          string                  `json:"text"`
	Result        *connectfour.MoveResult `json:"result,omitempty"`
	Message       string                  `json:"message,omitempty"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type gameHandler struct {
	logger  *slog.Logger
	session gameSession
}

func newGameHandler(logger *slog.Logger, session gameSession) *gameHandler {
	return &gameHandler{
		logger:  logger.With("handler", "game"),
		session: session,
	}
}

func newGameView(state *entity.GameState) gameView {
	view := gameView{
		Board:         state.Board,
		CurrentPlayer: state.CurrentPlayer,
		GameOver:      state.GameOver,
		Status:        state.Status(),
		CanUndo:       state.CanUndo(),
		Text:          render.Game(state),
	}

	if state.Winner.IsPlayer() {
		winner := state.Winner
		view.Winner = &winner
	}

	return view
}

func (that *gameHandler) state(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newGameView(that.session.State()))
}

func (that *gameHandler) newGame(ctx *gin.Context) {
	view := newGameView(that.session.NewGame(ctx.Request.Context()))
	view.Message = "New game started"

	ctx.JSON(http.StatusOK, view)
}

func (that *gameHandler) move(ctx *gin.Context) {
	var req moveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Body must be {\"column\": <0-6>}"})
		return
	}

	result, state, err := that.session.MakeMove(ctx.Request.Context(), *req.Column)
	if err != nil {
		that.fail(ctx, err, state)
		return
	}

	view := newGameView(state)
	view.Result = &result
	view.Message = render.Outcome(result)

	ctx.JSON(http.StatusOK, view)
}

func (that *gameHandler) undo(ctx *gin.Context) {
	state, err := that.session.Undo(ctx.Request.Context())
	if err != nil {
		that.fail(ctx, err, state)
		return
	}

	view := newGameView(state)
	view.Message = "Move undone"

	ctx.JSON(http.StatusOK, view)
}

func (that *gameHandler) save(ctx *gin.Context) {
	if err := that.session.Save(ctx.Request.Context()); err != nil {
		that.fail(ctx, err, that.session.State())
		return
	}

	view := newGameView(that.session.State())
	view.Message = "Game saved"

	ctx.JSON(http.StatusOK, view)
}

func (that *gameHandler) load(ctx *gin.Context) {
	state, err := that.session.Load(ctx.Request.Context())
	if err != nil {
		that.fail(ctx, err, state)
		return
	}

	view := newGameView(state)
	view.Message = "Game loaded"

	ctx.JSON(http.StatusOK, view)
}

func (that *gameHandler) deleteSaved(ctx *gin.Context) {
	if err := that.session.DeleteSaved(ctx.Request.Context()); err != nil {
		that.fail(ctx, err, that.session.State())
		return
	}

	view := newGameView(that.session.State())
	view.Message = "Saved game deleted"

	ctx.JSON(http.StatusOK, view)
}

// fail writes the error together with the unchanged state.
func (that *gameHandler) fail(ctx *gin.Context, err error, state *entity.GameState) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		that.logger.Error("game operation failed", "path", ctx.FullPath(), "error", err)
	}

	ctx.JSON(status, gin.H{
		"error": render.Message(err),
		"game":  newGameView(state),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrColumnFull),
		errors.Is(err, apperror.ErrGameAlreadyOver),
		errors.Is(err, apperror.ErrNoHistory):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrPersistenceFormat),
		errors.Is(err, apperror.ErrPersistenceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
