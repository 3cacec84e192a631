package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/render"
)

const help = "Commands: 0-6 drop a piece, u undo, n new game, s save, l load, d delete save, h help, q quit"

type gameSession interface {
	State() *entity.GameState
	NewGame(ctx context.Context) *entity.GameState
	MakeMove(ctx context.Context, column int) (connectfour.MoveResult, *entity.GameState, error)
	Undo(ctx context.Context) (*entity.GameState, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (*entity.GameState, error)
	DeleteSaved(ctx context.Context) error
}

// Run reads one command per line from in until q, EOF or ctx is done. The
// whole board is redrawn after every operation that changes it.
func Run(ctx context.Context, in io.Reader, out io.Writer, session gameSession) error {
	scanner := bufio.NewScanner(in)

	if _, err := fmt.Fprintln(out, help); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	if _, err := fmt.Fprint(out, render.Game(session.State())); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if _, err := fmt.Fprint(out, "> "); err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if command == "q" {
			return nil
		}

		if _, err := fmt.Fprint(out, execute(ctx, command, session)); err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
	}
}

func execute(ctx context.Context, command string, session gameSession) string {
	switch command {
	case "":
		return ""
	case "h":
		return help + "\n"
	case "n":
		return "New game started\n" + render.Game(session.NewGame(ctx))
	case "u":
		state, err := session.Undo(ctx)
		if err != nil {
			return render.Message(err) + "\n"
		}
		return "Move undone\n" + render.Game(state)
	case "s":
		if err := session.Save(ctx); err != nil {
			return render.Message(err) + "\n"
		}
		return "Game saved\n"
	case "l":
		state, err := session.Load(ctx)
		if err != nil {
			return render.Message(err) + "\n"
		}
		return "Game loaded\n" + render.Game(state)
	case "d":
		if err := session.DeleteSaved(ctx); err != nil {
			return render.Message(err) + "\n"
		}
		return "Saved game deleted\n"
	}

	column, err := strconv.Atoi(command)
	if err != nil {
		return "Unknown command " + strconv.Quote(command) + "\n" + help + "\n"
	}

	result, state, err := session.MakeMove(ctx, column)
	if err != nil {
		return render.Message(err) + "\n"
	}

	view := render.Game(state)
	if outcome := render.Outcome(result); outcome != "" {
		view += outcome + "\n"
	}
	return view
}
