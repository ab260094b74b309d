// Selfplay plays the search agent against itself from any FEN position and
// prints the game to the terminal. Useful for eyeballing engine behaviour
// and for checking that repeated runs produce the same game.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/jmaassen/gambit-backend/internal/agent"
	"github.com/jmaassen/gambit-backend/internal/model"
)

func main() {
	fen := flag.String("fen", model.StartFEN, "starting position in FEN")
	depth := flag.Int("depth", agent.DefaultDepth, "search depth in plies")
	maxMoves := flag.Int("max-moves", 80, "stop after this many plies")
	flag.Parse()

	board, toMove, err := model.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}

	seeker := agent.New(*depth)
	printBoard(board)

	for ply := 1; ply <= *maxMoves; ply++ {
		if model.InCheckmate(board, toMove) {
			fmt.Printf("checkmate, %s wins\n", toMove.Opponent())
			return
		}
		if model.InStalemate(board, toMove) {
			fmt.Println("stalemate")
			return
		}

		req, err := seeker.BestMove(context.Background(), board, toMove)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		mv := resolve(board, toMove, req)
		mv.Apply(board)
		fmt.Printf("%3d. %s plays %s\n", ply, toMove, mv.Notation())
		printBoard(board)
		toMove = toMove.Opponent()
	}
	fmt.Println("move limit reached")
}

func resolve(b *model.Board, colour model.Colour, req model.MoveRequest) model.Move {
	piece := b.PieceAt(req.From)
	if piece == nil || piece.Colour != colour {
		log.Fatalf("agent returned unplayable move %+v", req)
	}
	for _, mv := range model.LegalMoves(b, piece) {
		if mv.To() == req.To {
			return mv
		}
	}
	log.Fatalf("agent returned unplayable move %+v", req)
	return nil
}

var pieceLetters = map[model.PieceType]string{
	model.King:   "K",
	model.Queen:  "Q",
	model.Rook:   "R",
	model.Bishop: "B",
	model.Knight: "N",
	model.Pawn:   "P",
}

func printBoard(b *model.Board) {
	grid := b.Grid()
	for row := 0; row < 8; row++ {
		fmt.Printf("%d ", 8-row)
		for col := 0; col < 8; col++ {
			bg := color.BgCyan
			if (row+col)%2 == 1 {
				bg = color.BgBlue
			}
			p := grid[row][col]
			if p == nil {
				color.New(bg).Print("   ")
				continue
			}
			fg := color.FgHiWhite
			if p.Colour == model.Black {
				fg = color.FgBlack
			}
			color.New(bg, fg, color.Bold).Printf(" %s ", pieceLetters[p.Type])
		}
		fmt.Println()
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
}
