package weiqi

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console runs the simple interactive text-mode UI: it prints the board
// after every move (with a territory-owner overlay) and prompts the human
// for a move, alternating with the engine's own search. Grounded on the
// reference engine's minimalistic game_io() loop.
type Console struct {
	Config        *Config
	ComputerBlack bool
	In            io.Reader
	Out           io.Writer
}

// NewConsole returns a console session. When computerBlack is true the
// engine plays first as black instead of waiting for a human move.
func NewConsole(cfg *Config, computerBlack bool, in io.Reader, out io.Writer) *Console {
	return &Console{Config: cfg, ComputerBlack: computerBlack, In: in, Out: out}
}

// Run plays a game until a double pass or the engine resigning, printing a
// result line in either case, or until the input runs out; it always ends
// with a closing "Thank you for the game!" line.
func (c *Console) Run() {
	cfg := c.Config
	tree := NewTreeNode(NewEmptyPosition(cfg.BoardSize, cfg.Komi))
	tree.Expand(cfg)
	w := tree.Pos.Board.W
	ownerMap := make([]float64, w*w)
	reader := bufio.NewReader(c.In)

	for {
		if !(tree.Pos.Ply == 0 && c.ComputerBlack) {
			tree.Pos.PrintPos(c.Out, ownerMap)

			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Fprintln(c.Out, "Thank you for the game!")
				return
			}
			sc := strings.TrimSpace(line)
			coord, ok := ParseCoord(cfg.BoardSize, sc)
			if !ok {
				fmt.Fprintln(c.Out, "An incorrect move")
				continue
			}

			if coord != NoCoord {
				if tree.Pos.Board.At(coord) != Empty {
					fmt.Fprintln(c.Out, "Bad move (not empty point)")
					continue
				}
				next := childWithLastMove(tree, coord)
				if next == nil {
					fmt.Fprintln(c.Out, "Bad move (rule violation)")
					continue
				}
				tree = next
			} else {
				tree = passChild(tree)
			}
			tree.Pos.PrintPos(c.Out, nil)
		}

		ownerMap = make([]float64, w*w)
		tree = TreeSearch(cfg, tree, ownerMap)
		if tree.Pos.Last == NoCoord && tree.Pos.Last2 == NoCoord {
			score := tree.Pos.Score(nil)
			if tree.Pos.Ply%2 != 0 {
				score = -score
			}
			fmt.Fprintf(c.Out, "Game over, score: B%+.1f\n", score)
			break
		}
		if winrate := tree.Winrate(); winrate == winrate && winrate < ResignThres {
			fmt.Fprintln(c.Out, "I resign.")
			break
		}
	}
	fmt.Fprintln(c.Out, "Thank you for the game!")
}

func childWithLastMove(tree *TreeNode, c Coord) *TreeNode {
	for _, ch := range tree.Children {
		if ch.Pos.Last == c {
			return ch
		}
	}
	return nil
}

func passChild(tree *TreeNode) *TreeNode {
	if len(tree.Children) > 0 && tree.Children[0].Pos.Last == NoCoord {
		return tree.Children[0]
	}
	return NewTreeNode(tree.Pos.PassMove())
}
