package weiqi

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// GTP implements enough of the Go Text Protocol to plug this engine into a
// GTP controller such as GoGui, following the teacher's handler-map
// dispatch idiom. We only ever play on the board size Config was built
// with, and we assume strictly alternating colors, same as the reference
// engine's gtp_io does.
type GTP struct {
	Config *Config
	Tree   *TreeNode
	Out    io.Writer
	Err    io.Writer
}

// NewGTP returns a GTP session with a freshly expanded root tree.
func NewGTP(cfg *Config, out, err io.Writer) *GTP {
	root := NewTreeNode(NewEmptyPosition(cfg.BoardSize, cfg.Komi))
	root.Expand(cfg)
	return &GTP{Config: cfg, Tree: root, Out: out, Err: err}
}

type gtpRequest struct {
	session *GTP
	args    []string
}

type gtpResponse struct {
	message string
	ok      bool
}

func gtpOK(message string) gtpResponse  { return gtpResponse{message, true} }
func gtpErr(message string) gtpResponse { return gtpResponse{message, false} }

type gtpHandler func(gtpRequest) gtpResponse

var gtpCommandWordRe = regexp.MustCompile(`\S+`)

var gtpHandlers = map[string]gtpHandler{
	"boardsize":        handleBoardsize,
	"clear_board":      handleClearBoard,
	"komi":             handleKomi,
	"play":             handlePlay,
	"genmove":          handleGenmove,
	"final_score":      handleFinalScore,
	"quit":             func(gtpRequest) gtpResponse { return gtpOK("") },
	"name":             func(gtpRequest) gtpResponse { return gtpOK("weiqi") },
	"version":          func(gtpRequest) gtpResponse { return gtpOK("1.0") },
	"known_command":    handleKnownCommand,
	"list_commands":    handleListCommands,
	"protocol_version": func(gtpRequest) gtpResponse { return gtpOK("2") },
	"tsdebug":          handleTsdebug,
}

// Run reads GTP commands from in until EOF or a "quit" command, writing
// responses to g.Out and position dumps (after every command but quit, as
// the reference engine does) to g.Err. Returns any I/O error from the
// scanner.
func (g *GTP) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		words := gtpCommandWordRe.FindAllString(line, -1)
		if len(words) == 0 {
			continue
		}

		cmdid := ""
		if n, err := strconv.Atoi(words[0]); err == nil {
			cmdid = strconv.Itoa(n)
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}
		name := strings.ToLower(words[0])
		args := words[1:]

		handler, known := gtpHandlers[name]
		var resp gtpResponse
		if !known {
			fmt.Fprintf(g.Err, "Warning: Ignoring unknown command - %s\n", line)
			resp = gtpErr("???")
		} else {
			resp = handler(gtpRequest{session: g, args: args})
		}

		if resp.ok {
			fmt.Fprintf(g.Out, "=%s %s\n\n", cmdid, resp.message)
		} else {
			fmt.Fprintf(g.Out, "?%s %s\n\n", cmdid, resp.message)
		}
		if name == "quit" {
			break
		}

		ownerMap := make([]float64, g.Tree.Pos.Board.W*g.Tree.Pos.Board.W)
		g.Tree.Pos.PrintPos(g.Err, ownerMap)
	}
	return scanner.Err()
}

func handleBoardsize(req gtpRequest) gtpResponse {
	if len(req.args) != 1 {
		return gtpErr("wrong number of arguments")
	}
	size, err := strconv.Atoi(req.args[0])
	if err != nil {
		return gtpErr("syntax error")
	}
	if size != req.session.Config.BoardSize {
		fmt.Fprintf(req.session.Err, "Warning: Trying to set incompatible boardsize %d (!= %d)\n",
			size, req.session.Config.BoardSize)
		return gtpErr("unacceptable size")
	}
	return gtpOK("")
}

func handleClearBoard(req gtpRequest) gtpResponse {
	cfg := req.session.Config
	root := NewTreeNode(NewEmptyPosition(cfg.BoardSize, cfg.Komi))
	root.Expand(cfg)
	req.session.Tree = root
	return gtpOK("")
}

func handleKomi(req gtpRequest) gtpResponse {
	if len(req.args) != 1 {
		return gtpErr("wrong number of arguments")
	}
	komi, err := strconv.ParseFloat(req.args[0], 64)
	if err != nil {
		return gtpErr("syntax error")
	}
	req.session.Tree.Pos.Komi = komi
	return gtpOK("")
}

func handlePlay(req gtpRequest) gtpResponse {
	if len(req.args) != 2 {
		return gtpErr("wrong number of arguments")
	}
	cfg := req.session.Config
	c, ok := ParseCoord(cfg.BoardSize, req.args[1])
	if !ok {
		return gtpErr("syntax error")
	}

	tree := req.session.Tree
	for _, ch := range tree.Children {
		if ch.Pos.Last == c {
			req.session.Tree = ch
			return gtpOK("")
		}
	}
	var pos2 Position
	if c == NoCoord {
		pos2 = tree.Pos.PassMove()
	} else {
		var moved bool
		pos2, moved = tree.Pos.Move(c)
		if !moved {
			return gtpErr("illegal move")
		}
	}
	req.session.Tree = NewTreeNode(pos2)
	return gtpOK("")
}

func handleGenmove(req gtpRequest) gtpResponse {
	if len(req.args) != 1 {
		return gtpErr("wrong number of arguments")
	}
	cfg := req.session.Config
	w := cfg.BoardSize + 2
	ownerMap := make([]float64, w*w)
	req.session.Tree = TreeSearch(cfg, req.session.Tree, ownerMap)

	tree := req.session.Tree
	if tree.Pos.Last == NoCoord {
		return gtpOK("pass")
	}
	if winrate := tree.Winrate(); winrate == winrate && winrate < ResignThres {
		return gtpOK("resign")
	}
	return gtpOK(StrCoord(cfg.BoardSize, tree.Pos.Last))
}

func handleFinalScore(req gtpRequest) gtpResponse {
	pos := req.session.Tree.Pos
	score := pos.Score(nil)
	if pos.Ply%2 != 0 {
		score = -score
	}
	switch {
	case score > 0:
		return gtpOK(fmt.Sprintf("B+%.1f", score))
	case score < 0:
		return gtpOK(fmt.Sprintf("W+%.1f", -score))
	default:
		return gtpOK("0")
	}
}

func handleTsdebug(req gtpRequest) gtpResponse {
	cfg := req.session.Config
	w := cfg.BoardSize + 2
	ownerMap := make([]float64, w*w)
	before := req.session.Tree
	req.session.Tree = TreeSearch(cfg, before, ownerMap)
	DumpSubtree(req.session.Err, cfg.BoardSize, before, float64(cfg.NSims)/50, 0, true, cfg.RaveEquiv)
	PrintTreeSummary(req.session.Err, cfg.BoardSize, before, cfg.NSims)
	req.session.Tree.Pos.PrintPos(req.session.Out, ownerMap)
	return gtpOK("")
}

func handleKnownCommand(req gtpRequest) gtpResponse {
	if len(req.args) != 1 {
		return gtpErr("wrong number of arguments")
	}
	_, known := gtpHandlers[req.args[0]]
	return gtpOK(strconv.FormatBool(known))
}

func handleListCommands(req gtpRequest) gtpResponse {
	names := make([]string, 0, len(gtpHandlers))
	for name := range gtpHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return gtpOK(strings.Join(names, "\n"))
}
