package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	snarlerrors "github.com/matzehuels/snarl/pkg/errors"
	"github.com/matzehuels/snarl/pkg/graph"
	"github.com/matzehuels/snarl/pkg/observability"
	"github.com/matzehuels/snarl/pkg/render/nodelink"
	"github.com/matzehuels/snarl/pkg/snarl"
	"github.com/matzehuels/snarl/pkg/store"
)

// API boards carry arbitrary JSON payloads per node.
type board = snarl.Snarl[json.RawMessage]

type boardSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type boardDetail struct {
	boardSummary
	Graph json.RawMessage `json:"graph"`
}

func summarize(b *store.Board) boardSummary {
	return boardSummary{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// loadBoard fetches a board and decodes its graph.
func (s *Server) loadBoard(r *http.Request) (*store.Board, *board, error) {
	id := chi.URLParam(r, "board")
	start := time.Now()
	b, err := s.store.Get(r.Context(), id)
	observability.Store().OnLoad(r.Context(), "server", time.Since(start), err)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, snarlerrors.New(snarlerrors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	if err != nil {
		return nil, nil, snarlerrors.Wrap(snarlerrors.ErrCodeStore, err, "load board %s", id)
	}

	g, err := graph.Unmarshal[json.RawMessage](b.Graph)
	if err != nil {
		return nil, nil, snarlerrors.Wrap(snarlerrors.ErrCodeMalformedGraph, err, "decode board %s", id)
	}
	return b, g, nil
}

// saveBoard re-encodes a board's graph and persists it.
func (s *Server) saveBoard(r *http.Request, b *store.Board, g *board) error {
	data, err := graph.Marshal(g)
	if err != nil {
		return snarlerrors.Wrap(snarlerrors.ErrCodeInternal, err, "encode board %s", b.ID)
	}
	b.Graph = data

	start := time.Now()
	err = s.store.Put(r.Context(), b)
	observability.Store().OnSave(r.Context(), "server", len(data), time.Since(start), err)
	if err != nil {
		return snarlerrors.Wrap(snarlerrors.ErrCodeStore, err, "save board %s", b.ID)
	}
	return nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return snarlerrors.Wrap(snarlerrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// ── Boards ──────────────────────────────────────────────────────────

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string          `json:"name"`
		Graph json.RawMessage `json:"graph"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := snarlerrors.ValidateBoardName(req.Name); err != nil {
		writeError(w, err)
		return
	}

	if len(req.Graph) == 0 {
		data, err := graph.Marshal(snarl.New[json.RawMessage]())
		if err != nil {
			writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeInternal, err, "encode empty board"))
			return
		}
		req.Graph = data
	} else if _, err := graph.Unmarshal[json.RawMessage](req.Graph); err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeMalformedGraph, err, "decode graph"))
		return
	}

	b := store.NewBoard(req.Name, req.Graph)
	start := time.Now()
	err := s.store.Put(r.Context(), b)
	observability.Store().OnSave(r.Context(), "server", len(req.Graph), time.Since(start), err)
	if err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeStore, err, "save board"))
		return
	}
	writeJSON(w, http.StatusCreated, summarize(b))
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeStore, err, "list boards"))
		return
	}
	summaries := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		summaries = append(summaries, summarize(b))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, _, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boardDetail{boardSummary: summarize(b), Graph: b.Graph})
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  *string         `json:"name"`
		Graph json.RawMessage `json:"graph"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		if err := snarlerrors.ValidateBoardName(*req.Name); err != nil {
			writeError(w, err)
			return
		}
		b.Name = *req.Name
	}
	if len(req.Graph) > 0 {
		g, err = graph.Unmarshal[json.RawMessage](req.Graph)
		if err != nil {
			writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeMalformedGraph, err, "decode graph"))
			return
		}
	}

	if err := s.saveBoard(r, b, g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(b))
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board")
	err := s.store.Delete(r.Context(), id)
	observability.Store().OnDelete(r.Context(), "server", err)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, snarlerrors.New(snarlerrors.ErrCodeBoardNotFound, "board %s not found", id))
		return
	}
	if err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeStore, err, "delete board %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Nodes ───────────────────────────────────────────────────────────

type posBody struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload json.RawMessage `json:"payload"`
		Pos     posBody         `json:"pos"`
		Open    *bool           `json:"open"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Payload) == 0 {
		req.Payload = json.RawMessage("null")
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pos := snarl.Pos{X: req.Pos.X, Y: req.Pos.Y}
	var id snarl.NodeID
	if req.Open != nil && !*req.Open {
		id = g.AddNodeCollapsed(req.Payload, pos)
	} else {
		id = g.AddNode(req.Payload, pos)
	}
	observability.Graph().OnAddNode(r.Context(), b.ID)

	if err := s.saveBoard(r, b, g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]snarl.NodeID{"id": id})
}

func parseNodeID(r *http.Request) (snarl.NodeID, error) {
	raw := chi.URLParam(r, "node")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, snarlerrors.New(snarlerrors.ErrCodeInvalidInput, "invalid node id %q", raw)
	}
	return snarl.NodeID(n), nil
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pos  *posBody `json:"pos"`
		Open *bool    `json:"open"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := parseNodeID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Pos != nil {
		if err := g.SetPos(id, snarl.Pos{X: req.Pos.X, Y: req.Pos.Y}); err != nil {
			writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeNodeNotFound, err, "node %d", id))
			return
		}
	}
	if req.Open != nil {
		if err := g.SetOpen(id, *req.Open); err != nil {
			writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeNodeNotFound, err, "node %d", id))
			return
		}
	}

	if err := s.saveBoard(r, b, g); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	id, err := parseNodeID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	before := g.WireCount()
	if _, err := g.RemoveNode(id); err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeNodeNotFound, err, "node %d", id))
		return
	}
	observability.Graph().OnRemoveNode(r.Context(), b.ID, before-g.WireCount())

	if err := s.saveBoard(r, b, g); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Wires ───────────────────────────────────────────────────────────

type wireBody struct {
	OutNode snarl.NodeID `json:"out_node"`
	Output  int          `json:"output"`
	InNode  snarl.NodeID `json:"in_node"`
	Input   int          `json:"input"`
}

func (b wireBody) pins() (snarl.OutPinID, snarl.InPinID, error) {
	if b.Output < 0 || b.Input < 0 {
		return snarl.OutPinID{}, snarl.InPinID{}, snarlerrors.New(snarlerrors.ErrCodeInvalidPin, "pin indices must be non-negative")
	}
	return snarl.OutPinID{Node: b.OutNode, Output: b.Output},
		snarl.InPinID{Node: b.InNode, Input: b.Input}, nil
}

func (s *Server) handleListWires(w http.ResponseWriter, r *http.Request) {
	_, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	wires := g.Wires()
	snarl.SortWires(wires)
	out := make([]wireBody, 0, len(wires))
	for _, wire := range wires {
		out = append(out, wireBody{
			OutNode: wire.Out.Node,
			Output:  wire.Out.Output,
			InNode:  wire.In.Node,
			Input:   wire.In.Input,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req wireBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, in, err := req.pins()
	if err != nil {
		writeError(w, err)
		return
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := g.Connect(out, in)
	if err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeNodeNotFound, err, "connect %d:%d -> %d:%d",
			req.OutNode, req.Output, req.InNode, req.Input))
		return
	}
	observability.Graph().OnConnect(r.Context(), b.ID, created)

	if created {
		if err := s.saveBoard(r, b, g); err != nil {
			writeError(w, err)
			return
		}
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"created": created})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	var req wireBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, in, err := req.pins()
	if err != nil {
		writeError(w, err)
		return
	}

	b, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	removed := g.Disconnect(out, in)
	observability.Graph().OnDisconnect(r.Context(), b.ID, removed)

	if removed {
		if err := s.saveBoard(r, b, g); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// ── Render ──────────────────────────────────────────────────────────

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	_, g, err := s.loadBoard(r)
	if err != nil {
		writeError(w, err)
		return
	}

	dot := nodelink.ToDOT(g, nodelink.Options[json.RawMessage]{})
	start := time.Now()
	observability.Render().OnRenderStart(r.Context(), "svg", g.NodeCount())
	svg, err := nodelink.RenderSVG(dot)
	observability.Render().OnRenderComplete(r.Context(), "svg", time.Since(start), err)
	if err != nil {
		writeError(w, snarlerrors.Wrap(snarlerrors.ErrCodeRender, err, "render board"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
