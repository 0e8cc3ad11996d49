package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/fieldcover/astar"
	"github.com/katalvlaran/fieldcover/coverage"
	"github.com/katalvlaran/fieldcover/fieldfile"
	"github.com/katalvlaran/fieldcover/grid"
)

const mimeMsgpack = "application/msgpack"

// PathResponse is the body of a successful /api/path call.
type PathResponse struct {
	Path     []grid.Point `json:"path" msgpack:"path"`
	Length   int          `json:"length" msgpack:"length"`
	Expanded int          `json:"expanded" msgpack:"expanded"`
}

// PlanResponse is the body of a successful /api/plan call.
type PlanResponse struct {
	ID               string         `json:"id" msgpack:"id"`
	Name             string         `json:"name,omitempty" msgpack:"name,omitempty"`
	Route            []grid.Point   `json:"route" msgpack:"route"`
	Stats            coverage.Stats `json:"stats" msgpack:"stats"`
	Segments         int            `json:"segments" msgpack:"segments"`
	Iterations       int            `json:"iterations" msgpack:"iterations"`
	SkippedSegments  int            `json:"skippedSegments" msgpack:"skippedSegments"`
	UnsafeConnectors int            `json:"unsafeConnectors" msgpack:"unsafeConnectors"`
	Truncated        bool           `json:"truncated" msgpack:"truncated"`
	EndReached       bool           `json:"endReached" msgpack:"endReached"`
	Warning          string         `json:"warning,omitempty" msgpack:"warning,omitempty"`
}

// HandleHealth returns server health status
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
	})
}

// HandlePath finds the shortest path between the field's start and end.
func (s *Server) HandlePath(c echo.Context) (err error) {
	id := s.newID()
	defer s.timed(id, "server.path")(&err)

	f, apiErr := s.decodeField(c)
	if apiErr != nil {
		return apiErr
	}
	if f.End == nil {
		return NewValidationError("end", nil)
	}
	if err := s.checkEndpoints(f.Grid, f.Start, *f.End); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.cfg.PlanTimeout)
	defer cancel()

	res, err := astar.Search(f.Grid, f.Start, *f.End,
		astar.WithContext(ctx),
		astar.WithMaxExpansions(s.cfg.MaxExpansions),
	)
	switch {
	case errors.Is(err, astar.ErrNoPath), errors.Is(err, astar.ErrExpansionLimit):
		return NewNoPathError(err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewTimeoutError(err)
	case err != nil:
		return NewInternalError("path search failed", err)
	}

	return respond(c, http.StatusOK, PathResponse{
		Path:     res.Path,
		Length:   res.Cost,
		Expanded: res.Expanded,
	})
}

// HandlePlan builds a coverage route for the submitted field.
//
// An unreachable end cell or a planning deadline still yields 200 with the
// coverage route; the response then carries a warning.
func (s *Server) HandlePlan(c echo.Context) (err error) {
	id := s.newID()
	defer s.timed(id, "server.plan")(&err)

	f, apiErr := s.decodeField(c)
	if apiErr != nil {
		return apiErr
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.cfg.PlanTimeout)
	defer cancel()

	opts := []coverage.Option{
		coverage.WithContext(ctx),
		coverage.WithLogger(s.logger),
	}
	if s.cfg.MaxExpansions > 0 {
		opts = append(opts, coverage.WithPathOptions(astar.WithMaxExpansions(s.cfg.MaxExpansions)))
	}

	res, err := f.Plan(opts...)
	var warning string
	switch {
	case errors.Is(err, coverage.ErrInvalidInput):
		return NewValidationError("start/end", err)
	case res == nil && err != nil:
		return NewInternalError("planning failed", err)
	case err != nil:
		warning = err.Error()
	}

	return respond(c, http.StatusOK, PlanResponse{
		ID:               id,
		Name:             f.Name,
		Route:            res.Route,
		Stats:            res.Stats(f.Grid),
		Segments:         res.Segments,
		Iterations:       res.Iterations,
		SkippedSegments:  res.Skipped,
		UnsafeConnectors: res.Unsafe,
		Truncated:        res.Truncated,
		EndReached:       res.EndReached,
		Warning:          warning,
	})
}

// decodeField reads a field from a JSON or YAML body and enforces the
// cell cap.
func (s *Server) decodeField(c echo.Context) (*fieldfile.Field, *APIError) {
	var (
		f   *fieldfile.Field
		err error
	)
	if isYAML(c) {
		f, err = fieldfile.Decode(c.Request().Body)
	} else {
		var doc fieldfile.Document
		if bindErr := c.Bind(&doc); bindErr != nil {
			return nil, NewBadRequestError("invalid request body", bindErr)
		}
		f, err = doc.Field()
	}
	switch {
	case errors.Is(err, fieldfile.ErrNoStart):
		return nil, NewValidationError("start", err)
	case err != nil:
		return nil, NewBadRequestError("invalid field", err)
	}

	if n := f.Grid.Size(); n > s.cfg.MaxCells {
		return nil, NewTooLargeError(n, s.cfg.MaxCells)
	}
	return f, nil
}

// checkEndpoints rejects path endpoints outside the grid or on obstacles.
func (s *Server) checkEndpoints(g *grid.Grid, start, end grid.Point) *APIError {
	if !g.Free(start) {
		return NewValidationError("start", fmt.Errorf("%s is outside the field or blocked", start))
	}
	if !g.Free(end) {
		return NewValidationError("end", fmt.Errorf("%s is outside the field or blocked", end))
	}
	return nil
}

// respond writes v as msgpack when the client asks for it, JSON otherwise.
func respond(c echo.Context, status int, v interface{}) error {
	if !wantsMsgpack(c) {
		return c.JSON(status, v)
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(status, mimeMsgpack, data)
}
