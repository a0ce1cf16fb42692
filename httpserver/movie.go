package httpserver

import (
	"net/http"
	"strconv"

	"clapperboard/errs"

	"github.com/labstack/echo/v4"
)

var errInvalidWait = errs.Errorf(errs.EINVALID, "wait must be a boolean")

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies/reload", s.handleReloadMovies)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Current view state of the movie list
// @Tags movies
// @Produce json
// @Success 200 {object} movie.View
// @Failure 501 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	return writeSuccess(c, http.StatusOK, s.MovieService.Snapshot())
}

// handleReloadMovies godoc
// @Summary Reload Movies
// @Description Fetch the movie list again. With wait=true the response carries the result.
// @Tags movies
// @Produce json
// @Param wait query bool false "Wait for the fetch to complete"
// @Success 200 {object} movie.View
// @Success 202 {object} movie.View
// @Failure 400 {object} APIResponse
// @Router /api/movies/reload [post]
func (s *Server) handleReloadMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	wait := false
	if raw := c.QueryParam("wait"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return errInvalidWait
		}
		wait = parsed
	}

	done := s.MovieService.Init(s.BaseContext)
	if !wait {
		return writeSuccess(c, http.StatusAccepted, s.MovieService.Snapshot())
	}

	select {
	case <-done:
	case <-c.Request().Context().Done():
		// the client went away, the fetch keeps running on BaseContext
		s.Logger.Infow("reload wait abandoned by client",
			"request_id", requestID(c),
			"error", c.Request().Context().Err(),
		)
		return nil
	}
	return writeSuccess(c, http.StatusOK, s.MovieService.Snapshot())
}
