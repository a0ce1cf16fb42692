package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.handleHealthCheck)
}

// handleHealthCheck godoc
// @Summary Health Check
// @Description Liveness of the server and the state of the movie list
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) handleHealthCheck(c echo.Context) error {
	result := map[string]string{"status": "OK"}
	if s.MovieService != nil {
		result["movies"] = string(s.MovieService.Snapshot().State)
	}
	return writeSuccess(c, http.StatusOK, result)
}
