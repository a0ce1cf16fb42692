package movie

import (
	"encoding/json"
	"strconv"
	"strings"

	"clapperboard/errs"
)

const DefaultResource = "movies"

var ErrMalformedBody = errs.Errorf(errs.EINVALID, "movie list response is not valid JSON")

// Endpoint is the address of the remote movie listing. URL is the plain
// concatenation of BaseURI and Path, nothing is normalised.
type Endpoint struct {
	BaseURI string
	Path    string
}

// NewEndpoint builds an endpoint for resource with the query parameters that are set on q.
func NewEndpoint(baseURI, resource string, q Query) Endpoint {
	path := resource
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return Endpoint{BaseURI: baseURI, Path: path}
}

func (e Endpoint) URL() string {
	return e.BaseURI + e.Path
}

// Query holds the optional listing filters understood by the movie service.
// A nil field is left out of the query string.
type Query struct {
	StartingWithinDays *int
	IMDBData           *bool
	TheatreID          *int
	ShowTimes          *bool
}

// Encode renders the set parameters in a fixed order:
// starting_within_days, imdb_data, theatre_id, show_times.
func (q Query) Encode() string {
	parts := make([]string, 0, 4)
	if q.StartingWithinDays != nil {
		parts = append(parts, "starting_within_days="+strconv.Itoa(*q.StartingWithinDays))
	}
	if q.IMDBData != nil {
		parts = append(parts, "imdb_data="+flag(*q.IMDBData))
	}
	if q.TheatreID != nil {
		parts = append(parts, "theatre_id="+strconv.Itoa(*q.TheatreID))
	}
	if q.ShowTimes != nil {
		parts = append(parts, "show_times="+flag(*q.ShowTimes))
	}
	return strings.Join(parts, "&")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Response is the raw reply of a successful fetch.
type Response struct {
	StatusCode int
	Body       []byte
}

// Movies extracts the movies field of the body. Records are passed through
// untouched. A body that is not an object, or has no movies field, yields a
// nil list and no error. A movies value that is not an array is bound as a
// single record. Only bytes that are not JSON at all are rejected.
func (r Response) Movies() ([]json.RawMessage, error) {
	if !json.Valid(r.Body) {
		return nil, ErrMalformedBody
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return nil, nil
	}
	raw, ok := payload["movies"]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var movies []json.RawMessage
	if err := json.Unmarshal(raw, &movies); err != nil {
		return []json.RawMessage{raw}, nil
	}
	return movies, nil
}
