package movie_test

import (
	"encoding/json"
	"testing"

	"clapperboard/errs"
	"clapperboard/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint movie.Endpoint
		expected string
	}{
		{
			name:     "base and path are concatenated",
			endpoint: movie.Endpoint{BaseURI: "http://localhost:5000/", Path: "movies?imdb_data=1"},
			expected: "http://localhost:5000/movies?imdb_data=1",
		},
		{
			name:     "no slash is inserted",
			endpoint: movie.Endpoint{BaseURI: "http://localhost:5000", Path: "movies"},
			expected: "http://localhost:5000movies",
		},
		{
			name:     "no slash is removed",
			endpoint: movie.Endpoint{BaseURI: "http://localhost:5000/", Path: "/movies"},
			expected: "http://localhost:5000//movies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.endpoint.URL())
		})
	}
}

func TestNewEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		query    movie.Query
		expected string
	}{
		{
			name: "theatre listing with imdb data",
			base: "http://127.0.0.1:5000/",
			query: movie.Query{
				StartingWithinDays: intPtr(14),
				IMDBData:           boolPtr(true),
				TheatreID:          intPtr(3),
			},
			expected: "http://127.0.0.1:5000/movies?starting_within_days=14&imdb_data=1&theatre_id=3",
		},
		{
			name:     "no parameters leaves out the question mark",
			base:     "http://127.0.0.1:5000/",
			expected: "http://127.0.0.1:5000/movies",
		},
		{
			name: "all parameters keep a fixed order",
			base: "https://clapperboard.example.com/",
			query: movie.Query{
				ShowTimes:          boolPtr(false),
				TheatreID:          intPtr(1),
				IMDBData:           boolPtr(false),
				StartingWithinDays: intPtr(7),
			},
			expected: "https://clapperboard.example.com/movies?starting_within_days=7&imdb_data=0&theatre_id=1&show_times=0",
		},
		{
			name:     "show times only",
			base:     "http://localhost:5000/",
			query:    movie.Query{ShowTimes: boolPtr(true)},
			expected: "http://localhost:5000/movies?show_times=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := movie.NewEndpoint(tt.base, movie.DefaultResource, tt.query)

			assert.Equal(t, tt.expected, endpoint.URL())
			assert.Equal(t, tt.base, endpoint.BaseURI)
		})
	}
}

func TestResponseMovies(t *testing.T) {
	t.Run("keeps records and their order", func(t *testing.T) {
		resp := movie.Response{Body: []byte(`{"movies":[{"id":2,"title":"B"},{"id":1,"title":"A"}]}`)}

		movies, err := resp.Movies()

		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.JSONEq(t, `{"id":2,"title":"B"}`, string(movies[0]))
		assert.JSONEq(t, `{"id":1,"title":"A"}`, string(movies[1]))
	})

	t.Run("records are not validated", func(t *testing.T) {
		resp := movie.Response{Body: []byte(`{"movies":[1,"two",null,{"x":[]}]}`)}

		movies, err := resp.Movies()

		require.NoError(t, err)
		assert.Equal(t, []json.RawMessage{
			json.RawMessage(`1`),
			json.RawMessage(`"two"`),
			json.RawMessage(`null`),
			json.RawMessage(`{"x":[]}`),
		}, movies)
	})

	t.Run("missing field yields nil without error", func(t *testing.T) {
		resp := movie.Response{Body: []byte(`{"theatres":[]}`)}

		movies, err := resp.Movies()

		assert.NoError(t, err)
		assert.Nil(t, movies)
	})

	t.Run("body that is not an object binds nothing", func(t *testing.T) {
		for _, body := range []string{`[{"id":1}]`, `null`, `"movies"`, `42`} {
			resp := movie.Response{Body: []byte(body)}

			movies, err := resp.Movies()

			assert.NoError(t, err, body)
			assert.Nil(t, movies, body)
		}
	})

	t.Run("null movies binds nothing", func(t *testing.T) {
		movies, err := movie.Response{Body: []byte(`{"movies":null}`)}.Movies()

		assert.NoError(t, err)
		assert.Nil(t, movies)
	})

	t.Run("movies that are not an array pass through as one record", func(t *testing.T) {
		tests := map[string]string{
			"object": `{"a":1}`,
			"string": `"x"`,
			"number": `7`,
		}

		for name, value := range tests {
			t.Run(name, func(t *testing.T) {
				resp := movie.Response{Body: []byte(`{"movies":` + value + `}`)}

				movies, err := resp.Movies()

				require.NoError(t, err)
				require.Len(t, movies, 1)
				assert.JSONEq(t, value, string(movies[0]))
			})
		}
	})

	t.Run("non JSON body is invalid", func(t *testing.T) {
		resp := movie.Response{Body: []byte(`<html>oops</html>`)}

		movies, err := resp.Movies()

		assert.Nil(t, movies)
		assert.Equal(t, movie.ErrMalformedBody, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}
