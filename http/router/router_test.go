package router_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/resp"
	"github.com/xy-planning-network/shotglass/http/route"
	"github.com/xy-planning-network/shotglass/http/router"
	"github.com/xy-planning-network/shotglass/logger"
)

func quietLogger() (*bytes.Buffer, logger.Logger) {
	b := new(bytes.Buffer)
	return b, logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func greet(req *route.Request) (resp.Response, error) {
	return resp.Text("hello " + req.Arg(0)), nil
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestRouterGreet(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{Path: "/greet/$name$", Handler: greet}))

	tcs := []struct {
		name     string
		target   string
		code     int
		expected string
	}{
		{"Plain", "/greet/Ada", http.StatusOK, "hello Ada"},
		{"Case-Insensitive-Literal", "/GREET/Ada", http.StatusOK, "hello Ada"},
		{"Underscore", "/greet/Ada_Lovelace", http.StatusOK, "hello Ada Lovelace"},
		{"Percent-Encoded", "/greet/Ada%20L", http.StatusOK, "hello Ada L"},
		{"Too-Few-Segments", "/greet", http.StatusNotFound, "Unsupported path: /greet\n"},
		{"Too-Many-Segments", "/greet/Ada/Lovelace", http.StatusNotFound, "Unsupported path: /greet/Ada/Lovelace\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.expected, w.Body.String())
			if tc.code == http.StatusOK {
				require.Equal(t, resp.HTMLType, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRouterSpecificity(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	everyone := func(*route.Request) (resp.Response, error) { return resp.Text("hello everyone"), nil }
	require.Nil(t, rt.RegisterRoutes([]route.Route{
		{Path: "/greet/$name$", Handler: greet},
		{Path: "/greet/everyone", Handler: everyone},
	}, nil))

	for target, expected := range map[string]string{
		"/greet/everyone": "hello everyone",
		"/greet/Ada":      "hello Ada",
	} {
		w := httptest.NewRecorder()

		// Act
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, expected, w.Body.String())
	}
}

func TestRouterParams(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	echo := func(req *route.Request) (resp.Response, error) { return resp.JSON{Value: req.Params}, nil }
	require.Nil(t, rt.RegisterRoutes([]route.Route{
		{Path: "/none", Handler: echo},
		{Path: "/some", Handler: echo, Params: route.Accept("a")},
		{Path: "/all", Handler: echo, Params: route.AcceptAll()},
	}, nil))

	tcs := []struct {
		name     string
		target   string
		expected string
	}{
		{"Zero-Value", "/none?a=1&b=2", "{}\n"},
		{"Allow-List", "/some?a=1&b=2", `{"a":"1"}` + "\n"},
		{"Allow-List-Last-Wins", "/some?a=1&a=3", `{"a":"3"}` + "\n"},
		{"Accept-All", "/all?a=1&b=2", `{"a":"1","b":"2"}` + "\n"},
		{"Decoded", "/all?q=hello%20there", `{"q":"hello there"}` + "\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, resp.JSONType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestRouterResponses(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	png := []byte{0x89, 'P', 'N', 'G'}
	require.Nil(t, rt.RegisterRoutes([]route.Route{
		{Path: "/bytes", Handler: func(*route.Request) (resp.Response, error) { return resp.Bytes("<p>hi</p>"), nil }},
		{Path: "/png", Handler: func(*route.Request) (resp.Response, error) {
			return resp.Typed{ContentType: "image/png", Body: png}, nil
		}},
		{Path: "/json", Handler: func(*route.Request) (resp.Response, error) {
			return resp.JSON{Value: map[string]int{"n": 1}}, nil
		}},
		{Path: "/nil", Handler: func(*route.Request) (resp.Response, error) { return nil, nil }},
	}, nil))

	tcs := []struct {
		target string
		ct     string
		body   []byte
	}{
		{"/bytes", resp.HTMLType, []byte("<p>hi</p>")},
		{"/png", "image/png", png},
		{"/json", resp.JSONType, []byte("{\"n\":1}\n")},
		{"/nil", resp.JSONType, []byte("null\n")},
	}

	for _, tc := range tcs {
		t.Run(tc.target, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.ct, w.Header().Get("Content-Type"))
			require.Equal(t, tc.body, w.Body.Bytes())
		})
	}
}

func TestRouterMethods(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{Path: "/greet/$name$", Handler: greet}))

	t.Run("HEAD", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()

		// Act
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/greet/Ada", nil))

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, resp.HTMLType, w.Header().Get("Content-Type"))
		require.Equal(t, "9", w.Header().Get("Content-Length"))
		require.Empty(t, w.Body.String())
	})

	t.Run("POST-Unregistered", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()

		// Act
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/greet/Ada", nil))

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(method, "/greet/Ada", nil))

			// Assert
			require.Equal(t, http.StatusNotImplemented, w.Code)
		})
	}
}

func TestRouterMalformedQuery(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	var called bool
	rt := router.New(router.WithLogger(l))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{
		Path: "/search",
		Handler: func(*route.Request) (resp.Response, error) {
			called = true
			return nil, nil
		},
		Params: route.AcceptAll(),
	}))
	w := httptest.NewRecorder()

	// Act
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?q=%zz", nil))

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, called)
}

func TestRouterPostBody(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l), router.WithMaxBodyBytes(16))
	echo := func(req *route.Request) (resp.Response, error) {
		if req.Body == nil {
			return resp.Text("<nil>"), nil
		}

		var v map[string]string
		if err := req.DecodeJSON(&v); err != nil {
			return nil, err
		}

		return resp.Text(v["name"]), nil
	}
	require.Nil(t, rt.RegisterRoutes(nil, []route.Route{{Path: "/echo", Handler: echo}}))

	tcs := []struct {
		name     string
		body     func() io.Reader
		length   int64
		code     int
		expected string
	}{
		{"JSON", func() io.Reader { return strings.NewReader(`{"name":"Ada"}`) }, 0, http.StatusOK, "Ada"},
		{"No-Body", func() io.Reader { return nil }, 0, http.StatusOK, "<nil>"},
		{"Unknown-Length", func() io.Reader { return io.NopCloser(strings.NewReader(`{"name":"Ada"}`)) }, 0, http.StatusOK, "<nil>"},
		{"Too-Large", func() io.Reader { return strings.NewReader(`{"name":"Ada Lovelace"}`) }, 0, http.StatusRequestEntityTooLarge, ""},
		{"Short-Body", func() io.Reader { return strings.NewReader(`{}`) }, 10, http.StatusBadRequest, ""},
		{"Not-JSON", func() io.Reader { return strings.NewReader(`name=Ada`) }, 0, http.StatusInternalServerError, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/echo", tc.body())
			if tc.length > 0 {
				r.ContentLength = tc.length
			}

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.expected != "" {
				require.Equal(t, tc.expected, w.Body.String())
			}
		})
	}
}

func TestRouterAuth(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	g, err := auth.NewGate(auth.Config{Enabled: true, Username: "u", Password: "p"})
	require.Nil(t, err)

	var called int
	rt := router.New(router.WithLogger(l), router.WithAuth(g))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{
		Path: "/",
		Handler: func(*route.Request) (resp.Response, error) {
			called++
			return resp.Text("home"), nil
		},
	}))

	tcs := []struct {
		name   string
		header string
	}{
		{"Missing", ""},
		{"Wrong-Scheme", "Bearer dTpw"},
		{"Wrong-User", basic("x", "p")},
		{"Wrong-Password", basic("u", "x")},
		{"Malformed-Base64", "Basic !!!"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, `Basic realm="shotglass", charset="UTF-8"`, w.Header().Get("WWW-Authenticate"))
			require.Empty(t, w.Body.String())
		})
	}

	require.Zero(t, called)

	t.Run("Authorized", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", basic("u", "p"))

		// Act
		rt.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "home", w.Body.String())
		require.Equal(t, 1, called)
	})

	t.Run("Authorized-Not-Found", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/missing", nil)
		r.Header.Set("Authorization", basic("u", "p"))

		// Act
		rt.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterHandlerFault(t *testing.T) {
	// Arrange
	b, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	require.Nil(t, rt.RegisterRoutes([]route.Route{
		{Path: "/err", Handler: func(*route.Request) (resp.Response, error) { return nil, errors.New("boom") }},
		{Path: "/panic", Handler: func(*route.Request) (resp.Response, error) { panic("boom") }},
		{Path: "/bad-json", Handler: func(*route.Request) (resp.Response, error) {
			return resp.JSON{Value: make(chan int)}, nil
		}},
		{Path: "/ok", Handler: func(*route.Request) (resp.Response, error) { return resp.Text("ok"), nil }},
	}, nil))

	for _, target := range []string{"/err", "/panic", "/bad-json"} {
		t.Run(target, func(t *testing.T) {
			// Arrange
			b.Reset()
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Contains(t, b.String(), logger.LogLevelError.String())
			require.Contains(t, b.String(), router.ErrHandlerFault.Error())
			require.NotContains(t, b.String(), logger.LogLevelFatal.String())

			// Act
			w = httptest.NewRecorder()
			rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRouterFailFast(t *testing.T) {
	// Arrange
	b, l := quietLogger()
	done := make(chan struct{})
	var calls int
	shutdown := func() {
		calls++
		close(done)
	}

	rt := router.New(router.WithLogger(l), router.WithFailFast(shutdown))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{
		Path:    "/panic",
		Handler: func(*route.Request) (resp.Response, error) { panic("boom") },
	}))

	// Act
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	}

	// Assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown not called")
	}

	require.Equal(t, 1, calls)
	require.Contains(t, b.String(), logger.LogLevelFatal.String())
}

func TestRouterSealed(t *testing.T) {
	// Arrange
	_, l := quietLogger()
	rt := router.New(router.WithLogger(l))
	require.Nil(t, rt.Handle(http.MethodGet, route.Route{Path: "/greet/$name$", Handler: greet}))

	// Act
	rt.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/greet/Ada", nil))
	err := rt.Handle(http.MethodGet, route.Route{Path: "/late", Handler: greet})

	// Assert
	require.ErrorIs(t, err, router.ErrSealed)
	require.ErrorIs(t, rt.AddStaticPaths("file.css"), router.ErrSealed)
	require.Equal(t, []string{"/greet/$name$"}, rt.Routes(http.MethodGet))
}

func TestRouterRegisterRoutes(t *testing.T) {
	tcs := []struct {
		name  string
		get   []route.Route
		post  []route.Route
		err   error
		count int
	}{
		{"Zero-Value", nil, nil, nil, 0},
		{"No-Leading-Slash", []route.Route{{Path: "greet", Handler: greet}}, nil, shotglass.ErrNotValid, 0},
		{"No-Handler", nil, []route.Route{{Path: "/greet"}}, shotglass.ErrMissingData, 0},
		{"Both", []route.Route{{Path: "/a", Handler: greet}}, []route.Route{{Path: "/b", Handler: greet}}, nil, 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			_, l := quietLogger()
			rt := router.New(router.WithLogger(l))

			// Act
			err := rt.RegisterRoutes(tc.get, tc.post)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Len(t, rt.Routes(http.MethodPost), tc.count)
		})
	}
}

func ExampleRouter() {
	rt := router.New(router.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))
	_ = rt.Handle(http.MethodGet, route.Route{
		Path: "/greet/$name$",
		Handler: func(req *route.Request) (resp.Response, error) {
			return resp.Text("hello " + req.Arg(0)), nil
		},
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/greet/Ada", nil))
	fmt.Println(w.Code, w.Body.String())
	// Output: 200 hello Ada
}
