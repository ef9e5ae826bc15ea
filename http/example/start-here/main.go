/*
start-here provides a toy example use of shotglass' http stack,
focusing on the basics of:

(1) constructing a default Ranger;
(2) binding route templates, with variable segments, to handlers;
(3) allowing query parameters through to a handler;
(4) parsing and validating a request payload with req.Parser;
(5) and the resp.Response kinds a handler answers with.
*/
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/shotglass/http/req"
	"github.com/xy-planning-network/shotglass/http/resp"
	"github.com/xy-planning-network/shotglass/http/route"
	"github.com/xy-planning-network/shotglass/ranger"
)

// greet answers with text, read as HTML.
// "$name$" in its route template becomes r.Arg(0).
func greet(r *route.Request) (resp.Response, error) {
	name := r.Arg(0)
	if r.Params["loud"] == "true" {
		name = strings.ToUpper(name)
	}

	return resp.Text(fmt.Sprintf("hello %s", name)), nil
}

var parser = req.NewParser()

// sum answers with JSON.
// Its payload is parsed and validated by parser.
func sum(r *route.Request) (resp.Response, error) {
	var payload struct {
		Nums []float64 `json:"nums" validate:"required,min=1"`
	}

	var verrs req.ValidationErrors
	err := parser.Parse(r, &payload)
	if errors.As(err, &verrs) {
		return resp.JSON{Value: verrs}, nil
	}

	if err != nil {
		return nil, err
	}

	var total float64
	for _, n := range payload.Nums {
		total += n
	}

	return resp.JSON{Value: map[string]any{"count": len(payload.Nums), "sum": total}}, nil
}

// pixel answers with a declared content type.
func pixel(*route.Request) (resp.Response, error) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`
	return resp.Typed{ContentType: "image/svg+xml", Body: []byte(svg)}, nil
}

// broken always fails, answering with a server error.
func broken(*route.Request) (resp.Response, error) {
	return nil, fmt.Errorf("broken on purpose")
}

// setup constructs a Ranger using all defaults and binds routes to handlers.
func setup() (*ranger.Ranger, error) {
	rng, err := ranger.New()
	if err != nil {
		return nil, err
	}

	err = rng.RegisterRoutes(
		[]route.Route{
			{Path: "/greet/$name$", Handler: greet, Params: route.Accept("loud")},
			{Path: "/pixel.svg", Handler: pixel},
			{Path: "/broken", Handler: broken},
		},
		[]route.Route{
			{Path: "/sum", Handler: sum},
		},
	)
	if err != nil {
		return nil, err
	}

	return rng, nil
}

func main() {
	rng, err := setup()
	if err != nil {
		fmt.Println(err)
		return
	}

	// start the web server until receiving a signal to stop.
	if err := rng.Guide(); err != nil {
		fmt.Println(err)
		return
	}
}
