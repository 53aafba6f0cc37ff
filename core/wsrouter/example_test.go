package wsrouter_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/webserver/core/wsrouter"
)

func ExampleNew() {
	r := wsrouter.New()
	r.Handle("/echo", func(ctx *wsrouter.Context) error {
		typ, msg, err := ctx.Conn().ReadMessage()
		if err != nil {
			return err
		}
		return ctx.Conn().WriteMessage(typ, msg)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/echo", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer conn.Close()

	_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
	_, msg, _ := conn.ReadMessage()
	fmt.Println(string(msg))

	// Output: ping
}

func ExampleRouter_Mount() {
	api := wsrouter.New()
	api.Handle("/items/:id", func(ctx *wsrouter.Context) error { return nil })
	api.Handle("/feed", func(ctx *wsrouter.Context) error { return nil })

	r := wsrouter.New()
	r.Handle("/echo", func(ctx *wsrouter.Context) error { return nil })
	r.Mount("/api/", api)

	for _, route := range r.Routes() {
		fmt.Println(strings.TrimSpace(route.Pattern + " " + route.MountPath))
	}

	// Output:
	// /echo
	// /api/items/:id /api
	// /api/feed /api
}

func ExampleRouter_Attach() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r := wsrouter.New()
	r.Handle("/ws", func(ctx *wsrouter.Context) error { return nil })

	srv := &http.Server{Addr: ":8080", Handler: mux}
	r.Attach(srv)

	_, stillMux := srv.Handler.(*http.ServeMux)
	fmt.Println(stillMux)

	// Output: false
}
