// Package server wraps http.Server with an explicit listen step, graceful
// shutdown and environment-driven configuration.
//
//	srv := server.New("127.0.0.1:0",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//	if err := srv.Listen(); err != nil {
//		return err
//	}
//	log.Info("listening", "addr", srv.Addr())
//	go srv.Serve(handler)
//	defer srv.Stop()
//
// Start combines Listen and Serve and blocks until the context ends. Run
// returns a func() error suitable for errgroup.
//
// Config is parsed from SERVER_* environment variables. Setting both
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE enables TLS.
package server
