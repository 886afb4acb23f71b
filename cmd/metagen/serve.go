package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
)

func init() {
	flagSet := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		httpAddr = flagSet.String("http", ":5080", "HTTP listen address for previewing")
	)

	handler := func(ctx context.Context, args []string) error {
		host, port, err := net.SplitHostPort(*httpAddr)
		if err != nil {
			return err
		}
		if host == "" {
			host = "0.0.0.0"
		}

		site, _, err := siteFromFlags()
		if err != nil {
			return err
		}
		srv := &http.Server{Addr: *httpAddr, Handler: site.Handler()}
		go func() {
			<-ctx.Done()
			srv.Shutdown(context.Background())
		}()
		log.Printf("# Site is available at http://%s:%s", host, port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "start a web server to serve the site",
		LongDescription:  "The serve subcommand starts a web server to serve the site over HTTP. Pages are rendered on each request, so changes to Markdown or template files are visible after reloading. Append ?format=json to a page URL to get its metadata.",
		handler:          handler,
	})
}
