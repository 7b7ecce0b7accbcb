package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/httpstatus"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/store"
)

// serveCommand creates the "serve" command: expose run status over HTTP
// for callers that submit batch placement runs and poll for completion.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placement run status over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var st store.Store
			if mongoURI != "" {
				s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
				if err != nil {
					return err
				}
				st = s
				printInfo("using Mongo store at %s", mongoURI)
			} else {
				st = store.NewMemoryStore()
				printInfo("using in-memory store (runs are lost on restart)")
			}
			defer st.Close(ctx)

			reporter := httpstatus.NewReporter(st)
			c.Logger.Infof("listening on %s", addr)
			return http.ListenAndServe(addr, reporter.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "Mongo connection URI for a durable store (defaults to in-memory)")
	return cmd
}
