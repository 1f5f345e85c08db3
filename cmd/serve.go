package cmd

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/parking-sim/parking-sim/internal/api"
)

// serveCmd runs the simulator behind the HTTP presentation and control
// surface: a wall-clock pacing loop advances logical time while operators
// query occupancy and adjust parameters.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		godotenv.Load()

		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}

		s := buildSimulator()
		server := api.NewServer(s)
		go server.Run()
		defer server.StopLoop()

		router := handlers.LoggingHandler(os.Stdout, handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(server.Router()))

		logrus.Infof("serving on port %s", port)
		if err := http.ListenAndServe(":"+port, router); err != nil {
			logrus.Fatalf("server failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
