package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-catalog/internal/domain/favorites"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Observa la colección de favoritos en vivo",
	Long: `Se suscribe al stream de snapshots de favoritos del servidor e
imprime cada cambio. Ctrl-C para cortar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return app.Watch(ctx, func(snap favorites.Snapshot) {
			if jsonOutput {
				_ = json.NewEncoder(os.Stdout).Encode(snap)
				return
			}

			ts := time.Now().Format("15:04:05")
			color.New(color.Bold).Printf("[%s] %d favoritos\n", ts, len(snap))
			for _, f := range snap {
				fmt.Printf("  #%d  %s\n", f.AnimalID, f.Animal.Place)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
