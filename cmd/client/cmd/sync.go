package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcilia favoritos contra el catálogo vivo",
	Long: `Borra del servidor los favoritos cuyo animal ya no figura en el
catálogo (adoptado o retirado). Si el catálogo no está disponible la
reconciliación no borra nada.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := app.Reconcile(cmd.Context())
		if err != nil {
			return err
		}

		if removed > 0 {
			color.Yellow("%d favoritos huérfanos eliminados", removed)
		} else {
			fmt.Println("favoritos al día")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
