package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Administra la colección de favoritos",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista los favoritos guardados",
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := app.ListFavorites(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(favs)
		}

		if len(favs) == 0 {
			fmt.Println("sin favoritos")
			return nil
		}
		for _, f := range favs {
			fmt.Printf("#%d  %s  guardado %s\n",
				f.AnimalID,
				f.Animal.Place,
				f.CreatedAt.Format("2006-01-02"),
			)
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <animal-id>",
	Short: "Guarda un animal en favoritos (idempotente)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("animal id inválido: %q", args[0])
		}

		res, err := app.AddFavorite(cmd.Context(), id)
		if err != nil {
			return err
		}

		if res.Created {
			color.Green("guardado #%d", id)
		} else {
			fmt.Printf("#%d ya estaba guardado\n", id)
		}
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <animal-id>",
	Short: "Quita un animal de favoritos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("animal id inválido: %q", args[0])
		}

		n, err := app.RemoveFavorite(cmd.Context(), id)
		if err != nil {
			return err
		}

		if n > 0 {
			color.Green("quitado #%d", id)
		} else {
			fmt.Printf("#%d no estaba en favoritos\n", id)
		}
		return nil
	},
}

var favoritesStatusCmd = &cobra.Command{
	Use:   "status <animal-id>",
	Short: "Indica si un animal está guardado",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("animal id inválido: %q", args[0])
		}

		favorited, err := app.IsFavorited(cmd.Context(), id)
		if err != nil {
			return err
		}

		if favorited {
			color.Green("#%d está en favoritos", id)
		} else {
			fmt.Printf("#%d no está en favoritos\n", id)
		}
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesStatusCmd)

	rootCmd.AddCommand(favoritesCmd)
}
