package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"pet-adoption-catalog/internal/client/images"
	"pet-adoption-catalog/internal/domain/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	filterArea string
	filterKind string
	filterSex  string
	refresh    bool
)

var animalsCmd = &cobra.Command{
	Use:   "animals",
	Short: "Lista el catálogo de animales en adopción",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			animals []catalog.Animal
			err     error
		)

		f := catalog.Filter{
			Area: filterArea,
			Kind: catalog.ParseKind(filterKind),
			Sex:  catalog.ParseSex(filterSex),
		}

		if refresh {
			if _, err = app.RefreshCatalog(ctx); err != nil {
				return err
			}
		}
		animals, err = app.Animals(ctx, f)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(animals)
		}

		printAnimals(animals)
		return nil
	},
}

func printAnimals(animals []catalog.Animal) {
	if len(animals) == 0 {
		fmt.Println("no hay animales que coincidan con el filtro")
		return
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	opt := images.Optimizer{CloudName: cfg.CloudinaryCloudName}

	for _, a := range animals {
		bold.Printf("#%d", a.ID)
		fmt.Printf("  %s", kindLabel(a))
		if a.Variety != "" {
			fmt.Printf(" (%s)", a.Variety)
		}
		fmt.Println()

		if a.Place != "" {
			fmt.Printf("    %s\n", a.Place)
		}
		if a.AlbumFile != "" {
			dim.Printf("    %s\n", opt.OptimizedURL(a.AlbumFile, images.PresetCard))
		}
	}
	fmt.Printf("\n%d animales\n", len(animals))
}

func kindLabel(a catalog.Animal) string {
	switch catalog.KindOf(a.Kind) {
	case catalog.KindCat:
		return color.CyanString("gato")
	case catalog.KindDog:
		return color.YellowString("perro")
	default:
		return a.Kind
	}
}

func init() {
	animalsCmd.Flags().StringVar(&filterArea, "area", "", "filtrar por zona (substring del refugio)")
	animalsCmd.Flags().StringVar(&filterKind, "kind", "", "filtrar por especie: cat, dog, other")
	animalsCmd.Flags().StringVar(&filterSex, "sex", "", "filtrar por sexo: male, female, unknown")
	animalsCmd.Flags().BoolVar(&refresh, "refresh", false, "ignorar la cache local y refetchear")

	rootCmd.AddCommand(animalsCmd)
}
