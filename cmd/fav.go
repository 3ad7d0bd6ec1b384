package cmd

import (
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/task"
)

func openFavorites() (*task.Favorites, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return task.NewFavorites(dir)
}

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "List favorite task texts for quick re-adding",
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := openFavorites()
		if err != nil {
			return err
		}
		list, err := favs.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			cmd.Println("No favorites yet. Save one with 'lapwing fav add \"...\"'.")
			return nil
		}
		for i, f := range list {
			cmd.Printf("  %2d. %s\n", i+1, f)
		}
		return nil
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Save a task text as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := openFavorites()
		if err != nil {
			return err
		}
		if err := favs.Add(args[0]); err != nil {
			return err
		}
		cmd.Println("Favorite saved.")
		return nil
	},
}

var favRmCmd = &cobra.Command{
	Use:   "rm <text>",
	Short: "Remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := openFavorites()
		if err != nil {
			return err
		}
		removed, err := favs.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			cmd.Println("No such favorite.")
			return nil
		}
		cmd.Println("Favorite removed.")
		return nil
	},
}

func init() {
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRmCmd)
	rootCmd.AddCommand(favCmd)
}
