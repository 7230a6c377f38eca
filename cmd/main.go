package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quotenest/internal/cli/scheme/colours"
	"quotenest/internal/config"
	"quotenest/internal/logging"
	"quotenest/internal/nest"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "quotenest",
		Short: "Guess who said it",
		Long: `
QuoteNest scrapes quotes and their authors from quotes.toscrape.com,
keeps them in a local cache and quizzes you on who said what.
		`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a quotenest.yaml config file")

	// The app needs the config, which is only known once flags are parsed.
	var app *nest.QuoteNest
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if _, err := logging.Setup(cfg.Log); err != nil {
			return err
		}
		log := logrus.StandardLogger()

		source, err := nest.NewSource(cfg, log)
		if err != nil {
			return err
		}
		app = nest.NewQuoteNest(cfg, source, os.Stdin, os.Stdout, log)

		// Setup signal handling for graceful shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-sigChan
			app.Cancel()
			app.Stop()
			fmt.Println("\n" + colours.Warning.Sprint("Goodbye!"))
			os.Exit(0)
		}()
		return nil
	}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		app.ShowWelcome(cmd, args)
		return nil
	}

	// Play command
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Guess who said a random quote",
		Long:  "Load the quotes, scraping them on first use, and start the guessing game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Play(cmd, args)
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the scraped quotes",
		Long:  "Display every quote in the local cache, scraping them on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ListQuotes(cmd, args)
		},
	}

	// Add flags
	playCmd.Flags().BoolP("speak", "s", false, "Read each quote aloud")
	listCmd.Flags().StringP("author", "a", "", "Filter by author name")

	rootCmd.AddCommand(playCmd, listCmd)

	nest.AddCacheCommands(rootCmd, func() *nest.QuoteNest { return app })

	err := rootCmd.Execute()
	if app != nil {
		app.Close()
	}
	if err != nil {
		colours.Error.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
