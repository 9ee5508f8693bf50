// Command finder queries a running recipe finder service.
//
//	finder -prefs vegetarian,quick "eggs, rice, soy sauce"
//	finder -favorites
//	finder -toggle 11
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"recipe-finder/internal/api/client"
	"recipe-finder/internal/core/recipe"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "finder:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("finder", flag.ContinueOnError)
	fs.SetOutput(out)

	server := fs.String("server", envOr("FINDER_SERVER", "http://localhost:8080"), "recipe finder service URL")
	prefs := fs.String("prefs", "", "comma separated dietary preferences")
	listFavorites := fs.Bool("favorites", false, "list saved favorites")
	toggle := fs.String("toggle", "", "toggle the favorite state of a recipe id")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	c := client.New(*server)

	switch {
	case *listFavorites:
		list, err := c.Favorites(ctx)
		if err != nil {
			return err
		}
		printFavorites(out, list)
		return nil
	case *toggle != "":
		favorite, err := c.ToggleFavorite(ctx, *toggle)
		if err != nil {
			return err
		}
		if favorite {
			fmt.Fprintf(out, "Recipe %s added to favorites\n", *toggle)
		} else {
			fmt.Fprintf(out, "Recipe %s removed from favorites\n", *toggle)
		}
		return nil
	}

	input := strings.Join(fs.Args(), ", ")
	if strings.TrimSpace(input) == "" {
		return errors.New(`no ingredients given, try: finder "eggs, rice"`)
	}

	result, err := c.Match(ctx, input, splitList(*prefs))
	if err != nil {
		return err
	}
	printMatch(out, result)
	return nil
}

func printMatch(out io.Writer, result *client.MatchResult) {
	fmt.Fprintf(out, "Ingredients: %s\n", strings.Join(result.Ingredients, ", "))

	if len(result.FullMatches) > 0 {
		fmt.Fprintln(out, "\nYou can make:")
		for _, r := range result.FullMatches {
			fmt.Fprintf(out, "  %s  [%s]\n", r.Name, r.ID)
		}
	}
	if len(result.PartialMatches) > 0 {
		fmt.Fprintln(out, "\nAlmost there:")
		for _, r := range result.PartialMatches {
			fmt.Fprintf(out, "  %s  %d%%  [%s]  missing: %s\n", r.Name, r.MatchPercentage, r.ID, strings.Join(r.MissingIngredients, ", "))
		}
	}
	if result.Suggestion != nil {
		fmt.Fprintf(out, "\nNo recipes found. Try this instead:\n  %s (%s): %s\n",
			result.Suggestion.Name, result.Suggestion.Category, strings.Join(result.Suggestion.Ingredients, ", "))
	}
	if len(result.FullMatches) == 0 && len(result.PartialMatches) == 0 && result.Suggestion == nil {
		fmt.Fprintln(out, "\nNo recipes found. Try different ingredients or adjust your preferences.")
	}
}

func printFavorites(out io.Writer, list []recipe.Recipe) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return
	}
	for _, r := range list {
		fmt.Fprintf(out, "  %s  [%s]\n", r.Name, r.ID)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
