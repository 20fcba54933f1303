package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/lcharlick/beets-metalarchives/config"
	"github.com/lcharlick/beets-metalarchives/metalarchives"
)

func main() {
	godotenv.Load()

	app := &cli.App{
		Name:  "metalarchives",
		Usage: "query Metal Archives album metadata and lyrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"METALARCHIVES_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "gateway base URL",
				EnvVars: []string{"METALARCHIVES_BASE_URL"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "search albums by item selectors",
				ArgsUsage: "[artist:NAME] [album:TITLE] [year:YYYY] [free text...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "lyrics",
						Usage: "also fetch lyrics for every matched track",
					},
				},
				Action: runSearch,
			},
			{
				Name:      "lookup",
				Usage:     "fetch a single album by its prefixed id (e.g. ma-825)",
				ArgsUsage: "ID",
				Action:    runLookup,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newClient(c *cli.Context) (*metalarchives.Client, *metalarchives.Mapper, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if base := c.String("base-url"); base != "" {
		cfg.BaseURL = base
	}

	level := hclog.Warn
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{Name: "metalarchives", Level: level})

	client := metalarchives.NewClient(logger, metalarchives.ClientOptions{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		RateLimit: cfg.RateLimit,
	})
	return client, metalarchives.NewMapper(client.BaseURL()), nil
}

// parseSelectors splits query arguments into field selectors. Bare words
// accumulate into the album title.
func parseSelectors(args []string) (artist, album string, year int) {
	var free []string
	for _, arg := range args {
		field, value, found := strings.Cut(arg, ":")
		if !found {
			free = append(free, arg)
			continue
		}
		switch field {
		case "artist", "band":
			artist = value
		case "album", "title":
			album = value
		case "year":
			year, _ = strconv.Atoi(value)
		default:
			free = append(free, arg)
		}
	}
	if album == "" {
		album = strings.Join(free, " ")
	}
	return artist, album, year
}

func runSearch(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("search requires at least one selector", 2)
	}
	client, mapper, err := newClient(c)
	if err != nil {
		return err
	}

	artist, album, year := parseSelectors(c.Args().Slice())
	results, err := client.SearchAlbums(c.Context, album, artist,
		metalarchives.SearchOptions{Year: year})
	if err != nil {
		if errors.Is(err, metalarchives.ErrNoResults) {
			fmt.Println("no results")
			return nil
		}
		return err
	}

	for _, result := range results {
		full, err := client.Album(c.Context, strconv.FormatInt(result.AlbumID, 10))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", result.Title, err)
			continue
		}
		printAlbum(mapper, full)
		if c.Bool("lyrics") {
			printLyrics(c.Context, client, full)
		}
	}
	return nil
}

func runLookup(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("lookup requires exactly one id", 2)
	}
	id, ok := metalarchives.StripIDPrefix(c.Args().First())
	if !ok {
		return cli.Exit(fmt.Sprintf("%q does not carry the %q source prefix",
			c.Args().First(), metalarchives.IDPrefix), 2)
	}

	client, mapper, err := newClient(c)
	if err != nil {
		return err
	}
	album, err := client.Album(c.Context, id)
	if err != nil {
		if errors.Is(err, metalarchives.ErrNotFound) {
			fmt.Println("not found")
			return nil
		}
		return err
	}
	printAlbum(mapper, album)
	return nil
}

func printAlbum(mapper *metalarchives.Mapper, album *metalarchives.Album) {
	info := mapper.AlbumInfo(album)
	fmt.Printf("%s - %s (%s, %d) [%s] %s\n",
		info.Artist, info.Title, info.AlbumType, info.Year, info.Country, info.AlbumID)
	for _, track := range info.Tracks {
		fmt.Printf("  %2d. %s (%s)\n", track.Index, track.Title, track.TrackID)
	}
}

func printLyrics(ctx context.Context, client *metalarchives.Client, album *metalarchives.Album) {
	for _, track := range album.Tracks {
		text, err := client.Lyrics(ctx, strconv.FormatInt(track.ID, 10))
		if err != nil {
			if !errors.Is(err, metalarchives.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "lyrics for %q: %v\n", track.Title, err)
			}
			continue
		}
		fmt.Printf("\n--- %s ---\n%s\n", track.Title, text)
	}
}
