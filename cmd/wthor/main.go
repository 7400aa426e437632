package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bodgit/wthor/database"
	"github.com/bodgit/wthor/download"
	"github.com/bodgit/wthor/wthor"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// firstYear is the earliest year published on the WTHOR site
const firstYear = 1977

var logger = zap.NewNop()

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableStacktrace = true
	return config.Build()
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(true)
	return table
}

func readFile(path string) (wthor.File, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := wthor.Decode(path, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("decoded", zap.String("file", path), zap.Stringer("kind", f.Kind()), zap.Int("records", f.Len()))

	return f, nil
}

func formatDate(d wthor.Date) string {
	return fmt.Sprintf("%02d%02d-%02d-%02d", d.Century, d.Year, d.Month, d.Day)
}

// formatMove renders an 8x8 move as a square such as f5, anything that
// isn't a square is shown as a number
func formatMove(m byte) string {
	row, column := m/10, m%10
	if row < 1 || row > 8 || column < 1 || column > 8 {
		return strconv.Itoa(int(m))
	}
	return fmt.Sprintf("%c%d", 'a'+column-1, row)
}

func formatMoves(moves []byte, square bool) string {
	s := make([]string, len(moves))
	for i, m := range moves {
		if square {
			s[i] = formatMove(m)
		} else {
			s[i] = strconv.Itoa(int(m))
		}
	}
	return strings.Join(s, " ")
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := readFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	table := newTable()

	table.Append([]string{"Type:", f.Kind().String()})

	switch v := f.(type) {
	case *wthor.Jou:
		table.Append([]string{"Created:", formatDate(v.Created)})
	case *wthor.Trn:
		table.Append([]string{"Created:", formatDate(v.Created)})
	case *wthor.Wtb:
		table.Append([]string{"Created:", formatDate(v.Created)})
		table.Append([]string{"Year:", strconv.Itoa(int(v.Year))})
		table.Append([]string{"Depth:", strconv.Itoa(int(v.Depth()))})
	case *wthor.Wtb10:
		table.Append([]string{"Created:", formatDate(v.Created)})
		table.Append([]string{"Year:", strconv.Itoa(int(v.Year))})
		table.Append([]string{"Depth:", strconv.Itoa(int(v.Depth()))})
	}

	table.Append([]string{"Records:", strconv.Itoa(f.Len())})
	table.Append([]string{"Size:", strconv.Itoa(f.Size())})

	table.Render()

	return nil
}

// names loads an optional names file so indices can be resolved
func names(path string) (func(uint16) string, error) {
	var list []string

	if path != "" {
		f, err := readFile(path)
		if err != nil {
			return nil, err
		}

		switch v := f.(type) {
		case *wthor.Jou:
			for _, n := range v.Players {
				list = append(list, n.String())
			}
		case *wthor.Trn:
			for _, n := range v.Tournaments {
				list = append(list, n.String())
			}
		default:
			return nil, fmt.Errorf("%s: not a names file", path)
		}
	}

	return func(i uint16) string {
		if int(i) < len(list) {
			return list[i]
		}
		return strconv.Itoa(int(i))
	}, nil
}

func gameRow(i int, g wthor.GameInfo, moves string, tournament, player func(uint16) string) []string {
	return []string{
		strconv.Itoa(i),
		tournament(g.Tournament),
		player(g.BlackPlayer),
		player(g.WhitePlayer),
		strconv.Itoa(int(g.Score)),
		strconv.Itoa(int(g.TheoreticalScore)),
		moves,
	}
}

func list(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := readFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	player, err := names(c.String("players"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	tournament, err := names(c.String("tournaments"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")

	switch v := f.(type) {
	case *wthor.Jou:
		table.SetHeader([]string{"Index", "Player"})
		for i, n := range v.Players {
			table.Append([]string{strconv.Itoa(i), n.String()})
		}
	case *wthor.Trn:
		table.SetHeader([]string{"Index", "Tournament"})
		for i, n := range v.Tournaments {
			table.Append([]string{strconv.Itoa(i), n.String()})
		}
	case *wthor.Wtb:
		table.SetHeader([]string{"Index", "Tournament", "Black", "White", "Score", "Theoretical", "Moves"})
		for i, g := range v.Games {
			table.Append(gameRow(i, g.GameInfo, formatMoves(g.Moves.List(), true), tournament, player))
		}
	case *wthor.Wtb10:
		table.SetHeader([]string{"Index", "Tournament", "Black", "White", "Score", "Theoretical", "Moves"})
		for i, g := range v.Games {
			table.Append(gameRow(i, g.GameInfo, formatMoves(g.Moves.List(), false), tournament, player))
		}
	}

	table.Render()

	return nil
}

// years returns the requested years in order, each at most once
func years(requested []int, since, until int) []int {
	seen := make(map[int]bool)
	var result []int

	add := func(y int) {
		if !seen[y] {
			seen[y] = true
			result = append(result, y)
		}
	}

	for _, y := range requested {
		add(y)
	}
	if since > 0 {
		for y := since; y <= until; y++ {
			add(y)
		}
	}

	sort.Ints(result)

	return result
}

// saveFiles downloads each file concurrently into dir. Anything that
// doesn't decode is not saved
func saveFiles(ctx context.Context, d *download.Downloader, dir string, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range files {
		name := name
		g.Go(func() error {
			b, err := d.Fetch(ctx, name)
			if err != nil {
				return err
			}

			if _, err := wthor.Decode(name, b); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			if err := ioutil.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
				return err
			}

			logger.Info("saved", zap.String("file", name), zap.Int("bytes", len(b)))

			return nil
		})
	}

	return g.Wait()
}

func fetch(c *cli.Context) error {
	d := download.New(download.WithBaseURL(c.String("base-url")), download.WithLogger(logger))

	files := []string{wthor.JouFileName, wthor.TrnFileName}
	for _, y := range years(c.IntSlice("year"), c.Int("since"), time.Now().Year()) {
		files = append(files, wthor.WtbFileName(y))
	}

	if err := saveFiles(c.Context, d, c.String("directory"), files); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func importFiles(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := database.NewDatabase(c.String("database"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, path := range c.Args().Slice() {
		if err = importFile(db, path); err != nil {
			break
		}
	}

	if err = multierr.Append(err, db.Close()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func importFile(db *database.Database, path string) error {
	f, err := readFile(path)
	if err != nil {
		return err
	}

	switch v := f.(type) {
	case *wthor.Jou:
		err = db.ImportJou(v)
	case *wthor.Trn:
		err = db.ImportTrn(v)
	case *wthor.Wtb:
		err = db.ImportWtb(v)
	default:
		logger.Warn("skipping unsupported file", zap.String("file", path), zap.Stringer("kind", f.Kind()))
		return nil
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("imported", zap.String("file", path), zap.Int("records", f.Len()))

	return nil
}

func find(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := database.NewDatabase(c.String("database"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	games, err := db.FindGamesByPlayer(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")

	table.SetHeader([]string{"Year", "Tournament", "Black", "White", "Score", "Theoretical", "Moves"})
	for _, g := range games {
		table.Append([]string{
			strconv.Itoa(g.Year),
			g.Tournament,
			g.BlackPlayer,
			g.WhitePlayer,
			strconv.Itoa(g.Score),
			strconv.Itoa(g.TheoreticalScore),
			formatMoves(g.Moves, true),
		})
	}

	table.Render()

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "wthor"
	app.Usage = "WTHOR Othello database utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		l, err := newLogger(c.Bool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	app.After = func(c *cli.Context) error {
		_ = logger.Sync()
		return nil
	}

	databaseFlag := &cli.StringFlag{
		Name:     "database",
		Aliases:  []string{"d"},
		Usage:    "SQLite database `FILE`",
		EnvVars:  []string{"WTHOR_DATABASE"},
		Required: true,
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Info on a WTHOR file",
			Description: "",
			Action:      info,
		},
		{
			Name:        "list",
			Usage:       "List the records in a WTHOR file",
			Description: "",
			Action:      list,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "players",
					Usage: "resolve player names using `FILE`",
				},
				&cli.StringFlag{
					Name:  "tournaments",
					Usage: "resolve tournament names using `FILE`",
				},
			},
		},
		{
			Name:        "download",
			Usage:       "Download the WTHOR files",
			Description: "The player and tournament files are always downloaded along with the games for any requested years",
			Action:      fetch,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "directory",
					Aliases: []string{"d"},
					Usage:   "output directory",
					Value:   cwd,
				},
				&cli.StringFlag{
					Name:    "base-url",
					Usage:   "download from `URL`",
					EnvVars: []string{"WTHOR_BASE_URL"},
					Value:   download.DefaultBaseURL,
				},
				&cli.IntSliceFlag{
					Name:  "year",
					Usage: "download games played in `YEAR`",
				},
				&cli.IntFlag{
					Name:  "since",
					Usage: "download games played in every year from `YEAR`, " + strconv.Itoa(firstYear) + " is the first",
				},
			},
		},
		{
			Name:        "import",
			Usage:       "Import WTHOR files into a database",
			Description: "",
			Action:      importFiles,
			Flags:       []cli.Flag{databaseFlag},
		},
		{
			Name:        "find",
			Usage:       "Find the games played by a player in a database",
			Description: "",
			Action:      find,
			Flags:       []cli.Flag{databaseFlag},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
