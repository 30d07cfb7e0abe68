// Package menu implements the interactive console explorer: a line-based
// numbered menu over a loaded listing set. It owns all prompting and raw-text
// validation; the store and analytics only ever see structured criteria.
//
// Filtering is cumulative: each round narrows the current set further and the
// only way back to the full dataset is the reload option. The session never
// terminates the process; Run returns and the command layer decides what to
// do next.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"stayscope/internal/dataprocessing"
	"stayscope/internal/exporter"
	"stayscope/pkg/contracts/domain"
)

// defaultPreviewRows bounds the listings preview when no limit is configured.
const defaultPreviewRows = 10

// ReloadFunc re-reads the dataset from its source. Narrowing-only filtering
// has no other way back to the unfiltered set.
type ReloadFunc func(ctx context.Context) (*domain.Dataset, error)

// Options configures a Session. Zero values fall back to stdin/stdout and
// the default preview size; a nil Reload disables the reload option.
type Options struct {
	Input       io.Reader
	Output      io.Writer
	PreviewRows int
	Reload      ReloadFunc
}

// Session drives the explorer over one loaded dataset. Not safe for
// concurrent use: the store contract requires callers to serialize filter
// calls, and a session is the single caller.
type Session struct {
	store       *dataprocessing.Store
	dataset     *domain.Dataset
	reload      ReloadFunc
	in          *bufio.Reader
	out         io.Writer
	previewRows int
	header      painter
	warn        painter
}

// NewSession creates a session over the given dataset.
func NewSession(dataset *domain.Dataset, opts Options) *Session {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = defaultPreviewRows
	}

	return &Session{
		store:       dataprocessing.NewStore(dataset.Listings),
		dataset:     dataset,
		reload:      opts.Reload,
		in:          bufio.NewReader(opts.Input),
		out:         opts.Output,
		previewRows: opts.PreviewRows,
		header:      headerPainter(opts.Output),
		warn:        warnPainter(opts.Output),
	}
}

// Run executes the menu loop until the user quits, input is exhausted, or
// the context is cancelled. EOF is a normal exit, so piped input scripts a
// session cleanly.
func (s *Session) Run(ctx context.Context) error {
	s.printBanner()
	s.printMenu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "\nstayscope> ")
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			continue
		}

		if done := s.dispatch(ctx, strings.ToLower(line)); done {
			return nil
		}
	}
}

// dispatch runs one menu choice. It reports true when the session is over.
func (s *Session) dispatch(ctx context.Context, choice string) bool {
	switch choice {
	case "1", "filter":
		s.runFilter()
	case "2", "stats":
		s.showStats(ctx)
	case "3", "extended":
		s.showExtendedStats(ctx)
	case "4", "hosts":
		s.showHosts(ctx)
	case "5", "listings":
		s.showListings()
	case "6", "export":
		s.runExport(ctx)
	case "7", "reload":
		s.runReload(ctx)
	case "8", "q", "quit", "exit":
		return true
	case "help", "h", "?", "menu":
		s.printMenu()
	default:
		s.warn.Fprintf(s.out, "unknown choice %q (try 1-8, or help)\n", choice)
	}
	return false
}

// runFilter prompts for the six bounds and narrows the current set.
func (s *Session) runFilter() {
	before := s.store.Len()
	fmt.Fprintln(s.out, "Bounds are inclusive and apply to the current set. Blank keeps a bound unset.")

	criteria := s.promptCriteria()
	s.store.Filter(criteria)

	after := s.store.Len()
	if criteria.IsZero() {
		fmt.Fprintf(s.out, "No bounds given, set unchanged (%s listings).\n", humanize.Comma(int64(after)))
		return
	}
	fmt.Fprintf(s.out, "Filtered %s listings down to %s.\n",
		humanize.Comma(int64(before)), humanize.Comma(int64(after)))
}

// runReload replaces the working set with a fresh load of the dataset.
func (s *Session) runReload(ctx context.Context) {
	if s.reload == nil {
		s.warn.Fprintln(s.out, "reload is not available for this session")
		return
	}

	dataset, err := s.reload(ctx)
	if err != nil {
		s.warn.Fprintf(s.out, "reload failed, keeping the current set: %v\n", err)
		return
	}

	s.dataset = dataset
	s.store = dataprocessing.NewStore(dataset.Listings)
	fmt.Fprintf(s.out, "Reloaded %s listings from %s.\n",
		humanize.Comma(int64(s.store.Len())), dataset.Source)
}

// runExport prompts for a view and a destination, then writes the view as
// pretty-printed JSON. Export failures are reported and the session keeps
// going.
func (s *Session) runExport(ctx context.Context) {
	view, err := s.promptLine("Export which view? (stats/hosts/listings): ")
	if err != nil {
		return
	}

	var payload interface{}
	switch strings.ToLower(view) {
	case "stats":
		payload = dataprocessing.ComputeStats(ctx, s.store.Listings())
	case "hosts":
		payload = dataprocessing.ComputeListingsByHost(ctx, s.store.Listings())
	case "listings":
		payload = s.store.Listings()
	case "":
		fmt.Fprintln(s.out, "Export cancelled.")
		return
	default:
		s.warn.Fprintf(s.out, "unknown view %q, expected stats, hosts or listings\n", view)
		return
	}

	path, err := s.promptLine("Destination path: ")
	if err != nil || path == "" {
		fmt.Fprintln(s.out, "Export cancelled.")
		return
	}

	if err := exporter.WriteJSON(ctx, path, payload); err != nil {
		s.warn.Fprintf(s.out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Wrote %s view to %s.\n", strings.ToLower(view), path)
}

// readLine reads one trimmed line. A final unterminated line is still
// delivered before EOF is reported.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// promptLine prints a prompt and reads the reply. EOF reads as an empty
// reply so half-finished scripts degrade to cancelled actions.
func (s *Session) promptLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return line, nil
}

func (s *Session) printBanner() {
	s.header.Fprintln(s.out, "stayscope explorer")
	source := s.dataset.Source
	if source == "" {
		source = "(in-memory dataset)"
	}
	fmt.Fprintf(s.out, "Dataset %s with %s listings.\n",
		source, humanize.Comma(int64(s.store.Len())))
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	s.header.Fprintln(s.out, "Choose an option:")
	fmt.Fprintln(s.out, "  1) filter     narrow the current set by price, rooms or review bounds")
	fmt.Fprintln(s.out, "  2) stats      listing count and average price per room")
	fmt.Fprintln(s.out, "  3) extended   price range, averages and distinct hosts")
	fmt.Fprintln(s.out, "  4) hosts      listings per host, most listings first")
	fmt.Fprintln(s.out, "  5) listings   preview the current set")
	fmt.Fprintln(s.out, "  6) export     write stats, hosts or listings as JSON")
	fmt.Fprintln(s.out, "  7) reload     reload the dataset from its source")
	fmt.Fprintln(s.out, "  8) quit")
}
