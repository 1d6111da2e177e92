package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alimnaqvi/etf-analyzer"
	"github.com/alimnaqvi/etf-analyzer/mstar"
	"github.com/google/subcommands"
)

// importHoldingsCmd fills the holdings cache from raw Morningstar JSON
// documents.
type importHoldingsCmd struct {
	cacheDir string
	slug     string
}

func (*importHoldingsCmd) Name() string { return "import-holdings" }
func (*importHoldingsCmd) Synopsis() string {
	return "normalize raw Morningstar holdings JSON into the cache"
}
func (*importHoldingsCmd) Usage() string {
	return `etfa import-holdings [-cache <dir>] [-slug <slug>] <file.json>...

  Reads raw Morningstar holdings documents and writes one normalized CSV per
  fund into the holdings cache, named after the fund's slug. Without -slug,
  the slug is derived from each file's base name.
`
}

func (c *importHoldingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cacheDir, "cache", defaultCacheDir, "Directory holding one holdings CSV per fund slug.")
	f.StringVar(&c.slug, "slug", "", "Cache slug for the fund. Only valid with a single input file.")
}

func (c *importHoldingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one holdings JSON file is required")
		return subcommands.ExitUsageError
	}
	if c.slug != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: -slug cannot name more than one file")
		return subcommands.ExitUsageError
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return fail(fmt.Errorf("cannot create cache directory %s: %w", c.cacheDir, err))
	}

	for _, path := range f.Args() {
		slug := c.slug
		if slug == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			slug = analyzer.Slugify(base)
		}
		if err := importHoldings(path, filepath.Join(c.cacheDir, slug+".csv")); err != nil {
			return fail(err)
		}
		fmt.Printf("Cached holdings for %q\n", slug)
	}

	return subcommands.ExitSuccess
}

func importHoldings(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open holdings document %q: %w", src, err)
	}
	defer f.Close()

	holdings, err := mstar.DecodeHoldings(f)
	if err != nil {
		return fmt.Errorf("cannot normalize %q: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create cache file %q: %w", dst, err)
	}
	if err := mstar.EncodeCache(out, holdings); err != nil {
		out.Close()
		return fmt.Errorf("cannot write cache file %q: %w", dst, err)
	}
	return out.Close()
}
