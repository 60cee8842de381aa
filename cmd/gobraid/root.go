package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2x3systems/gobraid/garside"
	"github.com/2x3systems/gobraid/libbraid"
	"github.com/2x3systems/gobraid/libbraid/catalog"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// session is the state shared by all subcommands once flags and config are resolved.
type session struct {
	configPath string
	cfg        Config
	flags      Config
}

func newRootCmd() *cobra.Command {
	sess := &session{}

	root := &cobra.Command{
		Use:          "gobraid",
		Short:        "gobraid computes normal forms and conjugacy invariants of braids",
		Long:         `gobraid works in the braid group on n strands using either the Artin or the band (BKL) Garside structure.`,
		Version:      libbraidVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return sess.resolve(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&sess.configPath, "config", "", "TOML config file")
	flags.StringVarP(&sess.flags.Presentation, "pres", "p", libbraid.PresArtin, "presentation: artin or band")
	flags.IntVarP(&sess.flags.Index, "index", "n", 4, "number of strands")
	flags.StringVar(&sess.flags.Catalog, "catalog", "", "class catalog db path")
	flags.IntVar(&sess.flags.MaxSummit, "max-summit", 0, "largest USS the catalog accepts (0 for no limit)")
	flags.IntVarP(&sess.flags.Verbosity, "verbosity", "v", 0, "log verbosity")
	flags.BoolVar(&sess.flags.Sliding, "sliding", false, "check the sliding circuit before the USS when classifying")

	root.AddCommand(
		sess.newLCFCmd(),
		sess.newRCFCmd(),
		sess.newConjCmd(),
		sess.newTypeCmd(),
		sess.newCentralizerCmd(),
		sess.newUSSCmd(),
		sess.newCatalogCmd(),
		newRunCmd(),
	)
	return root
}

const libbraidVersion = "v1.2024.1"

// resolve loads the config file then applies any flags given explicitly.
func (sess *session) resolve(cmd *cobra.Command) error {
	cfg, err := LoadConfig(sess.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("pres") {
		cfg.Presentation = sess.flags.Presentation
	}
	if flags.Changed("index") {
		cfg.Index = sess.flags.Index
	}
	if flags.Changed("catalog") {
		cfg.Catalog = sess.flags.Catalog
	}
	if flags.Changed("max-summit") {
		cfg.MaxSummit = sess.flags.MaxSummit
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = sess.flags.Verbosity
	}
	if flags.Changed("sliding") {
		cfg.Sliding = sess.flags.Sliding
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	gLogFlags.Set("v", strconv.Itoa(cfg.Verbosity))
	sess.cfg = cfg
	return nil
}

func (sess *session) braid(text string) (*libbraid.Braid, error) {
	pres, err := libbraid.NewPresentation(sess.cfg.Presentation, sess.cfg.Index)
	if err != nil {
		return nil, err
	}
	return libbraid.ParseBraid(pres, text)
}

// word parses text as a signed Artin word in the configured presentation.
func (sess *session) word(text string) ([]int, error) {
	pres, err := libbraid.NewPresentation(sess.cfg.Presentation, sess.cfg.Index)
	if err != nil {
		return nil, err
	}
	return libbraid.ParseWord(pres, text)
}

// formatWord renders a word so that it parses back.
func formatWord(word []int) string {
	parts := make([]string, len(word))
	for i, gi := range word {
		parts[i] = strconv.Itoa(gi)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func wordsArg(args []string) string {
	return strings.Join(args, " ")
}

func (sess *session) newLCFCmd() *cobra.Command {
	var opts garside.PrintOpts
	cmd := &cobra.Command{
		Use:   "lcf WORD",
		Short: "print the left canonical form of a braid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			B, err := sess.braid(wordsArg(args))
			if err != nil {
				return err
			}
			B.WriteAsString(cmd.OutOrStdout(), opts)
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Tables, "tables", false, "print factors as permutation tables")
	cmd.Flags().BoolVar(&opts.Word, "word", false, "append the full signed word")
	return cmd
}

func (sess *session) newRCFCmd() *cobra.Command {
	var opts garside.PrintOpts
	cmd := &cobra.Command{
		Use:   "rcf WORD",
		Short: "print the right canonical form of a braid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			B, err := sess.braid(wordsArg(args))
			if err != nil {
				return err
			}
			B.RCF().WriteAsString(cmd.OutOrStdout(), opts)
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Tables, "tables", false, "print factors as permutation tables")
	return cmd
}

func (sess *session) newConjCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conj WORD1 WORD2",
		Short: "decide whether two braids are conjugate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			B1, err := sess.braid(args[0])
			if err != nil {
				return err
			}
			B2, err := sess.braid(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ok, C := libbraid.AreConjugate(B1, B2)
			fmt.Fprintf(out, "conjugate: %v\n", ok)
			if ok {
				fmt.Fprintf(out, "conjugator: %s\n", formatWord(C.Word()))
			}
			return nil
		},
	}
}

func (sess *session) newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type WORD",
		Short: "print the Nielsen-Thurston type of a braid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			B, err := sess.braid(wordsArg(args))
			if err != nil {
				return err
			}
			tt := libbraid.ThurstonTypeWithOpts(B, libbraid.ClassifyOpts{Sliding: sess.cfg.Sliding})
			fmt.Fprintln(cmd.OutOrStdout(), tt)
			return nil
		},
	}
}

func (sess *session) newCentralizerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "centralizer WORD",
		Short: "print generators of the centralizer of a braid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			B, err := sess.braid(wordsArg(args))
			if err != nil {
				return err
			}
			for _, G := range libbraid.Centralizer(B) {
				fmt.Fprintln(cmd.OutOrStdout(), formatWord(G.Word()))
			}
			return nil
		},
	}
}

func (sess *session) newUSSCmd() *cobra.Command {
	var (
		list bool
		lsm  bool
	)
	cmd := &cobra.Command{
		Use:   "uss WORD",
		Short: "compute the ultra summit set of a braid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			B, err := sess.braid(wordsArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info := libbraid.Describe(B, libbraid.ClassifyOpts{Sliding: sess.cfg.Sliding})
			fmt.Fprintf(out, "inf: %d\ncl: %d\ntype: %v\norbits: %d\nsize: %d\nrigidity: %d\n",
				info.Inf, info.CL, info.Type, info.OrbitCount, info.USSSize, info.Rigidity)

			if lsm {
				set := libbraid.NewLSMBraidSet()
				sss := libbraid.SSSWithSet(B, set)
				set.Close()
				fmt.Fprintf(out, "sss: %d\n", len(sss))
			}

			if list {
				for i, orbit := range info.USS.Orbits {
					for j, Y := range orbit {
						Y.WriteAsString(out, garside.PrintOpts{Label: fmt.Sprintf("%d.%d", i, j)})
						fmt.Fprintln(out)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every USS element by orbit")
	cmd.Flags().BoolVar(&lsm, "lsm", false, "also compute the SSS using an LSM-backed dedupe set")
	return cmd
}

func (sess *session) openCatalog(readOnly bool) (garside.CatalogContext, garside.Catalog, error) {
	ctx := garside.NewCatalogContext()
	cat, err := catalog.OpenCatalog(ctx, garside.CatalogOpts{
		DbPathName:   sess.cfg.Catalog,
		ReadOnly:     readOnly,
		Presentation: sess.cfg.Presentation,
		MaxSummit:    sess.cfg.MaxSummit,
	})
	if err != nil {
		ctx.Close()
		return nil, nil, err
	}
	return ctx, cat, nil
}

func closeCatalog(ctx garside.CatalogContext) {
	ctx.Close()
	<-ctx.Done()
}

func printRecord(out io.Writer, rec *garside.ClassRecord) {
	fmt.Fprintf(out, "%v\t%v\tinf=%d cl=%d uss=%d\t%s\n",
		rec.ClassID(), rec.ThurstonType(), rec.Inf, rec.CanonicalLength, rec.SummitSize, formatWord(rec.Representative()))
}

func (sess *session) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "add braid conjugacy classes to a catalog or look them up",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add WORD...",
		Short: "add the class of each word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cat, err := sess.openCatalog(false)
			if err != nil {
				return err
			}
			defer closeCatalog(ctx)

			for _, text := range args {
				word, err := sess.word(text)
				if err != nil {
					return err
				}
				rec, added, err := cat.TryAddClass(sess.cfg.Index, word)
				if err != nil {
					return err
				}
				klog.V(1).Infof("%s: added=%v", text, added)
				printRecord(cmd.OutOrStdout(), rec)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup WORD",
		Short: "print the class containing a word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cat, err := sess.openCatalog(sess.cfg.Catalog != "")
			if err != nil {
				return err
			}
			defer closeCatalog(ctx)

			word, err := sess.word(wordsArg(args))
			if err != nil {
				return err
			}
			rec, err := cat.LookupClass(sess.cfg.Index, word)
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "print every catalogued class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cat, err := sess.openCatalog(sess.cfg.Catalog != "")
			if err != nil {
				return err
			}
			defer closeCatalog(ctx)

			return cat.ForEachClass(func(rec *garside.ClassRecord) bool {
				printRecord(cmd.OutOrStdout(), rec)
				return true
			})
		},
	})

	return cmd
}
