// Command contentctl checks and inspects the course library.
//
// Usage:
//
//	contentctl validate [--dir path]
//	contentctl courses [--category id]
//	contentctl exam sample <exam-id> [--n 10] [--seed 1]
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"elec-mate/content"
	"elec-mate/quiz"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string
	root := &cobra.Command{
		Use:          "contentctl",
		Short:        "Validate and inspect course, quiz and exam content",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "content directory (default: embedded library)")

	load := func() (*content.Library, error) {
		if dir == "" {
			return content.LoadEmbedded()
		}
		return content.LoadDir(dir)
	}

	root.AddCommand(newValidateCmd(load), newCoursesCmd(load), newExamCmd(load))
	return root
}

type loader func() (*content.Library, error)

func newValidateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the library and report every validation problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			questions := 0
			for _, c := range lib.Courses {
				for _, m := range c.Modules {
					for _, s := range m.Sections {
						questions += len(s.Checks) + len(s.Quiz)
					}
				}
			}
			for _, e := range lib.Exams {
				questions += len(e.Questions)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d categories, %d courses, %d exams, %d guides, %d questions\n",
				len(lib.Categories), len(lib.Courses), len(lib.Exams), len(lib.Guides), questions)
			return nil
		},
	}
}

func newCoursesCmd(load loader) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses with their sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COURSE\tCATEGORY\tSECTION\tPATH")
			for _, c := range lib.CoursesIn(category) {
				for _, m := range c.Modules {
					for _, s := range m.Sections {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Category, s.Title, content.SectionPath(c.ID, s.ID))
					}
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list courses in this category")
	return cmd
}

func newExamCmd(load loader) *cobra.Command {
	exam := &cobra.Command{
		Use:   "exam",
		Short: "Mock exam tools",
	}

	var (
		n    int
		seed uint64
	)
	sample := &cobra.Command{
		Use:   "sample <exam-id>",
		Short: "Draw a balanced question set the way the exam endpoint does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			e, err := lib.Exam(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			if n <= 0 {
				n = e.TotalQuestions
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			picked := quiz.SelectBalanced(e.Questions, n, e.Categories, rand.New(rand.NewPCG(seed, seed)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d of %d questions, pass at %d%%, %s\n",
				e.Title, len(picked), len(e.Questions), e.PassThreshold, e.Duration())
			for i, q := range picked {
				fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, q.Category, q.Question)
			}
			return nil
		},
	}
	sample.Flags().IntVar(&n, "n", 0, "number of questions (default: the exam's configured total)")
	sample.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: time based)")

	exam.AddCommand(sample)
	return exam
}
