package main

import (
	"fmt"

	"github.com/frudas24/deskquad/internal/window"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "List windows matching any of the given criteria",
	Long:  "List top-level windows. A window is listed when any criterion matches; --min-width and --min-height filter the matches. --all lists every visible window.",
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	addCriteriaFlags(findCmd)
	findCmd.Flags().Bool("all", false, "List every visible top-level window")
}

// runFind prints matching windows.
func runFind(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	finder := a.Finder()

	var handles []window.Handle
	if all, _ := cmd.Flags().GetBool("all"); all {
		if handles, err = finder.Enumerate(); err != nil {
			return err
		}
	} else {
		c, err := criteriaFromFlags(cmd)
		if err != nil {
			return err
		}
		if c.IsZero() {
			return fmt.Errorf("no criteria given (use --pid, --class, --title, --image, --session, --explorer or --all)")
		}
		handles = finder.Find(c)
	}
	return printOut(finder.DescribeAll(handles))
}
