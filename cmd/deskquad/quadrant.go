package main

import (
	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/spf13/cobra"
)

var quadrantCmd = &cobra.Command{
	Use:   "quadrant [TL|TR|BL|BR]...",
	Short: "Print quadrant rectangles for the primary work area",
	Long:  "Print quadrant rectangles. Without arguments all four quadrants and the full slot are printed. --area computes against an explicit work area instead of the primary monitor.",
	RunE:  runQuadrant,
}

func init() {
	rootCmd.AddCommand(quadrantCmd)
	quadrantCmd.Flags().String("area", "", "Work area as left,top,right,bottom")
	quadrantCmd.Flags().Float64("fill", 0, "Fill ratio in (0,1] (default from config)")
	quadrantCmd.Flags().Float64("margin", -1, "Edge margin ratio in [0,0.5) (default from config)")
}

// slotOutput is one printed rectangle.
type slotOutput struct {
	Quadrant string        `yaml:"quadrant" json:"quadrant"`
	Rect     geometry.Rect `yaml:"rect" json:"rect"`
}

// quadrantOutput is the printed layout.
type quadrantOutput struct {
	WorkArea geometry.WorkArea `yaml:"workArea" json:"workArea"`
	Slots    []slotOutput      `yaml:"slots" json:"slots"`
}

// runQuadrant computes and prints the requested slots.
func runQuadrant(cmd *cobra.Command, args []string) error {
	fill, _ := cmd.Flags().GetFloat64("fill")
	if !cmd.Flags().Changed("fill") {
		fill = env.cfg.FillRatio
	}
	margin, _ := cmd.Flags().GetFloat64("margin")
	if !cmd.Flags().Changed("margin") {
		margin = env.cfg.EdgeMarginRatio
	}

	var (
		area geometry.WorkArea
		err  error
	)
	if raw, _ := cmd.Flags().GetString("area"); raw != "" {
		area, err = parseArea(raw)
	} else {
		area, err = monitor.PrimaryWorkArea()
	}
	if err != nil {
		return err
	}

	out, err := layout(area, args, fill, margin)
	if err != nil {
		return err
	}
	return printOut(out)
}

// layout computes the named quadrants, or every slot when names is empty.
func layout(area geometry.WorkArea, names []string, fill, margin float64) (quadrantOutput, error) {
	out := quadrantOutput{WorkArea: area}
	quads := geometry.Quadrants
	if len(names) > 0 {
		quads = nil
		for _, name := range names {
			q, err := geometry.ParseQuadrant(name)
			if err != nil {
				return quadrantOutput{}, err
			}
			quads = append(quads, q)
		}
	}
	for _, q := range quads {
		r, err := geometry.QuadrantRect(area, q, fill, margin)
		if err != nil {
			return quadrantOutput{}, err
		}
		out.Slots = append(out.Slots, slotOutput{Quadrant: q.String(), Rect: r})
	}
	if len(names) == 0 {
		r, err := geometry.FullRect(area, fill, margin)
		if err != nil {
			return quadrantOutput{}, err
		}
		out.Slots = append(out.Slots, slotOutput{Quadrant: "FULL", Rect: r})
	}
	return out, nil
}
