package commands

import (
	"fmt"
	"os"

	menufig "github.com/FredHutch/menu-driven-figure"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	demoNCols int
	demoTheme string
	demoTitle string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the iris demo figure",
	Long: `Run an interactive demo: a small menu-driven figure over the iris
dataset, with a species dropdown, display options, and a title input.

Requires an interactive terminal.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&demoNCols, "ncols", 2, "Number of columns per parameter menu")
	demoCmd.Flags().StringVar(&demoTheme, "theme", "LUMEN", "Theme name (LUMEN, DARK, MONO)")
	demoCmd.Flags().StringVar(&demoTitle, "title", "Iris Explorer", "Application title")
	rootCmd.AddCommand(demoCmd)
}

// irisCounts is the stand-in dataset the demo render function reads.
var irisCounts = map[string]int{
	"setosa":     50,
	"versicolor": 50,
	"virginica":  50,
}

func demoSchema() *menufig.Schema {
	return &menufig.Schema{
		Menus: []menufig.Menu{
			{
				Label: "Display",
				Params: []menufig.ParamItem{
					{
						ElemID: "species",
						Type:   menufig.TypeDropdown,
						Label:  "Species",
						Value:  "virginica",
						Options: []menufig.Option{
							{Label: "Setosa", Value: "setosa"},
							{Label: "Versicolor", Value: "versicolor"},
							{Label: "Virginica", Value: "virginica"},
						},
					},
					{
						ElemID: "show-grid",
						Type:   menufig.TypeCheckbox,
						Label:  "Show grid",
						Value:  []any{menufig.Checked},
					},
					{
						ElemID:           "grid-width",
						Type:             menufig.TypeSlider,
						Label:            "Grid width",
						Value:            2,
						MinVal:           1,
						MaxVal:           5,
						Step:             1,
						Suffix:           "px",
						KeepWithPrevious: true,
						ShowIf: &menufig.RuleClause{
							Target: "show-grid",
							Values: []any{[]any{menufig.Checked}},
						},
					},
					{
						ElemID: "measures",
						Type:   menufig.TypeSelector,
						Label:  "Measures",
						Value:  []any{"petal_length"},
						Options: []menufig.Option{
							{Label: "Petal length", Value: "petal_length"},
							{Label: "Petal width", Value: "petal_width"},
							{Label: "Sepal length", Value: "sepal_length"},
							{Label: "Sepal width", Value: "sepal_width"},
						},
					},
				},
			},
		},
		Header: []menufig.ParamItem{
			{
				ElemID:    "title",
				Type:      menufig.TypeInput,
				Label:     "Title",
				Value:     "Iris",
				InputType: "text",
			},
		},
	}
}

// demoRender formats a text artifact from the current settings. A
// species missing from the dataset is a render error, demonstrating
// the notification path.
func demoRender(data any, settings menufig.Snapshot) (any, error) {
	counts := data.(map[string]int)
	species, _ := settings["species"].(string)
	n, ok := counts[species]
	if !ok {
		return nil, fmt.Errorf("no data for species %q", species)
	}
	title, _ := settings["title"].(string)
	return fmt.Sprintf("%s — %s (%d samples)", title, species, n), nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("demo requires an interactive terminal")
	}
	ui, err := menufig.NewUI(demoSchema(), menufig.Config{
		Title:   demoTitle,
		Product: "iris-demo",
		NCols:   demoNCols,
		Theme:   demoTheme,
		Data:    irisCounts,
		Render:  demoRender,
	})
	if err != nil {
		return err
	}
	return ui.Run()
}
