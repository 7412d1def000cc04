package cli

import (
	"fmt"
)

func runStats(args []string, gf globalFlags) error {
	client := newClient(gf)
	dash, err := client.Dashboard()
	if err != nil {
		return fmt.Errorf("fetch dashboard: %w", err)
	}

	if gf.pretty {
		printDashboard(dash)
	} else {
		printJSON(dash)
	}
	return nil
}

func runVocab(args []string, gf globalFlags) error {
	client := newClient(gf)
	vocab, err := client.GetVocab()
	if err != nil {
		return fmt.Errorf("fetch vocab: %w", err)
	}

	if gf.pretty {
		fmt.Println("Categories:")
		for _, c := range vocab.Categories {
			fmt.Printf("  %s\n", c)
			for _, s := range vocab.Subcategories[c] {
				fmt.Printf("    - %s\n", s)
			}
		}
		fmt.Println("Lab sections:")
		for _, s := range vocab.LabSections {
			fmt.Printf("  %s\n", s)
		}
		fmt.Println("Species:")
		for _, s := range vocab.Species {
			fmt.Printf("  %s\n", s)
		}
	} else {
		printJSON(vocab)
	}
	return nil
}
