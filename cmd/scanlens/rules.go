package scanlens

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanlens/scanlens/internal/rules"
	"github.com/scanlens/scanlens/internal/types"
)

func init() {
	var language string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			set, err := rules.Load(nil, nil)
			if err != nil {
				return err
			}
			if language == "" {
				for _, id := range set.IDs() {
					fmt.Println(id)
				}
				return nil
			}
			lang := types.Language(language)
			for _, r := range set.ForLanguage(lang) {
				fmt.Printf("%-28s %-8s %-11s %s\n", r.ID(), r.Severity(), r.Category(), r.Description())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "show rules for one language with details")
	rootCmd.AddCommand(cmd)
}
