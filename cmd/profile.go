package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/profile"
	"github.com/planwise/planwise/internal/store"
	"github.com/planwise/planwise/internal/tax"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved profiles",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name> [plan-file]",
	Short: "Save the current plan, or a plan file, under a name",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runProfileSave,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	profileCmd.AddCommand(profileSaveCmd, profileListCmd, profileShowCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func openStore(tables *tax.Tables) (*store.Store, error) {
	st, err := store.Open(store.DefaultPath(), tables)
	if err != nil {
		return nil, fmt.Errorf("opening profile store: %w", err)
	}
	return st, nil
}

func runProfileSave(_ *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	var p model.Profile
	if len(args) > 1 {
		p, err = profile.Load(args[1], tables)
	} else {
		p, err = resolveProfile(tables)
	}
	if err != nil {
		return err
	}
	p.Name = args[0]

	st, err := openStore(tables)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(p); err != nil {
		return err
	}

	fmt.Printf("  Saved profile %q (age %d → %d, salary %s, %s)\n",
		p.Name, p.Age, p.RetirementAge, cli.FormatGBP(p.Salary), cli.FormatTaxYear(p.Year))
	return nil
}

func runProfileList(_ *cobra.Command, _ []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	st, err := openStore(tables)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\n  No saved profiles. Save one with `planwise profile save <name>`.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		region := "rUK"
		if e.Scotland {
			region = "Scotland"
		}
		rows = append(rows, []string{
			e.Name,
			fmt.Sprintf("%d → %d", e.Age, e.RetirementAge),
			cli.FormatGBP(e.Salary),
			region,
			cli.FormatTaxYear(e.Year),
			e.SavedAt.Format("2006-01-02 15:04"),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Ages", "Salary", "Region", "Year", "Saved"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runProfileShow(_ *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	st, err := openStore(tables)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.Load(args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no profile named %q", args[0])
		}
		return err
	}

	raw, err := profile.Encode(p)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(raw)
	return err
}

func runProfileDelete(_ *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	st, err := openStore(tables)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no profile named %q", args[0])
		}
		return err
	}

	fmt.Printf("  Deleted profile %q\n", args[0])
	return nil
}
