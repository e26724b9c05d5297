package aclview

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/chrisdfennell/ad-tools/modules/cli"
	"github.com/chrisdfennell/ad-tools/modules/directory"
	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	Command = &cobra.Command{
		Use:   "acl <distinguishedname>",
		Short: "Shows the decoded DACL for one directory object",
		Args:  cobra.ExactArgs(1),
	}

	DelegationCommand = &cobra.Command{
		Use:   "delegation",
		Short: "Reports permissions delegated directly on organizational units",
	}

	jsonoutput     = Command.Flags().Bool("json", false, "Emit JSON instead of a table")
	jsondelegation = DelegationCommand.Flags().Bool("json", false, "Emit JSON instead of a table")
)

func init() {
	directory.AddFlags(Command)
	Command.PreRunE = directory.PreRun
	Command.RunE = executeACL
	cli.Root.AddCommand(Command)

	directory.AddFlags(DelegationCommand)
	DelegationCommand.PreRunE = directory.PreRun
	DelegationCommand.RunE = executeDelegation
	cli.Root.AddCommand(DelegationCommand)
}

func connector() (Session, error) {
	return directory.FromFlags()
}

func executeACL(cmd *cobra.Command, args []string) error {
	svc := NewService(connector)
	result, err := svc.GetObjectACL(args[0])
	if err != nil {
		return err
	}

	if *jsonoutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	ui.Info().Msgf("DACL for %v (%v), %v entries", result.Name, result.DN, len(result.ACEs))
	rows := pterm.TableData{{"Type", "Trustee", "Rights", "Object type", "Inherited", "Dangerous"}}
	for _, ace := range result.ACEs {
		objecttype := ace.ObjectTypeLabel
		inherited := ""
		if ace.Inherited {
			inherited = "yes"
		}
		dangerous := ""
		if ace.Dangerous {
			dangerous = "!!"
		}
		rows = append(rows, []string{ace.Type, ace.TrusteeName, strings.Join(ace.Rights, ", "), objecttype, inherited, dangerous})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func executeDelegation(cmd *cobra.Command, args []string) error {
	svc := NewService(connector)
	delegations, err := svc.OUDelegations()
	if err != nil {
		return err
	}

	if *jsondelegation {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(delegations)
	}

	ui.Info().Msgf("%v delegated permissions found", len(delegations))
	rows := pterm.TableData{{"OU", "Type", "Trustee", "Rights", "Dangerous"}}
	for _, d := range delegations {
		dangerous := ""
		if d.Dangerous {
			dangerous = "!!"
		}
		rows = append(rows, []string{d.OUName, d.Type, d.TrusteeName, strings.Join(d.Rights, ", "), dangerous})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
