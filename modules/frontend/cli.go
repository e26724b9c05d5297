package frontend

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdfennell/ad-tools/modules/aclview"
	"github.com/chrisdfennell/ad-tools/modules/cli"
	"github.com/chrisdfennell/ad-tools/modules/directory"
	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/spf13/cobra"
)

var (
	Command = &cobra.Command{
		Use:   "serve [-options]",
		Short: "Launches the ACL viewer web service",
	}

	bind = Command.Flags().String("bind", "127.0.0.1:8080", "Address and port of webservice to bind to")
)

func init() {
	directory.AddFlags(Command)
	Command.PreRunE = directory.PreRun
	Command.RunE = Execute
	cli.Root.AddCommand(Command)
}

func Execute(cmd *cobra.Command, args []string) error {
	svc := aclview.NewService(func() (aclview.Session, error) {
		return directory.FromFlags()
	})

	ws := NewWebservice(svc)
	err := ws.Start(*bind)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ui.Info().Msg("Shutting down")
	return ws.srv.Close()
}
