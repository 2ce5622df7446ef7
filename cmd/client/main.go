package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	_ "github.com/joho/godotenv/autoload"

	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/transport"
	"github.com/palemoky/old-maid/internal/ui"
)

const releaseVersion = "0.1.0"

type options struct {
	server string
	name   string
	codec  string
}

func main() {
	cobra.CheckErr(newCmd(&options{}).Execute())
}

func newCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("OLDMAID")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "oldmaid",
		Short:         "Terminal client for the Old Maid room.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.server, "server", "s", "localhost:3000", "server address (env: OLDMAID_SERVER)")
	fs.StringVarP(&opts.name, "name", "n", "", "nickname to use after joining (env: OLDMAID_NAME)")
	fs.StringVar(&opts.codec, "codec", "json", "wire codec, json or protobuf (env: OLDMAID_CODEC)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("oldmaid v{{.Version}}\n")

	return cmd
}

// serverURL 补全 ws 地址
func serverURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	return fmt.Sprintf("ws://%s/ws", addr)
}

func run(opts *options) error {
	wireCodec, err := codec.ByName(opts.codec)
	if err != nil {
		return err
	}

	client := transport.NewClient(serverURL(opts.server), wireCodec)
	model := ui.NewModel(client, opts.name)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("启动客户端时出错: %w", err)
	}
	return nil
}
