package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/petpost/petpost/internal/config"
)

var configPlain bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect petpost configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config file and effective backend URL",
	RunE:  runConfigShow,
}

func init() {
	configShowCmd.Flags().BoolVar(&configPlain, "plain", false, "Disable syntax highlighting")
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	color := !configPlain && term.IsTerminal(os.Stdout.Fd())
	return showConfig(cfg, cmd.OutOrStdout(), color)
}

func showConfig(cfg *config.Config, out io.Writer, color bool) error {
	data, err := cfg.JSON()
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	fmt.Fprintf(out, "# %s\n", cfg.FilePath())
	fmt.Fprintf(out, "# effective api url: %s\n", cfg.GetAPIURL())
	text := string(data)
	if color {
		text = highlightJSON(text)
	}
	fmt.Fprintln(out, text)
	return nil
}

// highlightJSON colors JSON for a 256-color terminal. On any failure the
// input is returned unchanged.
func highlightJSON(src string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
