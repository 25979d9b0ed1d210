package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chatshop.GO/bootstrap"
	"chatshop.GO/config"
	"chatshop.GO/service/search"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive console against the search engine",
	Long: `Type entities as key=value pairs, for example:
  name=áo thun color=đỏ priceRange=500k
Commands: /more /yes /no /reset /state /quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadAppConfig()
		logger := config.InitLogger(cfg.LogLevel)
		svc, err := bootstrap.NewServiceContext(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		return chatLoop(cmd, svc.Engine, chatSession, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func chatLoop(cmd *cobra.Command, engine *search.Engine, sessionID string, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var (
			reply *search.Reply
			err   error
		)
		switch line {
		case "":
			fmt.Fprint(out, "> ")
			continue
		case "/quit", "/exit":
			return nil
		case "/more":
			reply, err = engine.ShowMore(ctx, sessionID)
		case "/yes":
			reply, err = engine.AcceptSuggestion(ctx, sessionID)
		case "/no":
			reply, err = engine.RejectSuggestion(ctx, sessionID)
		case "/reset":
			reply, err = engine.Reset(ctx, sessionID)
		case "/state":
			st, serr := engine.State(ctx, sessionID)
			if serr != nil {
				return serr
			}
			fmt.Fprintf(out, "filters=%+v offset=%d results=%d\n", st.Filters, st.Offset, len(st.Results))
			fmt.Fprint(out, "> ")
			continue
		default:
			reply, err = engine.Search(ctx, sessionID, parseEntities(line))
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			printMessages(out, []search.Message{search.FailureMessage()})
		} else {
			printMessages(out, reply.Messages)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// parseEntities reads "key=value" pairs; a value runs until the next key.
func parseEntities(line string) []search.Entity {
	var out []search.Entity
	for _, field := range strings.Fields(line) {
		if key, value, ok := strings.Cut(field, "="); ok && key != "" {
			out = append(out, search.Entity{Entity: key, Value: value})
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			last.Value = strings.TrimSpace(last.Value + " " + field)
		}
	}
	return out
}

func printMessages(out io.Writer, messages []search.Message) {
	for _, m := range messages {
		if m.Custom != nil {
			for _, item := range m.Custom.Items {
				fmt.Fprintf(out, "  - %s [%s] %dđ %s\n", item.Name, item.Category, item.Price, item.Slug)
			}
			continue
		}
		fmt.Fprintln(out, m.Text)
	}
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "console", "session id")
	rootCmd.AddCommand(chatCmd)
}
