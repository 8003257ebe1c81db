package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/presentation"
	"github.com/zjrosen/wamark/internal/template"
	"github.com/zjrosen/wamark/internal/template/domain"
	"github.com/zjrosen/wamark/internal/ui/editor"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage WhatsApp message templates",
	Long: `Create, edit and inspect message templates stored in the local database
(storage.db_path). Every change to a body or footer is kept as a revision.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add NAME [body]",
	Short: "Create a template",
	Long: `Create a template from the body argument or stdin. With --edit the editor
opens instead and the first ctrl+w creates the template.

Examples:
  wamark template add order_shipped --category utility 'Hi {{1}}, order *{{2}}* shipped'
  wamark template add welcome --edit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTemplateAdd,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Long: `List live templates ordered by name. --filter ranks names by fuzzy match.

Examples:
  wamark template list
  wamark template list --filter ordshp -o json
  wamark template list --category marketing --language pt_BR`,
	Args: cobra.NoArgs,
	RunE: runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Open a template in the editor",
	Long: `Open a stored template in the editor. ctrl+w saves a new revision and esc quits.
Category, language or footer can be changed without the editor using flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateEdit,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a template (history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

var templateHistoryCmd = &cobra.Command{
	Use:   "history NAME",
	Short: "List the revisions of a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateHistory,
}

var templateDiffCmd = &cobra.Command{
	Use:   "diff NAME",
	Short: "Compare two revisions of a template",
	Long: `Show what changed between two versions. By default the latest version is
compared with the one before it. Removed text is shown as [-text-] and added
text as {+text+}; on a terminal they are colored instead.

Examples:
  wamark template diff order_shipped
  wamark template diff order_shipped --from 1 --to 3`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateDiff,
}

var templatePreviewCmd = &cobra.Command{
	Use:   "preview NAME",
	Short: "Render a template with sample variable values",
	Long: `Fill {{n}} variables with --var values and render the template, footer
included. Variables without a value are left as {{n}}.

Examples:
  wamark template preview order_shipped --var 1=Ana --var 2=A-1001
  wamark template preview order_shipped --format html`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatePreview,
}

func init() {
	templateAddCmd.Flags().String("category", string(domain.CategoryUtility), "marketing, utility or authentication")
	templateAddCmd.Flags().String("language", "en", "language code, e.g. en or pt_BR")
	templateAddCmd.Flags().String("footer", "", "footer text")
	templateAddCmd.Flags().Bool("edit", false, "write the body in the editor")
	addOutputFlag(templateAddCmd)

	templateListCmd.Flags().String("filter", "", "fuzzy filter on template names")
	templateListCmd.Flags().String("category", "", "only this category")
	templateListCmd.Flags().String("language", "", "only this language")
	templateListCmd.Flags().Int("limit", 0, "maximum number of results")
	addOutputFlag(templateListCmd)

	addOutputFlag(templateShowCmd)

	templateEditCmd.Flags().String("category", "", "set the category without opening the editor")
	templateEditCmd.Flags().String("language", "", "set the language without opening the editor")
	templateEditCmd.Flags().String("footer", "", "set the footer without opening the editor")

	addOutputFlag(templateHistoryCmd)

	templateDiffCmd.Flags().Int("from", 0, "older version (default: the one before --to)")
	templateDiffCmd.Flags().Int("to", 0, "newer version (default: latest)")

	templatePreviewCmd.Flags().StringArray("var", nil, "variable value as N=VALUE (repeatable)")
	templatePreviewCmd.Flags().StringP("format", "f", "", "output format (default: ansi on a terminal, plain otherwise)")
	templatePreviewCmd.Flags().IntP("width", "w", 0, "wrap width for ansi and glamour output")

	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateShowCmd, templateEditCmd,
		templateDeleteCmd, templateHistoryCmd, templateDiffCmd, templatePreviewCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	language, _ := cmd.Flags().GetString("language")
	footer, _ := cmd.Flags().GetString("footer")
	req := template.CreateRequest{
		Name:     args[0],
		Category: domain.Category(strings.ToLower(category)),
		Language: language,
		Footer:   footer,
	}

	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}

	if edit, _ := cmd.Flags().GetBool("edit"); edit {
		req.Body = strings.Join(args[1:], " ")
		m, err := runEditor(cmd.Context(), a, editor.Config{Service: svc, Create: req, Body: req.Body})
		if err != nil {
			return err
		}
		if m.Template() == nil {
			_, err = fmt.Fprintln(cmd.ErrOrStderr(), "Template not saved")
			return err
		}
		return printTemplate(cmd, m.Template())
	}

	if req.Body, err = readText(cmd, args[1:]); err != nil {
		return err
	}
	t, err := svc.Create(cmd.Context(), req)
	if err != nil {
		return describeError(err)
	}
	return printTemplate(cmd, t)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}
	filterQuery, _ := cmd.Flags().GetString("filter")
	category, _ := cmd.Flags().GetString("category")
	language, _ := cmd.Flags().GetString("language")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := domain.ListFilter{
		Category: domain.Category(strings.ToLower(category)),
		Language: language,
		Limit:    limit,
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return fmt.Errorf("unknown category %q (want one of %v)", category, domain.Categories())
	}

	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}

	matches, err := svc.List(cmd.Context(), filter, filterQuery)
	if err != nil {
		return err
	}
	return formatter.FormatMatches(presentation.FromMatches(matches))
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}
	t, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return describeError(err)
	}
	return printTemplate(cmd, t)
}

func runTemplateEdit(cmd *cobra.Command, args []string) error {
	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}

	if req, ok := editFlags(cmd); ok {
		t, err := svc.Update(cmd.Context(), args[0], req)
		if err != nil {
			return describeError(err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (v%d)\n", t.Name(), t.Version())
		return err
	}

	t, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return describeError(err)
	}
	m, err := runEditor(cmd.Context(), a, editor.Config{Service: svc, Template: t})
	if err != nil {
		return err
	}
	if saved := m.Template(); saved != nil && saved.Version() != t.Version() {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (v%d)\n", saved.Name(), saved.Version())
	}
	return err
}

// editFlags builds an UpdateRequest from the edit flags that were set.
func editFlags(cmd *cobra.Command) (template.UpdateRequest, bool) {
	var req template.UpdateRequest
	changed := false
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		c := domain.Category(strings.ToLower(v))
		req.Category = &c
		changed = true
	}
	if cmd.Flags().Changed("language") {
		v, _ := cmd.Flags().GetString("language")
		req.Language = &v
		changed = true
	}
	if cmd.Flags().Changed("footer") {
		v, _ := cmd.Flags().GetString("footer")
		req.Footer = &v
		changed = true
	}
	return req, changed
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}
	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return describeError(err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return err
}

func runTemplateHistory(cmd *cobra.Command, args []string) error {
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}
	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}
	revs, err := svc.History(cmd.Context(), args[0])
	if err != nil {
		return describeError(err)
	}
	return formatter.FormatRevisions(presentation.FromRevisions(revs))
}

func runTemplateDiff(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")

	a := newApp(0)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}
	changes, err := svc.Diff(cmd.Context(), args[0], from, to)
	if err != nil {
		return describeError(err)
	}
	if !template.HasChanges(changes) {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
		return err
	}

	out := template.FormatChanges(changes)
	if isTerminal(cmd.OutOrStdout()) {
		out = colorChanges(changes)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func colorChanges(changes []template.Change) string {
	removed := lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Strikethrough(true)
	added := lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Underline(true)

	var sb strings.Builder
	for _, c := range changes {
		switch c.Type {
		case template.ChangeDelete:
			sb.WriteString(removed.Render(c.Text))
		case template.ChangeInsert:
			sb.WriteString(added.Render(c.Text))
		default:
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

func runTemplatePreview(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetStringArray("var")
	values, err := parseVars(raw)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")

	a := newApp(width)
	defer a.Close()
	svc, err := a.openTemplates(cmd.Context())
	if err != nil {
		return err
	}
	out, err := svc.Preview(cmd.Context(), args[0], values, format)
	if err != nil {
		return describeError(err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return err
}

// parseVars turns ["1=Ana", "2=A-1001"] into {1: "Ana", 2: "A-1001"}.
func parseVars(raw []string) (map[int]string, error) {
	values := make(map[int]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q (want N=VALUE)", kv)
		}
		n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(k), "{}"))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid variable index in --var %q", kv)
		}
		values[n] = v
	}
	return values, nil
}

func printTemplate(cmd *cobra.Command, t *domain.Template) error {
	if cmd.Flags().Lookup("output") == nil {
		return presentation.NewFormatter(cmd.OutOrStdout(), presentation.OutputTable).FormatTemplate(presentation.FromTemplate(t))
	}
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}
	return formatter.FormatTemplate(presentation.FromTemplate(t))
}

// describeError adds a hint to lookup failures.
func describeError(err error) error {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Errorf("%w (run 'wamark template list')", err)
	}
	return err
}
