package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/contacts"
	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/dashboard"
	"github.com/smileynet/contacts/internal/logging"
	"github.com/smileynet/contacts/internal/profile"
	"github.com/smileynet/contacts/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contacts.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Open    OpenCmd          `cmd:"" default:"1" hidden:"" help:"Open the widget named by ui.variant."`
	View    ViewCmd          `cmd:"" help:"Browse the read-only contact list."`
	Profile ProfileCmd       `cmd:"" help:"Browse the profile card and social links."`
	Edit    EditCmd          `cmd:"" help:"Edit the persisted contact list."`
	List    ListCmd          `cmd:"" help:"Print the persisted contact list."`
	Add     AddCmd           `cmd:"" help:"Append a contact."`
	Set     SetCmd           `cmd:"" help:"Set one field of a contact."`
	Rm      RmCmd            `cmd:"" help:"Delete a contact."`
	Reset   ResetCmd         `cmd:"" help:"Discard the persisted list and restore the defaults."`
}

// Exit codes.
const (
	exitSuccess  = 0
	exitSetup    = 1
	exitNotFound = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrNotFound) {
		return exitNotFound
	}
	return exitSetup
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		".contacts/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env is the shared setup for every command: config, logger and, for
// commands that touch the persisted list, its store.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	kv     store.KV
	list   *store.ContactList
}

// setup loads config and the logger. withStore also opens the configured
// backend.
func setup(withStore bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger}
	if !withStore {
		return e, nil
	}
	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	list, err := newContactList(kv, cfg.Storage.Key, logger)
	if err != nil {
		_ = kv.Close()
		_ = logger.Sync()
		return nil, err
	}
	e.kv = kv
	e.list = list
	return e, nil
}

func (e *env) close() {
	if e.kv != nil {
		if err := e.kv.Close(); err != nil {
			e.logger.Warn("closing store", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

// newContactList binds the editor list to kv, seeded with the embedded
// defaults.
func newContactList(kv store.KV, key string, logger *zap.Logger) (*store.ContactList, error) {
	seed, err := contact.ReadList(contacts.Defaults, contacts.SeedFile)
	if err != nil {
		return nil, err
	}
	return store.NewContactList(kv, key,
		store.WithDefaults(seed),
		store.WithLogger(logger),
	), nil
}

// contactStore is the persisted list as the commands use it.
type contactStore interface {
	contact.Saver
	Load() ([]contact.Contact, error)
}

// loadBook reads the persisted list into a Book that saves back to s.
func loadBook(s contactStore) (*contact.Book, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	return contact.NewBook(list, contact.WithSaver(s)), nil
}

// --- TUI commands ---

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runTUI executes the tea program, enabling testable wiring.
func runTUI(name string, isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("%s: requires a terminal (TTY)", name)
	}
	_, err := prog.Run()
	return err
}

// newViewerModel builds the read-only widget over <dir>/viewer.json, or the
// embedded list when that file is absent.
func newViewerModel(e *env) (dashboard.Model, error) {
	list, err := contact.ReadList(contacts.OverlayFS(e.cfg.Storage.Dir, contacts.Defaults), contacts.ViewerFile)
	if err != nil {
		return dashboard.Model{}, err
	}
	return dashboard.NewViewer(list, modelOptions(e)...), nil
}

// newProfileModel builds the profile widget over <dir>/profile.yaml merged
// onto the embedded card.
func newProfileModel(e *env) (dashboard.Model, error) {
	doc, err := profile.Load(e.cfg.ProfilePath())
	if err != nil {
		return dashboard.Model{}, err
	}
	return dashboard.NewProfile(doc, modelOptions(e)...), nil
}

// newEditorModel builds the editor over the persisted list.
func newEditorModel(e *env) (dashboard.Model, error) {
	book, err := loadBook(e.list)
	if err != nil {
		return dashboard.Model{}, err
	}
	return dashboard.NewEditor(book, modelOptions(e)...), nil
}

func modelOptions(e *env) []dashboard.Option {
	logger := e.logger
	return []dashboard.Option{
		dashboard.WithTitle(e.cfg.UI.Title),
		dashboard.WithLogger(logger),
		dashboard.WithOnClose(func() { logger.Debug("widget closed") }),
	}
}

// openTUI sets up, builds the model for variant and runs it.
func openTUI(variant string) error {
	if !isTerminal() {
		return fmt.Errorf("%s: requires a terminal (TTY)", variant)
	}
	e, err := setup(variant == config.VariantEditor)
	if err != nil {
		return fmt.Errorf("%s: %w", variant, err)
	}
	defer e.close()

	var m dashboard.Model
	switch variant {
	case config.VariantViewer:
		m, err = newViewerModel(e)
	case config.VariantProfile:
		m, err = newProfileModel(e)
	default:
		m, err = newEditorModel(e)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", variant, err)
	}
	e.logger.Info("opening widget", zap.String("variant", variant))

	prog := tea.NewProgram(m, tea.WithAltScreen())
	return runTUI(variant, true, prog)
}

// OpenCmd opens the widget configured by ui.variant.
type OpenCmd struct{}

// Run executes the default command.
func (o *OpenCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return openTUI(cfg.UI.Variant)
}

// ViewCmd opens the read-only viewer.
type ViewCmd struct{}

// Run executes the view command.
func (v *ViewCmd) Run() error { return openTUI(config.VariantViewer) }

// ProfileCmd opens the profile card viewer.
type ProfileCmd struct{}

// Run executes the profile command.
func (p *ProfileCmd) Run() error { return openTUI(config.VariantProfile) }

// EditCmd opens the editor.
type EditCmd struct{}

// Run executes the edit command.
func (c *EditCmd) Run() error { return openTUI(config.VariantEditor) }

// --- Plain-text commands ---

// withStore runs fn against the configured persisted list.
func withStore(name string, fn func(s contactStore) error) error {
	e, err := setup(true)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer e.close()
	if err := fn(e.list); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ListCmd prints the persisted list, optionally filtered.
type ListCmd struct {
	Query string `arg:"" optional:"" help:"Only show contacts whose name, email or company contains this."`
	JSON  bool   `help:"Print JSON instead of a table." name:"json"`
}

// Run executes the list command.
func (l *ListCmd) Run() error {
	return withStore("list", func(s contactStore) error { return l.run(os.Stdout, s) })
}

// run prints the filtered list to w.
func (l *ListCmd) run(w io.Writer, s contactStore) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	list = contact.Filter(list, l.Query, contact.EditorFields)
	if list == nil {
		list = []contact.Contact{}
	}

	if l.JSON {
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal contacts: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(out))
		return nil
	}

	if len(list) == 0 {
		if l.Query != "" {
			_, _ = fmt.Fprintf(w, "No contacts match %q\n", l.Query)
		} else {
			_, _ = fmt.Fprintln(w, "No contacts")
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCOMPANY")
	for _, c := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Key(), c.Name, c.Email, c.Phone, c.Company)
	}
	return tw.Flush()
}

// AddCmd appends a contact. Unset flags keep the placeholder values.
type AddCmd struct {
	Name    string `help:"Name." default:"New Contact"`
	Email   string `help:"Email address."`
	Phone   string `help:"Phone number."`
	Company string `help:"Company."`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	return withStore("add", func(s contactStore) error { return a.run(os.Stdout, s) })
}

// run adds the contact in a single save and prints its ID.
func (a *AddCmd) run(w io.Writer, s contactStore) error {
	book, err := loadBook(s)
	if err != nil {
		return err
	}
	c, err := book.AddContact(contact.Contact{
		Name:    a.Name,
		Email:   a.Email,
		Phone:   a.Phone,
		Company: a.Company,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Added %s (%s)\n", c.ID, a.Name)
	return nil
}

// SetCmd edits one field of a contact.
type SetCmd struct {
	ID    string `arg:"" help:"Contact ID."`
	Field string `arg:"" help:"Field: name, email, phone or company."`
	Value string `arg:"" help:"New value."`
}

// Run executes the set command.
func (c *SetCmd) Run() error {
	return withStore("set", func(s contactStore) error { return c.run(os.Stdout, s) })
}

// run updates the field and prints the result.
func (c *SetCmd) run(w io.Writer, s contactStore) error {
	f, err := contact.ParseField(c.Field)
	if err != nil {
		return fmt.Errorf("%w (want %s)", err, fieldNames())
	}
	book, err := loadBook(s)
	if err != nil {
		return err
	}
	if err := book.Update(c.ID, f, c.Value); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Set %s %s = %q\n", c.ID, f, c.Value)
	return nil
}

func fieldNames() string {
	names := make([]string, len(contact.Fields))
	for i, f := range contact.Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// RmCmd deletes a contact.
type RmCmd struct {
	ID string `arg:"" help:"Contact ID."`
}

// Run executes the rm command.
func (r *RmCmd) Run() error {
	return withStore("rm", func(s contactStore) error { return r.run(os.Stdout, s) })
}

// run deletes the contact.
func (r *RmCmd) run(w io.Writer, s contactStore) error {
	book, err := loadBook(s)
	if err != nil {
		return err
	}
	c, ok := book.Get(r.ID)
	if !ok {
		return fmt.Errorf("%w: %q", contact.ErrNotFound, r.ID)
	}
	if err := book.Delete(r.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Removed %s (%s)\n", r.ID, c.Name)
	return nil
}

// ResetCmd restores the default list.
type ResetCmd struct{}

// Run executes the reset command.
func (r *ResetCmd) Run() error {
	e, err := setup(true)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	defer e.close()
	if err := e.list.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Info("contacts reset", zap.String("key", e.cfg.Storage.Key))
	_, _ = fmt.Fprintln(os.Stdout, "Restored the default contacts")
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Browse and edit contacts in the terminal."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
