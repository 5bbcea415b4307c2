// Command stagectl is a terminal client for the internship journal API.
//
//	stagectl [-config file] <command> [flags]
//
// Commands: list, stats, match, add-stage, note, rm-note, rm-stage, evaluate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/config"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/client"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/stats"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/tracker"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
	applogger "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/logger"
)

const usage = `usage: stagectl [-config file] <command> [flags]

commands:
  list                         placements, newest first
  stats                        mood statistics
  match     -date D            placement covering a date
  add-stage -name N -modality M -start D -end D [-location L] [-supervisor S] [-manager M]
  note      -date D -mood M [-stage ID] [-activities T] [-reflections T] [-lessons T]
  rm-note   -id ID
  rm-stage  -id ID             also removes its notes and evaluations
  evaluate  -stage ID -date D -scores 4,3,3,2,4,4,3,2,1,4
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "stagectl:", describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("stagectl", flag.ContinueOnError)
	configPath := global.String("config", os.Getenv("STAGE_CONFIG"), "config file")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	api, err := client.New(&cfg.Client, logger)
	if err != nil {
		return err
	}

	state := tracker.New(api, logger)
	if err := state.Refresh(ctx); err != nil {
		return err
	}

	cli := &cli{state: state, out: out}
	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "list":
		return cli.list()
	case "stats":
		return cli.stats()
	case "match":
		return cli.match(rest)
	case "add-stage":
		return cli.addStage(ctx, rest)
	case "note":
		return cli.note(ctx, rest)
	case "rm-note":
		return cli.removeNote(ctx, rest)
	case "rm-stage":
		return cli.removeStage(ctx, rest)
	case "evaluate":
		return cli.evaluate(ctx, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type cli struct {
	state *tracker.State
	out   io.Writer
}

// ────────────────────── read commands ──────────────────────

func (c *cli) list() error {
	stages := c.state.Snapshot().Stages
	if len(stages) == 0 {
		fmt.Fprintln(c.out, "no placement yet")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLACEMENT\tMODALITY\tFROM\tTO\tWORKING DAYS")
	for _, st := range stages {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%d\n",
			st.ID, st.Emoji, st.Name, st.ModalityLabel, st.StartDate, st.EndDate, st.WorkingDays)
	}
	return w.Flush()
}

func (c *cli) stats() error {
	snap := c.state.Snapshot()
	if snap.Overview.Global.Total == 0 {
		fmt.Fprintln(c.out, "no journal entry yet")
		return nil
	}

	fmt.Fprintf(c.out, "All placements (%d entries)\n", snap.Overview.Global.Total)
	c.printBreakdown(snap.Overview.Global)

	for _, st := range snap.Overview.Stages {
		fmt.Fprintf(c.out, "\n%s: %d/%d days logged\n", st.Stage.Name, st.LoggedDays, st.TotalDays)
		c.printBreakdown(st.Breakdown)
	}
	return nil
}

func (c *cli) printBreakdown(b stats.Breakdown) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, m := range b.Moods {
		fmt.Fprintf(w, "  %s %s\t%d\t%d%%\n", m.Mood.Emoji(), m.Mood.Label(), m.Count, m.Percentage)
	}
	w.Flush()
}

func (c *cli) match(args []string) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	st, ok, err := c.state.StageForDate(*date)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(c.out, "no placement covers %s\n", *date)
		return nil
	}
	fmt.Fprintf(c.out, "%d %s %s\n", st.ID, st.Emoji, st.Name)
	return nil
}

// ────────────────────── write commands ──────────────────────

func (c *cli) addStage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-stage", flag.ContinueOnError)
	req := dto.CreateStageRequest{}
	fs.StringVar(&req.Name, "name", "", "placement name")
	fs.StringVar(&req.Modality, "modality", "", "modality key (ct, mri, ...)")
	fs.StringVar(&req.StartDate, "start", "", "first day (YYYY-MM-DD)")
	fs.StringVar(&req.EndDate, "end", "", "last day (YYYY-MM-DD)")
	fs.StringVar(&req.Location, "location", "", "hospital or department")
	fs.StringVar(&req.Supervisor, "supervisor", "", "tutor")
	fs.StringVar(&req.Manager, "manager", "", "manager")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := c.state.CreateStage(ctx, &req)
	if err = c.applied(err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "placement %d created: %d working days\n", st.ID, st.WorkingDays)
	return nil
}

func (c *cli) note(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("note", flag.ContinueOnError)
	req := dto.SaveNoteRequest{}
	stageID := fs.Uint("stage", 0, "placement id (detected from -date when omitted)")
	fs.StringVar(&req.Date, "date", "", "day (YYYY-MM-DD)")
	fs.StringVar(&req.Mood, "mood", "", strings.Join(moodKeys(), "|"))
	fs.StringVar(&req.Activities, "activities", "", "procedures performed")
	fs.StringVar(&req.Reflections, "reflections", "", "reflections")
	fs.StringVar(&req.Lessons, "lessons", "", "lessons learned")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req.StageID = uint(*stageID)
	if req.StageID == 0 {
		st, ok, err := c.state.StageForDate(req.Date)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.Validation(fmt.Sprintf("no placement covers %s, pass -stage", req.Date))
		}
		req.StageID = st.ID
	}

	n, err := c.state.SaveNote(ctx, &req)
	if err = c.applied(err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "note %d saved for %s %s\n", n.ID, n.Date, n.MoodEmoji)
	return nil
}

func (c *cli) removeNote(ctx context.Context, args []string) error {
	id, err := parseID("rm-note", args)
	if err != nil {
		return err
	}
	deleted, err := c.state.DeleteNote(ctx, id)
	if err = c.applied(err); err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(c.out, "note %d deleted\n", id)
	}
	return nil
}

func (c *cli) removeStage(ctx context.Context, args []string) error {
	id, err := parseID("rm-stage", args)
	if err != nil {
		return err
	}
	deleted, err := c.state.DeleteStage(ctx, id)
	if err = c.applied(err); err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(c.out, "placement %d deleted with its notes and evaluations\n", id)
	}
	return nil
}

func (c *cli) evaluate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	stageID := fs.Uint("stage", 0, "placement id")
	date := fs.String("date", "", "day (YYYY-MM-DD)")
	raw := fs.String("scores", "", "ten comma separated scores, 0 to 4")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scores, err := parseScores(*raw)
	if err != nil {
		return err
	}
	ev, err := c.state.CreateEvaluation(ctx, &dto.CreateEvaluationRequest{
		StageID: uint(*stageID),
		Date:    *date,
		Scores:  scores,
	})
	if err = c.applied(err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "evaluation %d recorded: %d/%d\n", ev.ID, ev.TotalScore, ev.MaxScore)
	return nil
}

// ────────────────────── helpers ──────────────────────

// applied lets a write whose follow-up refresh failed count as done
func (c *cli) applied(err error) error {
	if errors.Is(err, tracker.ErrStaleSnapshot) {
		fmt.Fprintln(c.out, "warning: change saved, but the journal could not be reloaded")
		return nil
	}
	return err
}

func parseID(name string, args []string) (uint, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.Uint("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *id == 0 {
		return 0, apperrors.Validation("-id is required")
	}
	return uint(*id), nil
}

// parseScores reads "4,3,,2" keeping blanks as missing criteria so the
// tracker reports them
func parseScores(raw string) ([]*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.Validation("-scores is required")
	}
	parts := strings.Split(raw, ",")
	out := make([]*int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("score %d is not a number", i+1))
		}
		out[i] = &v
	}
	return out, nil
}

func moodKeys() []string {
	keys := make([]string, len(model.Moods))
	for i, m := range model.Moods {
		keys[i] = string(m)
	}
	return keys
}

// describe turns family errors into the short notice shown to the user
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Details != "":
		return apiErr.Message + ": " + apiErr.Details
	case errors.As(err, &apiErr):
		return apiErr.Message
	case apperrors.IsValidation(err), apperrors.IsNotFound(err):
		return apperrors.Message(err)
	case apperrors.IsStore(err):
		return "journal server unreachable, nothing was changed"
	}
	return err.Error()
}
