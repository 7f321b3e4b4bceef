package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tbxark/formsubmit/config"
	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/logger"
	"github.com/tbxark/formsubmit/submit"
	"github.com/tbxark/formsubmit/tui"
	"github.com/tbxark/formsubmit/types"
	"github.com/tbxark/formsubmit/variants"
)

type app struct {
	cfg     *config.Config
	drafts  *form.CheckpointStore
	session string
	initial string
	schema  bool
}

func main() {
	conf := flag.String("config", "config.yaml", "path to config file")
	formName := flag.String("form", "", "form to fill: "+strings.Join(variants.Names(), ", "))
	session := flag.String("session", "default", "draft key; a saved draft for the same form is restored")
	initial := flag.String("initial", "", "JSON file with initial field values")
	schema := flag.Bool("schema", false, "print the JSON schema of the form payload and exit")
	list := flag.Bool("list", false, "list available forms and exit")
	flag.Parse()

	if *list {
		for _, name := range variants.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(cfg.Log)

	a := &app{cfg: cfg, session: *session, initial: *initial, schema: *schema}
	if err := startApp(context.Background(), a, *formName); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, a *app, name string) error {
	if !variants.Known(name) {
		return fmt.Errorf("unknown form %q (known: %s)", name, strings.Join(variants.Names(), ", "))
	}

	storeOpts := []form.StoreOption{form.WithDraftTTL(a.cfg.Store.TTL)}
	for formName, ttl := range a.cfg.Store.FormTTL {
		storeOpts = append(storeOpts, form.WithFormTTL(formName, ttl))
	}
	if addr := a.cfg.Store.Redis.Addr; addr != "" {
		redisCache := form.NewRedisCache(addr, a.cfg.Store.Redis.Password, a.cfg.Store.Redis.DB)
		defer func() { _ = redisCache.Close() }()
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis %s: %w", addr, err)
		}
		a.drafts = form.NewCheckpointStore(redisCache, storeOpts...)
	} else {
		a.drafts = form.NewMemoryCheckpointStore(storeOpts...)
	}

	switch name {
	case variants.NameRemarks:
		return run[variants.Remarks](ctx, a, variants.RemarksSpec{})
	case variants.NameRemarksApproval:
		return run[variants.RemarksApproval](ctx, a, variants.RemarksApprovalSpec{})
	case variants.NameChecklist:
		return run[variants.Checklist](ctx, a, variants.ChecklistSpec{})
	case variants.NameDPRUpload:
		return run[variants.DPRUpload](ctx, a, variants.DPRUploadSpec{})
	case variants.NameDPRPDFUpload:
		return run[variants.DPRPDFUpload](ctx, a, variants.DPRPDFUploadSpec{})
	default:
		return run[variants.Website](ctx, a, variants.WebsiteSpec{})
	}
}

func run[T any](ctx context.Context, a *app, spec form.Spec[T]) error {
	var opts []form.Option[T]
	if a.initial != "" {
		data, err := os.ReadFile(a.initial)
		if err != nil {
			return fmt.Errorf("read initial data: %w", err)
		}
		var initial T
		if err := sonic.Unmarshal(data, &initial); err != nil {
			return fmt.Errorf("decode initial data: %w", err)
		}
		opts = append(opts, form.WithInitial(initial))
	}

	sub := a.cfg.Submission
	var submitter submit.Submitter[T] = submit.NewHTTPSubmitter[T](sub.URL(), sub.Token, sub.Timeout)
	var done chan error
	if sub.Async {
		done = make(chan error, 1)
		submitter = submit.Async(submitter, func(s submit.Submission[T], err error) {
			done <- err
		})
	}

	c, err := form.New(spec, submitter, opts...)
	if err != nil {
		return err
	}
	if a.schema {
		s, err := c.Schema()
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	}

	ctx = form.WithStateKey(ctx, a.session)
	ctx = logger.WithSession(ctx, a.session)

	restored, err := a.drafts.Load(ctx, c)
	if err != nil {
		logger.Warn(ctx, "Ignoring unreadable draft", "error", err)
	}
	if restored {
		logger.Info(ctx, "Restored draft", "form", c.Name(), "status", c.Status())
	}
	if c.Status() == types.StatusSubmitted {
		fmt.Printf("%s was already submitted (%s).\n", c.Presentation().Title, c.SubmissionID())
		return nil
	}

	c.Subscribe(func(ev form.Event) {
		if ev.Kind == form.EventStatusChanged && ev.Status == types.StatusSubmitted {
			if err := a.drafts.Clear(ctx, c); err != nil {
				logger.Warn(ctx, "Failed to clear draft", "error", err)
			}
			return
		}
		if err := a.drafts.Save(ctx, c); err != nil {
			logger.Warn(ctx, "Failed to save draft", "error", err)
		}
	})

	var runOpts []tui.Option
	if restored {
		runOpts = append(runOpts, tui.WithoutInitialFill())
	}
	err = tui.NewRunner(tui.NewSurveyDriver(), runOpts...).Run(ctx, c)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Printf("Draft kept for session %q.\n", a.session)
		return nil
	}
	if err != nil {
		return err
	}

	if done != nil && c.Status() == types.StatusSubmitted {
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("background submission %s: %w", c.SubmissionID(), err)
			}
		case <-time.After(sub.Timeout):
			logger.Warn(ctx, "Background submission still running at exit", "submission_id", c.SubmissionID())
		}
	}
	fmt.Print(types.FormatFields(c.Fields(), c.Values()))
	return nil
}
